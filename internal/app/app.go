package app

import (
	"sealbid/internal/client"
	"sealbid/internal/coproc"
	"sealbid/internal/domain"
)

// App bundles the clients the CLI commands use: the daemon API and the
// coprocessor capabilities, plus the party identity the commands act as.
type App struct {
	API   *client.HTTP
	Vault *coproc.Client
	Party domain.PartyID
}

// NewApp constructs the CLI client set against server, acting as party.
func NewApp(server string, party domain.PartyID) *App {
	return &App{
		API:   client.New(server),
		Vault: coproc.NewClient(server),
		Party: party,
	}
}
