package main

import (
	"flag"
	"log"
	"net/http"

	"sealbid/internal/app"
	"sealbid/internal/server"
)

func main() {
	listen := flag.String("listen", ":8537", "listen address")
	stateDir := flag.String("state-dir", "", "persist sessions as JSON under this directory (default in-memory)")
	coprocURL := flag.String("coproc", "", "remote coprocessor base URL (default embedded)")
	flag.Parse()

	wire, err := app.NewWire(app.Config{
		StateDir:  *stateDir,
		CoprocURL: *coprocURL,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer wire.Close()

	srv := server.New(wire.Service, wire.Events, wire.Coproc)
	log.Println("sealbidd listening on", *listen)
	log.Fatal(http.ListenAndServe(*listen, srv.Handler()))
}
