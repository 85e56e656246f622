package main

import (
	"os"

	"sealbid/cmd/sealbid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
