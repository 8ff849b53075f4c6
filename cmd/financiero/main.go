package main

import (
	"os"

	"github.com/yourorg/financiero/cmd/financiero/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
