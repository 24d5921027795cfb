package main

import (
	"os"

	"github.com/marmos91/kvfs/cmd/kvfs/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
