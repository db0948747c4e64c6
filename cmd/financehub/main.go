package main

import (
	"os"

	"github.com/financehub-dev/financehub/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
