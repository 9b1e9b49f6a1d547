package main

import (
	"os"

	"github.com/TheusHen/safeid/cmd/safeid/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
