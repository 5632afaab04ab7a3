package main

import (
	"os"

	"github.com/pterm/pterm"

	"tracker/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewApp(version).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
