package main

import (
	"fmt"
	"os"

	cli "github.com/urfave/cli/v2"

	"github.com/erraggy/oasclientgen"
	"github.com/erraggy/oasclientgen/cmd/oasclientgen/commands"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "oasclientgen",
		Usage:    "generate typed Go clients from OpenAPI 3.x documents",
		Version:  oasclientgen.Version(),
		Commands: commands.All(),
	}
}
