package commands

import (
	cli "github.com/urfave/cli/v2"

	"github.com/erraggy/oasclientgen"
	"github.com/erraggy/oasclientgen/internal/cliutil"
)

// VersionCommand prints build metadata.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "show version information",
		Action: func(cctx *cli.Context) error {
			cliutil.Writef(cctx.App.Writer, "oasclientgen %s\n%s\n", oasclientgen.Version(), oasclientgen.BuildInfo())
			return nil
		},
	}
}
