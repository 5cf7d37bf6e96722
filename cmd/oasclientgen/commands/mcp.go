package commands

import (
	cli "github.com/urfave/cli/v2"

	"github.com/erraggy/oasclientgen/internal/mcpserver"
)

// MCPCommand serves the generate and inspect tools over stdio.
func MCPCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP server over stdio",
		Action: func(cctx *cli.Context) error {
			return mcpserver.Run(cctx.Context)
		},
	}
}
