// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes client generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasclientgen"
)

const serverInstructions = `oasclientgen MCP server: turns OpenAPI 3.x documents into typed Go clients, one package per module.

Every operationId must look like prefix[Controller]_verbPhrase (for example userController_getUsers); the prefix names the module. Run inspect first to see the modules, methods and types a document produces, then generate to write the files.

Configuration: defaults are configurable via OASCLIENTGEN_* environment variables set in your MCP client config.

Key settings:
- OASCLIENTGEN_POLICY (default: strict) - strict or lenient type resolution
- OASCLIENTGEN_PACKAGE (default: api) - package name of the root client file
- OASCLIENTGEN_ERROR_TYPE (default: Error) - shared error schema copied into every module
- OASCLIENTGEN_RUNTIME_IMPORT - import path of the clientrt runtime
- OASCLIENTGEN_FORMAT (default: true) - run goimports over generated files
- OASCLIENTGEN_MAX_INLINE_SIZE (default: 10MiB) - limit for inline content
- OASCLIENTGEN_ALLOW_PRIVATE_IPS (default: false) - allow fetching specs from private addresses`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasclientgen", Version: oasclientgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed Go client from an OpenAPI 3.x document and write it to output_dir. Produces client.go plus one <module>/<module>.go package per operationId prefix. Returns a manifest of written files with type and operation counts and any issues. Use policy=lenient to emit placeholder types instead of failing on underspecified schemas.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect how an OpenAPI 3.x document maps onto a generated client without writing files. Returns every module with its Go package, methods (verb, path, request and response types), and its types split into owned, imported and unresolved. Use module to focus on one module.",
	}, handleInspect)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
