// Package commands provides the subcommands of the oasclientgen CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cli "github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasclientgen/generator"
	"github.com/erraggy/oasclientgen/internal/config"
	"github.com/erraggy/oasclientgen/parser"
)

// Output format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// All returns every subcommand.
func All() []*cli.Command {
	return []*cli.Command{
		GenerateCommand(),
		InspectCommand(),
		MCPCommand(),
		VersionCommand(),
	}
}

// settingsFlags are the generation settings shared by generate and inspect.
// Each one overrides the config file and the OASCLIENTGEN_* variables.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "project config file (default: " + config.FileName + " if present)",
		},
		&cli.StringFlag{
			Name:    "package",
			Aliases: []string{"p"},
			Usage:   "Go package name of the root client file (default: " + generator.DefaultPackageName + ")",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "type resolution policy: strict or lenient",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "shorthand for --policy strict (--strict=false selects lenient)",
		},
		&cli.StringFlag{
			Name:  "error-type",
			Usage: "schema copied into every module as the shared error type (default: Error)",
		},
		&cli.StringFlag{
			Name:  "runtime-import",
			Usage: "import path of the clientrt runtime used by generated code",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log pipeline details to stderr",
		},
	}
}

// loadSettings layers the config file, the environment and the flags.
func loadSettings(cctx *cli.Context) (*config.Config, error) {
	c, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()

	if cctx.IsSet("package") {
		c.Package = cctx.String("package")
	}
	if cctx.IsSet("policy") {
		c.Policy = cctx.String("policy")
	}
	if cctx.IsSet("strict") {
		if cctx.IsSet("policy") {
			return nil, fmt.Errorf("--strict and --policy are mutually exclusive")
		}
		c.Policy = "lenient"
		if cctx.Bool("strict") {
			c.Policy = "strict"
		}
	}
	if cctx.IsSet("error-type") {
		c.ErrorType = cctx.String("error-type")
	}
	if cctx.IsSet("runtime-import") {
		c.RuntimeImport = cctx.String("runtime-import")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newLogger writes text logs to w. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) parser.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// parseSpec loads the document named by path, or stdin for "-".
func parseSpec(cctx *cli.Context, path string, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if path == StdinFilePath {
		opts = append(opts, parser.WithReader(cctx.App.Reader), parser.WithSourceName("stdin"))
	} else {
		opts = append(opts, parser.WithFilePath(path))
	}
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return result, nil
}

// generatorOptions turns resolved settings into generator options. Empty
// settings keep the generator defaults.
func generatorOptions(c *config.Config, pr *parser.ParseResult, logger parser.Logger) []generator.Option {
	opts := []generator.Option{
		generator.WithParsed(*pr),
		generator.WithLogger(logger),
		generator.WithFormat(c.FormatOr(true)),
	}
	if c.Package != "" {
		opts = append(opts, generator.WithPackageName(c.Package))
	}
	if c.Policy != "" {
		opts = append(opts, generator.WithPolicy(c.Policy))
	}
	if c.ErrorType != "" {
		opts = append(opts, generator.WithErrorTypeName(c.ErrorType))
	}
	if c.RuntimeImport != "" {
		opts = append(opts, generator.WithRuntimeImport(c.RuntimeImport))
	}
	return opts
}

// writeStructured marshals data as json or yaml to w.
func writeStructured(w io.Writer, data any, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatYAML, FormatJSON)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	_, err = w.Write(out)
	return err
}
