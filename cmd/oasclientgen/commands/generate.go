package commands

import (
	"fmt"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/erraggy/oasclientgen/generator"
	"github.com/erraggy/oasclientgen/internal/cliutil"
	"github.com/erraggy/oasclientgen/internal/severity"
)

// GenerateCommand writes a client for one document.
func GenerateCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output directory (default: the package name)",
		},
		&cli.BoolFlag{
			Name:  "no-format",
			Usage: "skip goimports formatting of the generated files",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "suppress informational issues",
		},
		&cli.StringFlag{
			Name:  "fail-on",
			Usage: "exit with an error when an issue at or above this severity is reported (info, warning, error, critical)",
			Value: "critical",
		},
	}, settingsFlags()...)

	return &cli.Command{
		Name:      "generate",
		Usage:     "generate a typed Go client from an OpenAPI 3.x document",
		ArgsUsage: "<file|url|->",
		Flags:     flags,
		Action:    runGenerate,
	}
}

func runGenerate(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return fmt.Errorf("generate requires exactly one file path, URL, or - for stdin")
	}
	failOn, err := severity.Parse(cctx.String("fail-on"))
	if err != nil {
		return fmt.Errorf("--fail-on: %w", err)
	}

	c, err := loadSettings(cctx)
	if err != nil {
		return err
	}
	if cctx.IsSet("output") {
		c.Output = cctx.String("output")
	}
	if cctx.IsSet("no-format") {
		format := !cctx.Bool("no-format")
		c.Format = &format
	}

	logger := newLogger(cctx.App.ErrWriter, cctx.Bool("verbose"))
	pr, err := parseSpec(cctx, cctx.Args().First(), logger)
	if err != nil {
		return err
	}

	// info issues are always collected so --fail-on info works with -q
	opts := append(generatorOptions(c, pr, logger), generator.WithIncludeInfo(true))
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return err
	}

	shown := severity.SeverityInfo
	if cctx.Bool("quiet") {
		shown = severity.SeverityWarning
	}
	cliutil.WriteIssues(cctx.App.ErrWriter, result.Issues, shown)
	if n := cliutil.CountAtLeast(result.Issues, failOn); n > 0 {
		return fmt.Errorf("%d issue(s) at or above %s; no files written", n, failOn)
	}

	out := c.Output
	if out == "" {
		out = result.PackageName
	}
	if err := result.WriteFiles(out); err != nil {
		return err
	}
	cliutil.Writef(cctx.App.Writer, "Generated %d file(s) in %s: %d module(s), %d operation(s), %d type(s) [%s policy, %s]\n",
		len(result.Files), out, len(result.Modules), result.GeneratedOperations, result.GeneratedTypes,
		result.Policy, result.GenerateTime.Round(time.Millisecond))
	return nil
}
