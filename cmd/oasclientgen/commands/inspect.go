package commands

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/erraggy/oasclientgen/generator"
)

// InspectReport describes the client a document would produce.
type InspectReport struct {
	Title          string                    `json:"title,omitempty" yaml:"title,omitempty"`
	Version        string                    `json:"version,omitempty" yaml:"version,omitempty"`
	PackageName    string                    `json:"package" yaml:"package"`
	Policy         string                    `json:"policy" yaml:"policy"`
	OperationCount int                       `json:"operations" yaml:"operations"`
	TypeCount      int                       `json:"types" yaml:"types"`
	Modules        []generator.ModuleSummary `json:"modules" yaml:"modules"`
	Issues         []string                  `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// InspectCommand reports modules, methods and types without writing files.
func InspectCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: yaml or json",
			Value:   FormatYAML,
		},
		&cli.StringFlag{
			Name:    "module",
			Aliases: []string{"m"},
			Usage:   "only report the module with this name",
		},
	}, settingsFlags()...)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "show the modules, methods and types a document maps to",
		ArgsUsage: "<file|url|->",
		Flags:     flags,
		Action:    runInspect,
	}
}

func runInspect(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return fmt.Errorf("inspect requires exactly one file path, URL, or - for stdin")
	}
	format := cctx.String("format")
	if format != FormatYAML && format != FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, FormatYAML, FormatJSON)
	}

	c, err := loadSettings(cctx)
	if err != nil {
		return err
	}
	logger := newLogger(cctx.App.ErrWriter, cctx.Bool("verbose"))
	pr, err := parseSpec(cctx, cctx.Args().First(), logger)
	if err != nil {
		return err
	}

	opts := append(generatorOptions(c, pr, logger), generator.WithDryRun(true))
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return err
	}

	report := InspectReport{
		PackageName:    result.PackageName,
		Policy:         result.Policy,
		OperationCount: result.GeneratedOperations,
		TypeCount:      result.GeneratedTypes,
		Modules:        []generator.ModuleSummary{},
	}
	if info := pr.Document.Info; info != nil {
		report.Title = info.Title
		report.Version = info.Version
	}
	module := cctx.String("module")
	for _, s := range result.Summaries() {
		if module != "" && s.Name != module {
			continue
		}
		report.Modules = append(report.Modules, s)
	}
	if module != "" && len(report.Modules) == 0 {
		return fmt.Errorf("no module named %q", module)
	}
	for _, i := range result.Issues {
		report.Issues = append(report.Issues, i.String())
	}

	return writeStructured(cctx.App.Writer, report, format)
}
