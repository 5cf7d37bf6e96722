package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasclientgen/generator"
	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/parser"
)

// generationSettings are the knobs shared by the generate and inspect tools.
// Empty values fall back to the server configuration.
type generationSettings struct {
	PackageName   string
	Policy        string
	ErrorType     string
	RuntimeImport string
}

func (s generationSettings) options(pr *parser.ParseResult) []generator.Option {
	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}
	return []generator.Option{
		generator.WithParsed(*pr),
		generator.WithPackageName(pick(s.PackageName, cfg.PackageName)),
		generator.WithPolicy(pick(s.Policy, cfg.Policy)),
		generator.WithErrorTypeName(pick(s.ErrorType, cfg.ErrorTypeName)),
		generator.WithRuntimeImport(pick(s.RuntimeImport, cfg.RuntimeImport)),
	}
}

type issueInfo struct {
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Module   string `json:"module,omitempty"`
	Message  string `json:"message"`
}

func issueInfos(list []issues.Issue) []issueInfo {
	out := makeSlice[issueInfo](len(list))
	for _, i := range list {
		out = append(out, issueInfo{
			Severity: i.Severity.String(),
			Path:     i.Path,
			Module:   i.Module,
			Message:  i.Message,
		})
	}
	return out
}

type generateInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The OAS document to generate a client from"`
	OutputDir     string    `json:"output_dir"               jsonschema:"Directory to write generated files to"`
	PackageName   string    `json:"package_name,omitempty"   jsonschema:"Go package name of the root client file (default: api)"`
	Policy        string    `json:"policy,omitempty"         jsonschema:"Type resolution policy: strict (fail on unresolvable schemas) or lenient (emit placeholders)"`
	ErrorType     string    `json:"error_type,omitempty"     jsonschema:"Schema copied into every module as the shared error type (default: Error)"`
	RuntimeImport string    `json:"runtime_import,omitempty" jsonschema:"Import path of the clientrt runtime used by generated code"`
	Format        *bool     `json:"format,omitempty"         jsonschema:"Run goimports over the output (default: true)"`
}

func (in generateInput) settings() generationSettings {
	return generationSettings{
		PackageName:   in.PackageName,
		Policy:        in.Policy,
		ErrorType:     in.ErrorType,
		RuntimeImport: in.RuntimeImport,
	}
}

type generatedFileInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	OutputDir           string              `json:"output_dir"`
	PackageName         string              `json:"package_name"`
	Policy              string              `json:"policy"`
	FileCount           int                 `json:"file_count"`
	Files               []generatedFileInfo `json:"files"`
	GeneratedTypes      int                 `json:"generated_types"`
	GeneratedOperations int                 `json:"generated_operations"`
	WarningCount        int                 `json:"warning_count"`
	CriticalCount       int                 `json:"critical_count"`
	Issues              []issueInfo         `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	format := cfg.Format
	if input.Format != nil {
		format = *input.Format
	}
	opts := append(input.settings().options(parseResult), generator.WithFormat(format))

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if err := result.WriteFiles(input.OutputDir); err != nil {
		return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
	}

	output := generateOutput{
		Success:             result.Success,
		OutputDir:           input.OutputDir,
		PackageName:         result.PackageName,
		Policy:              result.Policy,
		FileCount:           len(result.Files),
		GeneratedTypes:      result.GeneratedTypes,
		GeneratedOperations: result.GeneratedOperations,
		WarningCount:        result.WarningCount,
		CriticalCount:       result.CriticalCount,
		Issues:              issueInfos(result.Issues),
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Name: f.Name,
			Size: len(f.Content),
		})
	}

	return nil, output, nil
}
