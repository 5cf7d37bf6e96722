package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasclientgen/generator"
)

type inspectInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The OAS document to inspect"`
	Module        string    `json:"module,omitempty"         jsonschema:"Only report the module with this name (case-sensitive)"`
	PackageName   string    `json:"package_name,omitempty"   jsonschema:"Go package name of the root client file (default: api)"`
	Policy        string    `json:"policy,omitempty"         jsonschema:"Type resolution policy: strict or lenient"`
	ErrorType     string    `json:"error_type,omitempty"     jsonschema:"Schema copied into every module as the shared error type (default: Error)"`
	RuntimeImport string    `json:"runtime_import,omitempty" jsonschema:"Import path of the clientrt runtime used by generated code"`
}

type inspectOutput struct {
	Title          string                    `json:"title,omitempty"`
	Version        string                    `json:"version,omitempty"`
	PackageName    string                    `json:"package_name"`
	Policy         string                    `json:"policy"`
	ModuleCount    int                       `json:"module_count"`
	OperationCount int                       `json:"operation_count"`
	TypeCount      int                       `json:"type_count"`
	Modules        []generator.ModuleSummary `json:"modules"`
	Issues         []issueInfo               `json:"issues,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	settings := generationSettings{
		PackageName:   input.PackageName,
		Policy:        input.Policy,
		ErrorType:     input.ErrorType,
		RuntimeImport: input.RuntimeImport,
	}
	opts := append(settings.options(parseResult), generator.WithDryRun(true))
	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		PackageName:    result.PackageName,
		Policy:         result.Policy,
		ModuleCount:    len(result.Modules),
		OperationCount: result.GeneratedOperations,
		TypeCount:      result.GeneratedTypes,
		Issues:         issueInfos(result.Issues),
	}
	if info := parseResult.Document.Info; info != nil {
		output.Title = info.Title
		output.Version = info.Version
	}

	for _, s := range result.Summaries() {
		if input.Module != "" && s.Name != input.Module {
			continue
		}
		output.Modules = append(output.Modules, s)
	}
	return nil, output, nil
}
