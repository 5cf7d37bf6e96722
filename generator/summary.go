package generator

import (
	"slices"

	"github.com/erraggy/oasclientgen/internal/naming"
	"github.com/erraggy/oasclientgen/model"
)

// OperationSummary describes one generated method.
type OperationSummary struct {
	Method      string `json:"method"              yaml:"method"`
	Verb        string `json:"verb"                yaml:"verb"`
	Path        string `json:"path"                yaml:"path"`
	OperationID string `json:"operation_id"        yaml:"operation_id"`
	Request     string `json:"request,omitempty"   yaml:"request,omitempty"`
	Response    string `json:"response"            yaml:"response"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// ModuleSummary describes one generated package and where its types come
// from: owned by name, imported from other modules, or unresolved.
type ModuleSummary struct {
	Name       string             `json:"name"                 yaml:"name"`
	Package    string             `json:"package"              yaml:"package"`
	Operations []OperationSummary `json:"operations"           yaml:"operations"`
	Owned      []string           `json:"owned,omitempty"      yaml:"owned,omitempty"`
	Imported   []string           `json:"imported,omitempty"   yaml:"imported,omitempty"`
	Unresolved []string           `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// SummarizeModule builds the summary of a bundled module.
func SummarizeModule(m *model.ModuleDescriptor) ModuleSummary {
	s := ModuleSummary{
		Name:       m.Name,
		Package:    m.PackageName,
		Operations: make([]OperationSummary, 0, len(m.Operations)),
		Owned:      m.Owned,
		Unresolved: m.Unresolved,
	}
	for _, op := range m.Operations {
		s.Operations = append(s.Operations, OperationSummary{
			Method:      naming.ToPascalCase(op.MethodName),
			Verb:        op.Verb,
			Path:        op.PathTemplate,
			OperationID: op.ExternalID,
			Request:     op.RequestTypeName,
			Response:    op.ResponseTypeName,
			Deprecated:  op.Deprecated,
		})
	}
	if m.Types != nil {
		for _, name := range m.Types.Names() {
			if slices.Contains(m.Owned, name) || slices.Contains(m.Unresolved, name) {
				continue
			}
			s.Imported = append(s.Imported, name)
		}
	}
	return s
}

// Summaries returns the summary of every module, in emission order.
func (r *GenerateResult) Summaries() []ModuleSummary {
	out := make([]ModuleSummary, 0, len(r.Modules))
	for _, m := range r.Modules {
		out = append(out, SummarizeModule(m))
	}
	return out
}
