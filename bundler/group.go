package bundler

import (
	"fmt"

	"github.com/erraggy/oasclientgen/internal/naming"
	"github.com/erraggy/oasclientgen/model"
)

// Group buckets operations by module, in order of first appearance.
// Operations are copied, so later stages can rewrite type names freely.
// Package names are unique across the result.
func Group(ops []*model.OperationDescriptor) []*model.ModuleDescriptor {
	var modules []*model.ModuleDescriptor
	index := make(map[string]*model.ModuleDescriptor)
	packages := make(map[string]bool)

	for _, op := range ops {
		m, ok := index[op.Module]
		if !ok {
			m = &model.ModuleDescriptor{
				Name:        op.Module,
				PackageName: uniquePackage(naming.PackageName(op.Module), packages),
				Types:       model.NewTypeSet(),
			}
			index[op.Module] = m
			modules = append(modules, m)
		}
		m.Operations = append(m.Operations, op.Clone())
	}
	return modules
}

func uniquePackage(name string, taken map[string]bool) string {
	candidate := name
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s%d", name, n)
	}
	taken[candidate] = true
	return candidate
}

// ModuleNames returns the names of modules in order.
func ModuleNames(modules []*model.ModuleDescriptor) []string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}
