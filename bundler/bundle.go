package bundler

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erraggy/oasclientgen/extractor"
	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/severity"
	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/parser"
)

// DefaultErrorTypeName is the sentinel error type added to every module
// when the pool defines it.
const DefaultErrorTypeName = "Error"

// DanglingResolver decides what a module gets for a referenced name that
// exists nowhere in the pool. extractor.StrictPolicy and
// extractor.LenientPolicy both satisfy it.
type DanglingResolver interface {
	DanglingReference(module, name string) (*model.TypeDescriptor, error)
}

// Options configures Bundle.
type Options struct {
	// ErrorTypeName is the sentinel error type (default "Error")
	ErrorTypeName string
	// Policy handles dangling references (default extractor.StrictPolicy)
	Policy DanglingResolver
	// Logger receives per-module debug output
	Logger parser.Logger
}

// Result holds the bundled modules.
type Result struct {
	Modules []*model.ModuleDescriptor
	Issues  []issues.Issue
}

// Bundle fills in Types and Unresolved for every module and rewrites
// operation type names after prefix stripping. The modules are modified in
// place; the pool is only read.
func Bundle(modules []*model.ModuleDescriptor, pool *model.TypePool, opts Options) (*Result, error) {
	if opts.ErrorTypeName == "" {
		opts.ErrorTypeName = DefaultErrorTypeName
	}
	if opts.Policy == nil {
		opts.Policy = extractor.StrictPolicy{}
	}
	logger := parser.OrNop(opts.Logger)

	b := &bundler{pool: pool, opts: opts, moduleNames: ModuleNames(modules)}
	for _, m := range modules {
		if err := b.module(m); err != nil {
			return nil, fmt.Errorf("bundler: module %s: %w", m.Name, err)
		}
		logger.Debug("bundled module",
			"module", m.Name,
			"package", m.PackageName,
			"operations", len(m.Operations),
			"types", m.Types.Len(),
			"unresolved", len(m.Unresolved))
	}
	return &Result{Modules: modules, Issues: b.issues}, nil
}

type bundler struct {
	pool        *model.TypePool
	opts        Options
	moduleNames []string
	issues      []issues.Issue
}

// moduleState tracks one module while its type set grows.
type moduleState struct {
	m       *model.ModuleDescriptor
	set     *model.TypeSet
	order   []string
	owned   map[string]bool
	missing map[string]bool
}

func (s *moduleState) add(td *model.TypeDescriptor) {
	if s.set.Add(td) {
		s.order = append(s.order, td.Name)
	}
}

func (b *bundler) module(m *model.ModuleDescriptor) error {
	s := &moduleState{
		m:       m,
		set:     model.NewTypeSet(),
		owned:   make(map[string]bool),
		missing: make(map[string]bool),
	}
	m.Unresolved = nil

	for name, td := range b.pool.All() {
		if owner, ok := AssignOwner(name, b.moduleNames); ok && owner == m.Name {
			s.owned[name] = true
			s.add(td.Clone())
		}
	}
	if td, ok := b.pool.Get(b.opts.ErrorTypeName); ok {
		s.add(td.Clone())
	}
	for _, op := range m.Operations {
		for _, name := range op.TypeNames() {
			if err := b.include(s, name); err != nil {
				return err
			}
		}
	}

	// order grows while the closure is computed
	for i := 0; i < len(s.order); i++ {
		td, _ := s.set.Get(s.order[i])
		for _, ref := range td.References() {
			if err := b.include(s, ref); err != nil {
				return err
			}
		}
	}

	m.Types = s.set
	renames := b.stripPrefix(s)
	m.Owned = nil
	for _, name := range s.order {
		if !s.owned[name] {
			continue
		}
		if to, ok := renames[name]; ok {
			name = to
		}
		m.Owned = append(m.Owned, name)
	}
	return nil
}

// include imports name from the pool, or consults the policy when the pool
// does not have it.
func (b *bundler) include(s *moduleState, name string) error {
	if s.set.Has(name) || s.missing[name] {
		return nil
	}
	if td, ok := b.pool.Get(name); ok {
		s.add(td.Clone())
		return nil
	}

	s.missing[name] = true
	s.m.Unresolved = append(s.m.Unresolved, name)
	stub, err := b.opts.Policy.DanglingReference(s.m.Name, name)
	if err != nil {
		return err
	}
	if stub != nil {
		s.add(stub)
		b.issues = append(b.issues, issues.Issue{
			Path:     issues.ComponentPath(name),
			Message:  stub.Diagnostic,
			Severity: severity.SeverityWarning,
			Module:   s.m.Name,
		})
	}
	return nil
}

// stripPrefix shortens owned type names that start with the module name.
// The remainder must be non-empty, start with an upper-case letter or a
// digit and not clash with another type in the module. It returns the
// applied renames.
func (b *bundler) stripPrefix(s *moduleState) map[string]string {
	prefix := s.m.Name
	renames := make(map[string]string)
	for _, name := range s.order {
		if !s.owned[name] {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			continue
		}
		if s.set.Rename(name, rest) {
			renames[name] = rest
		}
	}
	if len(renames) == 0 {
		return nil
	}

	for _, op := range s.m.Operations {
		if to, ok := renames[op.RequestTypeName]; ok {
			op.RequestTypeName = to
		}
		if to, ok := renames[op.ResponseTypeName]; ok {
			op.ResponseTypeName = to
		}
	}
	return renames
}
