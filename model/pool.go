package model

import (
	"errors"
	"fmt"
	"iter"

	"github.com/erraggy/oasclientgen/internal/maputil"
)

var (
	// ErrDuplicateType is returned when a name is added to the pool twice.
	ErrDuplicateType = errors.New("duplicate type name")
	// ErrPoolFrozen is returned when adding to a builder after Build.
	ErrPoolFrozen = errors.New("type pool is frozen")
)

// PoolBuilder collects the document-wide types. Each name can be added once.
type PoolBuilder struct {
	types  *maputil.Ordered[*TypeDescriptor]
	frozen bool
}

// NewPoolBuilder returns an empty builder.
func NewPoolBuilder() *PoolBuilder {
	return &PoolBuilder{types: maputil.NewOrdered[*TypeDescriptor](0)}
}

// Add inserts t under t.Name.
func (b *PoolBuilder) Add(t *TypeDescriptor) error {
	if b.frozen {
		return fmt.Errorf("model: add %s: %w", t.Name, ErrPoolFrozen)
	}
	if b.types.Has(t.Name) {
		return fmt.Errorf("model: add %s: %w", t.Name, ErrDuplicateType)
	}
	b.types.Set(t.Name, t)
	return nil
}

// Has reports whether name has been added.
func (b *PoolBuilder) Has(name string) bool {
	return b.types.Has(name)
}

// All iterates over the added types in insertion order.
func (b *PoolBuilder) All() iter.Seq2[string, *TypeDescriptor] {
	return b.types.All()
}

// Build freezes the builder and returns the read-only pool.
func (b *PoolBuilder) Build() *TypePool {
	b.frozen = true
	return &TypePool{types: b.types}
}

// TypePool is the frozen, document-wide set of types in insertion order.
// Callers that need to modify a type must Clone it first.
type TypePool struct {
	types *maputil.Ordered[*TypeDescriptor]
}

// Get returns the type registered under name.
func (p *TypePool) Get(name string) (*TypeDescriptor, bool) {
	if p == nil {
		return nil, false
	}
	return p.types.Get(name)
}

// Has reports whether name is in the pool.
func (p *TypePool) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the type names in insertion order.
func (p *TypePool) Names() []string {
	if p == nil {
		return []string{}
	}
	return p.types.Keys()
}

// Len returns the number of types.
func (p *TypePool) Len() int {
	if p == nil {
		return 0
	}
	return p.types.Len()
}

// All iterates over the pool in insertion order.
func (p *TypePool) All() iter.Seq2[string, *TypeDescriptor] {
	if p == nil {
		return func(func(string, *TypeDescriptor) bool) {}
	}
	return p.types.All()
}

// TypeSet is the ordered, duplicate-free type collection of one module.
type TypeSet struct {
	types *maputil.Ordered[*TypeDescriptor]
}

// NewTypeSet returns an empty set.
func NewTypeSet() *TypeSet {
	return &TypeSet{types: maputil.NewOrdered[*TypeDescriptor](0)}
}

// Add inserts t unless a type with the same name is present and reports
// whether it was inserted.
func (s *TypeSet) Add(t *TypeDescriptor) bool {
	if s.types.Has(t.Name) {
		return false
	}
	s.types.Set(t.Name, t)
	return true
}

// Get returns the type named name.
func (s *TypeSet) Get(name string) (*TypeDescriptor, bool) {
	if s == nil {
		return nil, false
	}
	return s.types.Get(name)
}

// Has reports whether name is present.
func (s *TypeSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the type names in order.
func (s *TypeSet) Names() []string {
	if s == nil {
		return []string{}
	}
	return s.types.Keys()
}

// Len returns the number of types.
func (s *TypeSet) Len() int {
	if s == nil {
		return 0
	}
	return s.types.Len()
}

// All iterates over the set in order.
func (s *TypeSet) All() iter.Seq2[string, *TypeDescriptor] {
	if s == nil {
		return func(func(string, *TypeDescriptor) bool) {}
	}
	return s.types.All()
}

// Rename changes the name of a member in place, keeping its position, and
// rewrites every property that references it. It returns false when from is
// absent or to is already taken.
func (s *TypeSet) Rename(from, to string) bool {
	if !s.types.Has(from) || s.types.Has(to) {
		return false
	}

	renamed := maputil.NewOrdered[*TypeDescriptor](s.types.Len())
	for name, td := range s.types.All() {
		if name == from {
			td.Name = to
			name = to
		}
		renamed.Set(name, td)
	}
	s.types = renamed

	for _, td := range s.types.All() {
		for _, p := range td.Properties {
			p.Type = p.Type.Rename(from, to)
		}
	}
	return true
}
