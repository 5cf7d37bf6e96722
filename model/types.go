package model

// Kind classifies a DeclaredType.
type Kind int

const (
	// KindPrimitive is a scalar or untyped value.
	KindPrimitive Kind = iota
	// KindRef names another type.
	KindRef
	// KindArray is a list of a primitive or a named type.
	KindArray
)

// Primitive type names.
const (
	String  = "string"
	Integer = "integer"
	Number  = "number"
	Boolean = "boolean"
	Object  = "object"
	Any     = "any"
)

// IsPrimitive reports whether name is one of the primitive type names.
func IsPrimitive(name string) bool {
	switch name {
	case String, Integer, Number, Boolean, Object, Any:
		return true
	}
	return false
}

// DeclaredType is the type of a property. Elem is set only for arrays and is
// never itself an array.
type DeclaredType struct {
	Kind Kind
	// Name is the primitive name (KindPrimitive) or the referenced type name (KindRef)
	Name string
	Elem *DeclaredType
}

// Primitive returns a primitive DeclaredType.
func Primitive(name string) DeclaredType {
	return DeclaredType{Kind: KindPrimitive, Name: name}
}

// Ref returns a named reference.
func Ref(name string) DeclaredType {
	return DeclaredType{Kind: KindRef, Name: name}
}

// ArrayOf returns an array of elem.
func ArrayOf(elem DeclaredType) DeclaredType {
	return DeclaredType{Kind: KindArray, Elem: &elem}
}

// RefName returns the referenced type name for references and arrays of
// references, or "" otherwise.
func (t DeclaredType) RefName() string {
	switch t.Kind {
	case KindRef:
		return t.Name
	case KindArray:
		if t.Elem != nil && t.Elem.Kind == KindRef {
			return t.Elem.Name
		}
	}
	return ""
}

// Rename returns a copy of t with references to from rewritten to to.
func (t DeclaredType) Rename(from, to string) DeclaredType {
	switch t.Kind {
	case KindRef:
		if t.Name == from {
			return Ref(to)
		}
	case KindArray:
		if t.Elem != nil {
			return ArrayOf(t.Elem.Rename(from, to))
		}
	}
	return t
}

// String returns the schema notation of the type, e.g. "Pet[]" or "string".
func (t DeclaredType) String() string {
	if t.Kind == KindArray {
		if t.Elem == nil {
			return Any + "[]"
		}
		return t.Elem.String() + "[]"
	}
	return t.Name
}

// Constraints carries the validation keywords copied from the schema.
// Nil pointers mean "not set".
type Constraints struct {
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64
	MinLength        *int
	MaxLength        *int
	Pattern          string
	MinItems         *int
	MaxItems         *int
	UniqueItems      bool
	Enum             []any
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return c.Minimum == nil && c.Maximum == nil && c.MultipleOf == nil &&
		c.MinLength == nil && c.MaxLength == nil && c.Pattern == "" &&
		c.MinItems == nil && c.MaxItems == nil && !c.UniqueItems && len(c.Enum) == 0
}

// Clone returns a deep copy.
func (c Constraints) Clone() Constraints {
	out := c
	out.Minimum = clonePtr(c.Minimum)
	out.Maximum = clonePtr(c.Maximum)
	out.MultipleOf = clonePtr(c.MultipleOf)
	out.MinLength = clonePtr(c.MinLength)
	out.MaxLength = clonePtr(c.MaxLength)
	out.MinItems = clonePtr(c.MinItems)
	out.MaxItems = clonePtr(c.MaxItems)
	if c.Enum != nil {
		out.Enum = append([]any(nil), c.Enum...)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// PropertyDescriptor describes one field of a type.
type PropertyDescriptor struct {
	Name        string
	Type        DeclaredType
	Required    bool
	Nullable    bool
	Description string
	Format      string
	Constraints Constraints
}

// Clone returns a deep copy.
func (p *PropertyDescriptor) Clone() *PropertyDescriptor {
	if p == nil {
		return nil
	}
	out := *p
	if p.Type.Elem != nil {
		elem := *p.Type.Elem
		out.Type.Elem = &elem
	}
	out.Constraints = p.Constraints.Clone()
	return &out
}

// TypeDescriptor describes a named type.
type TypeDescriptor struct {
	Name        string
	Description string
	Properties  []*PropertyDescriptor
	// Resolved is false for placeholders and dangling-reference stubs
	Resolved bool
	// Synthesized is true for request/response types built from inline
	// schemas and for placeholders
	Synthesized bool
	// Diagnostic explains why a placeholder was substituted
	Diagnostic string
}

// Clone returns a deep copy that shares nothing with t.
func (t *TypeDescriptor) Clone() *TypeDescriptor {
	if t == nil {
		return nil
	}
	out := *t
	if t.Properties != nil {
		out.Properties = make([]*PropertyDescriptor, len(t.Properties))
		for i, p := range t.Properties {
			out.Properties[i] = p.Clone()
		}
	}
	return &out
}

// References returns the distinct type names referenced by the properties,
// in property order.
func (t *TypeDescriptor) References() []string {
	if t == nil {
		return nil
	}
	var refs []string
	seen := make(map[string]bool)
	for _, p := range t.Properties {
		name := p.Type.RefName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	return refs
}

// Property returns the property with the given name.
func (t *TypeDescriptor) Property(name string) (*PropertyDescriptor, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Placeholder returns an unresolved synthesized type carrying diagnostic.
func Placeholder(name, diagnostic string) *TypeDescriptor {
	return &TypeDescriptor{
		Name:        name,
		Synthesized: true,
		Diagnostic:  diagnostic,
	}
}

// PathParam is a path parameter of an operation.
type PathParam struct {
	Name        string
	Type        string
	Description string
}

// OperationDescriptor describes one generated method.
type OperationDescriptor struct {
	// ExternalID is the source operationId
	ExternalID string
	Module     string
	MethodName string
	// Verb is the upper-case HTTP verb
	Verb         string
	PathTemplate string
	Summary      string
	Description  string
	Deprecated   bool
	PathParams   []PathParam
	// RequestTypeName is empty when the operation has no payload
	RequestTypeName  string
	ResponseTypeName string
}

// Clone returns a copy with its own parameter slice.
func (o *OperationDescriptor) Clone() *OperationDescriptor {
	if o == nil {
		return nil
	}
	out := *o
	out.PathParams = append([]PathParam(nil), o.PathParams...)
	return &out
}

// Location returns "VERB /path".
func (o *OperationDescriptor) Location() string {
	return o.Verb + " " + o.PathTemplate
}

// TypeNames returns the request type (if any) followed by the response type.
func (o *OperationDescriptor) TypeNames() []string {
	names := make([]string, 0, 2)
	if o.RequestTypeName != "" {
		names = append(names, o.RequestTypeName)
	}
	if o.ResponseTypeName != "" {
		names = append(names, o.ResponseTypeName)
	}
	return names
}

// ModuleDescriptor groups the operations and types emitted into one package.
type ModuleDescriptor struct {
	Name        string
	PackageName string
	Operations  []*OperationDescriptor
	// Types is filled by the bundler, in emission order
	Types *TypeSet
	// Owned lists the types assigned to the module by name, as emitted
	Owned []string
	// Unresolved lists referenced names that exist nowhere in the pool
	Unresolved []string
}

