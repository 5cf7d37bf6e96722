package extractor

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/oaserrors"
)

// Failure describes a payload or component schema that cannot produce a type.
type Failure struct {
	// TypeName is the name the type would have had
	TypeName string
	// Err is the underlying *oaserrors.SchemaError or *oaserrors.ReferenceError
	Err error
	// Diagnostic is a one-line explanation naming the offending path and verb
	Diagnostic string
}

// TypeResolutionPolicy decides what happens when the document does not carry
// enough information to build a type.
type TypeResolutionPolicy interface {
	// Name returns the policy name used in configuration ("strict" or "lenient").
	Name() string

	// Underspecified returns either a substitute type or an error.
	Underspecified(f Failure) (*model.TypeDescriptor, error)

	// DanglingReference is consulted for a referenced name that exists
	// nowhere in the document. A returned type is a stub for module only;
	// it is never added to the global pool.
	DanglingReference(module, name string) (*model.TypeDescriptor, error)

	// MethodCollision returns nil when a colliding method name may be
	// disambiguated with a numeric suffix.
	MethodCollision(err *oaserrors.CollisionError) error
}

// StrictPolicy fails the run on every underspecified schema, dangling
// reference and method name collision.
type StrictPolicy struct{}

// Name implements TypeResolutionPolicy.
func (StrictPolicy) Name() string { return "strict" }

// Underspecified implements TypeResolutionPolicy.
func (StrictPolicy) Underspecified(f Failure) (*model.TypeDescriptor, error) {
	return nil, f.Err
}

// DanglingReference implements TypeResolutionPolicy.
func (StrictPolicy) DanglingReference(module, name string) (*model.TypeDescriptor, error) {
	return nil, &oaserrors.ReferenceError{
		Ref:        name,
		Module:     module,
		IsDangling: true,
		Message:    "type is not defined in the document",
	}
}

// MethodCollision implements TypeResolutionPolicy.
func (StrictPolicy) MethodCollision(err *oaserrors.CollisionError) error {
	return err
}

// LenientPolicy substitutes placeholder types carrying a diagnostic and lets
// colliding method names be suffixed, so batch generation degrades instead
// of failing.
type LenientPolicy struct{}

// Name implements TypeResolutionPolicy.
func (LenientPolicy) Name() string { return "lenient" }

// Underspecified implements TypeResolutionPolicy.
func (LenientPolicy) Underspecified(f Failure) (*model.TypeDescriptor, error) {
	return model.Placeholder(f.TypeName, f.Diagnostic), nil
}

// DanglingReference implements TypeResolutionPolicy.
func (LenientPolicy) DanglingReference(module, name string) (*model.TypeDescriptor, error) {
	return &model.TypeDescriptor{
		Name:       name,
		Resolved:   false,
		Diagnostic: fmt.Sprintf("referenced type %s is not defined in the document", name),
	}, nil
}

// MethodCollision implements TypeResolutionPolicy.
func (LenientPolicy) MethodCollision(*oaserrors.CollisionError) error {
	return nil
}

var (
	_ TypeResolutionPolicy = StrictPolicy{}
	_ TypeResolutionPolicy = LenientPolicy{}
)

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (TypeResolutionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return StrictPolicy{}, nil
	case "lenient":
		return LenientPolicy{}, nil
	default:
		return nil, &oaserrors.ConfigError{Option: "policy", Value: name, Message: "must be strict or lenient"}
	}
}
