package extractor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/oaserrors"
	"github.com/erraggy/oasclientgen/parser"
)

// IsInlineObject reports whether s is an object schema declared in place:
// either type is "object", or type is absent and properties are present.
func IsInlineObject(s *parser.Schema) bool {
	if s == nil || s.Ref != "" || s.HasComposition() {
		return false
	}
	switch s.PrimaryType() {
	case model.Object:
		return true
	case "":
		return s.HasProperties()
	default:
		return false
	}
}

// ResolveSchema flattens an inline object schema into a TypeDescriptor named
// name. Properties keep document order. An object without properties yields
// a descriptor with no properties, which callers treat as underspecified.
func ResolveSchema(name string, s *parser.Schema) (*model.TypeDescriptor, error) {
	if !IsInlineObject(s) {
		return nil, &oaserrors.SchemaError{
			TypeName: name,
			Message:  "expected an inline object schema, got " + describeSchema(s),
			Cause:    oaserrors.ErrUnsupportedSchemaKind,
		}
	}

	td := &model.TypeDescriptor{
		Name:        name,
		Description: s.Description,
		Resolved:    true,
	}
	for propName, ps := range s.Properties.All() {
		prop, err := resolveProperty(propName, ps)
		if err != nil {
			return nil, &oaserrors.SchemaError{
				TypeName: name,
				Message:  fmt.Sprintf("property %q: %s", propName, err.Error()),
				Cause:    causeOf(err),
			}
		}
		prop.Required = slices.Contains(s.Required, propName)
		td.Properties = append(td.Properties, prop)
	}
	return td, nil
}

// propertyError is a failure local to one property.
type propertyError struct {
	msg   string
	cause error
}

func (e *propertyError) Error() string { return e.msg }
func (e *propertyError) Unwrap() error { return e.cause }

func unsupported(format string, args ...any) error {
	return &propertyError{msg: fmt.Sprintf(format, args...), cause: oaserrors.ErrUnsupportedSchemaKind}
}

func causeOf(err error) error {
	var pe *propertyError
	if errors.As(err, &pe) {
		return pe.cause
	}
	return err
}

func resolveProperty(name string, ps *parser.Schema) (*model.PropertyDescriptor, error) {
	prop := &model.PropertyDescriptor{Name: name, Type: model.Primitive(model.Any)}
	if ps == nil {
		return prop, nil
	}
	prop.Description = ps.Description
	prop.Format = ps.Format
	prop.Nullable = ps.IsNullable()
	prop.Constraints = constraintsOf(ps)

	typ, err := declaredType(ps, false)
	if err != nil {
		return nil, err
	}
	prop.Type = typ
	return prop, nil
}

// declaredType maps a property (or, with item set, an array item) schema.
func declaredType(ps *parser.Schema, item bool) (model.DeclaredType, error) {
	if ps == nil {
		return model.Primitive(model.Any), nil
	}
	if ps.Ref != "" {
		name, err := ResolveRef(ps.Ref)
		if err != nil {
			return model.DeclaredType{}, &propertyError{msg: err.Error(), cause: oaserrors.ErrUnsupportedReferenceShape}
		}
		return model.Ref(name), nil
	}
	if ps.HasComposition() {
		return model.DeclaredType{}, unsupported("composition keywords (allOf, anyOf, oneOf, not) are not supported")
	}

	switch t := ps.PrimaryType(); t {
	case model.String, model.Integer, model.Number, model.Boolean:
		return model.Primitive(t), nil
	case model.Object, "":
		if ps.HasProperties() {
			if item {
				return model.DeclaredType{}, unsupported("inline array item schemas are not supported; use a $ref")
			}
			return model.DeclaredType{}, unsupported("inline object schemas are not supported; use a $ref")
		}
		if t == "" {
			return model.Primitive(model.Any), nil
		}
		return model.Primitive(model.Object), nil
	case "array":
		if item {
			return model.DeclaredType{}, unsupported("nested arrays are not supported")
		}
		elem, err := declaredType(ps.Items, true)
		if err != nil {
			return model.DeclaredType{}, err
		}
		return model.ArrayOf(elem), nil
	default:
		return model.DeclaredType{}, unsupported("type %q is not supported", t)
	}
}

func constraintsOf(ps *parser.Schema) model.Constraints {
	return model.Constraints{
		Minimum:          ps.Minimum,
		Maximum:          ps.Maximum,
		ExclusiveMinimum: ps.ExclusiveMinimum,
		ExclusiveMaximum: ps.ExclusiveMaximum,
		MultipleOf:       ps.MultipleOf,
		MinLength:        ps.MinLength,
		MaxLength:        ps.MaxLength,
		Pattern:          ps.Pattern,
		MinItems:         ps.MinItems,
		MaxItems:         ps.MaxItems,
		UniqueItems:      ps.UniqueItems,
		Enum:             ps.Enum,
	}.Clone()
}

func describeSchema(s *parser.Schema) string {
	switch {
	case s == nil:
		return "no schema"
	case s.Ref != "":
		return "reference " + s.Ref
	case len(s.AllOf) > 0:
		return "allOf composition"
	case len(s.AnyOf) > 0:
		return "anyOf composition"
	case len(s.OneOf) > 0:
		return "oneOf composition"
	case s.Not != nil:
		return "not composition"
	case s.PrimaryType() == "":
		return "untyped schema without properties"
	default:
		return "type " + s.PrimaryType()
	}
}
