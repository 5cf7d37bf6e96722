package generator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/oasclientgen/model"
)

// valueKind classifies a Go field type for tag generation.
type valueKind int

const (
	kindString valueKind = iota
	kindTime
	kindBytes
	kindInteger
	kindNumber
	kindBoolean
	kindMap
	kindAny
	kindRef
	kindArray
)

// scalar reports whether optional fields of this kind become pointers.
func (k valueKind) scalar() bool {
	switch k {
	case kindString, kindTime, kindInteger, kindNumber, kindBoolean:
		return true
	}
	return false
}

// zeroIsValid reports whether the zero value of the kind is a legitimate
// payload value, in which case "required" cannot be enforced on it.
func (k valueKind) zeroIsValid() bool {
	switch k {
	case kindInteger, kindNumber, kindBoolean:
		return true
	}
	return false
}

// primitiveType maps a primitive schema type and format to a Go type.
func primitiveType(name, format string) (string, valueKind) {
	switch name {
	case model.String:
		switch format {
		case "date-time":
			return "time.Time", kindTime
		case "byte", "binary":
			return "[]byte", kindBytes
		}
		return "string", kindString
	case model.Integer:
		if format == "int32" {
			return "int32", kindInteger
		}
		return "int64", kindInteger
	case model.Number:
		if format == "float" {
			return "float32", kindNumber
		}
		return "float64", kindNumber
	case model.Boolean:
		return "bool", kindBoolean
	case model.Object:
		return "map[string]any", kindMap
	}
	return "any", kindAny
}

// fieldType is the Go rendering of one property.
type fieldType struct {
	goType string
	kind   valueKind
	// elem is the element kind of arrays
	elem valueKind
}

// mapFieldType maps a property to its Go type. typeName translates a
// module type name into its Go identifier. References are always pointers,
// which keeps self-referencing types legal; optional and nullable scalars
// are pointers so that absence survives a round trip.
func mapFieldType(p *model.PropertyDescriptor, typeName func(string) string) fieldType {
	switch p.Type.Kind {
	case model.KindRef:
		return fieldType{goType: "*" + typeName(p.Type.Name), kind: kindRef}
	case model.KindArray:
		elem := p.Type.Elem
		if elem == nil {
			return fieldType{goType: "[]any", kind: kindArray, elem: kindAny}
		}
		if elem.Kind == model.KindRef {
			return fieldType{goType: "[]" + typeName(elem.Name), kind: kindArray, elem: kindRef}
		}
		goType, k := primitiveType(elem.Name, "")
		return fieldType{goType: "[]" + goType, kind: kindArray, elem: k}
	}

	goType, k := primitiveType(p.Type.Name, p.Format)
	if k.scalar() && (!p.Required || p.Nullable) {
		goType = "*" + goType
	}
	return fieldType{goType: goType, kind: k}
}

// formatGuards maps string formats to validator rules.
var formatGuards = map[string]string{
	"email":    "email",
	"uri":      "url",
	"url":      "url",
	"uuid":     "uuid",
	"ipv4":     "ipv4",
	"ipv6":     "ipv6",
	"hostname": "hostname",
	"date":     "datetime=2006-01-02",
}

// buildValidateTag builds the validate tag value for a property.
func buildValidateTag(p *model.PropertyDescriptor, ft fieldType) string {
	var rules []string
	c := p.Constraints

	switch ft.kind {
	case kindString:
		if c.MinLength != nil {
			rules = append(rules, fmt.Sprintf("min=%d", *c.MinLength))
		}
		if c.MaxLength != nil {
			rules = append(rules, fmt.Sprintf("max=%d", *c.MaxLength))
		}
		if guard, ok := formatGuards[p.Format]; ok {
			rules = append(rules, guard)
		}
		if enforcedPattern(c) != "" {
			rules = append(rules, "pattern")
		}
		if oneof := oneOf(c.Enum, ft.kind); oneof != "" {
			rules = append(rules, oneof)
		}
	case kindInteger:
		rules = append(rules, integerBounds(c)...)
		if c.MultipleOf != nil && *c.MultipleOf > 0 {
			rules = append(rules, "multipleof="+formatNumber(*c.MultipleOf))
		}
		if oneof := oneOf(c.Enum, ft.kind); oneof != "" {
			rules = append(rules, oneof)
		}
	case kindNumber:
		if c.Minimum != nil {
			rules = append(rules, bound("gte", "gt", c.ExclusiveMinimum)+"="+formatNumber(*c.Minimum))
		}
		if c.Maximum != nil {
			rules = append(rules, bound("lte", "lt", c.ExclusiveMaximum)+"="+formatNumber(*c.Maximum))
		}
		if c.MultipleOf != nil && *c.MultipleOf > 0 {
			rules = append(rules, "multipleof="+formatNumber(*c.MultipleOf))
		}
	case kindArray:
		if c.MinItems != nil {
			rules = append(rules, fmt.Sprintf("min=%d", *c.MinItems))
		}
		if c.MaxItems != nil {
			rules = append(rules, fmt.Sprintf("max=%d", *c.MaxItems))
		}
		// unique hashes elements, so it is limited to comparable ones
		if c.UniqueItems && ft.elem.scalar() && ft.elem != kindTime {
			rules = append(rules, "unique")
		}
		if ft.elem == kindRef {
			rules = append(rules, "dive")
		}
	}

	switch {
	case p.Required && !p.Nullable && !ft.kind.zeroIsValid():
		rules = append([]string{"required"}, rules...)
	case len(rules) > 0 && (!p.Required || p.Nullable):
		rules = append([]string{"omitempty"}, rules...)
	}
	return strings.Join(rules, ",")
}

func bound(inclusive, exclusive string, isExclusive bool) string {
	if isExclusive {
		return exclusive
	}
	return inclusive
}

// integerBounds renders minimum and maximum for integer fields. The
// validator parses bounds of integer fields as integers, so fractional
// bounds are rounded inward and bounds outside int64 are dropped.
func integerBounds(c model.Constraints) []string {
	var rules []string
	if c.Minimum != nil {
		if v, ok := intBound(*c.Minimum, c.ExclusiveMinimum, math.Ceil, 1); ok {
			rules = append(rules, "gte="+strconv.FormatInt(v, 10))
		}
	}
	if c.Maximum != nil {
		if v, ok := intBound(*c.Maximum, c.ExclusiveMaximum, math.Floor, -1); ok {
			rules = append(rules, "lte="+strconv.FormatInt(v, 10))
		}
	}
	return rules
}

func intBound(v float64, exclusive bool, round func(float64) float64, step int64) (int64, bool) {
	r := round(v)
	if r < math.MinInt64 || r >= math.MaxInt64 || math.IsNaN(r) {
		return 0, false
	}
	n := int64(r)
	if exclusive && r == v {
		n += step
	}
	return n, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// enumToken matches enum values that survive the validator's tag syntax.
var enumToken = regexp.MustCompile(`^[A-Za-z0-9_.:/+\-]+$`)

// oneOf renders an enum as a oneof rule, or "" when a value cannot be
// expressed in a tag.
func oneOf(values []any, kind valueKind) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		switch kind {
		case kindString:
			str, ok := v.(string)
			if !ok || !enumToken.MatchString(str) {
				return ""
			}
			s = str
		case kindInteger:
			n, ok := integral(v)
			if !ok {
				return ""
			}
			s = strconv.FormatInt(n, 10)
		default:
			return ""
		}
		parts = append(parts, s)
	}
	return "oneof=" + strings.Join(parts, " ")
}

func integral(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// enforcedPattern returns the pattern constraint when it compiles as a Go
// regular expression, or "" otherwise. Lookaround and backreferences are
// not supported by RE2.
func enforcedPattern(c model.Constraints) string {
	if c.Pattern == "" {
		return ""
	}
	if _, err := regexp.Compile(c.Pattern); err != nil {
		return ""
	}
	return c.Pattern
}

// structTag renders the full struct tag literal of a field, including the
// surrounding quotes. A raw string is used unless the tag itself contains a
// backtick.
func structTag(p *model.PropertyDescriptor, ft fieldType, validate string) string {
	jsonName := p.Name
	if !p.Required {
		jsonName += ",omitempty"
	}
	parts := []string{"json:" + strconv.Quote(jsonName)}
	if validate != "" {
		parts = append(parts, "validate:"+strconv.Quote(validate))
	}
	if pattern := enforcedPattern(p.Constraints); ft.kind == kindString && pattern != "" {
		parts = append(parts, "pattern:"+strconv.Quote(pattern))
	}
	tag := strings.Join(parts, " ")
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
