package parser

import (
	"github.com/erraggy/oasclientgen/internal/maputil"
)

// HTTP verbs recognized on a path item, in the order they are reported
// when a path item is walked.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

var knownMethods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
}

// IsHTTPMethod reports whether key (lower case) names an operation on a path item.
func IsHTTPMethod(key string) bool {
	return knownMethods[key]
}

// Document is an order-preserving view of an OpenAPI 3.x document holding
// only what client generation needs. Every map keeps source order.
type Document struct {
	OpenAPI    string
	Info       *Info
	Servers    []*Server
	Paths      *maputil.Ordered[*PathItem]
	Components *Components
}

// Info holds the document metadata.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Server is one entry of the servers list.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// Components holds the reusable definitions that references point into.
type Components struct {
	Schemas       *maputil.Ordered[*Schema]
	Parameters    *maputil.Ordered[*Parameter]
	RequestBodies *maputil.Ordered[*RequestBody]
	Responses     *maputil.Ordered[*Response]
}

// PathItem holds the operations of one path template.
type PathItem struct {
	// Parameters apply to every operation under the path
	Parameters []*Parameter
	// Operations is keyed by lower-case HTTP verb, in document order
	Operations *maputil.Ordered[*Operation]
}

// Operation is a single verb on a path.
type Operation struct {
	OperationID string   `yaml:"operationId"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Deprecated  bool     `yaml:"deprecated"`
	Tags        []string `yaml:"tags"`

	Parameters  []*Parameter                `yaml:"-"`
	RequestBody *RequestBody                `yaml:"-"`
	Responses   *maputil.Ordered[*Response] `yaml:"-"`

	// Line is the source line of the operation (0 if unknown)
	Line int `yaml:"-"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref         string  `yaml:"$ref"`
	Name        string  `yaml:"name"`
	In          string  `yaml:"in"`
	Description string  `yaml:"description"`
	Required    bool    `yaml:"required"`
	Schema      *Schema `yaml:"-"`
}

// Parameter locations.
const (
	ParamInPath   = "path"
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInCookie = "cookie"
)

// RequestBody describes an operation payload.
type RequestBody struct {
	Ref         string                       `yaml:"$ref"`
	Description string                       `yaml:"description"`
	Required    bool                         `yaml:"required"`
	Content     *maputil.Ordered[*MediaType] `yaml:"-"`
}

// Response describes a single response.
type Response struct {
	Ref         string                       `yaml:"$ref"`
	Description string                       `yaml:"description"`
	Content     *maputil.Ordered[*MediaType] `yaml:"-"`
}

// MediaType holds the schema for one content type.
type MediaType struct {
	Schema *Schema
}

// Schema is the subset of JSON Schema the generator understands.
// Unknown keywords are ignored.
type Schema struct {
	Ref         string   `yaml:"$ref"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Format      string   `yaml:"format"`
	Pattern     string   `yaml:"pattern"`
	Nullable    bool     `yaml:"nullable"`
	Deprecated  bool     `yaml:"deprecated"`
	ReadOnly    bool     `yaml:"readOnly"`
	WriteOnly   bool     `yaml:"writeOnly"`
	Default     any      `yaml:"default"`
	Enum        []any    `yaml:"enum"`
	Required    []string `yaml:"required"`

	MultipleOf  *float64 `yaml:"multipleOf"`
	MinLength   *int     `yaml:"minLength"`
	MaxLength   *int     `yaml:"maxLength"`
	MinItems    *int     `yaml:"minItems"`
	MaxItems    *int     `yaml:"maxItems"`
	UniqueItems bool     `yaml:"uniqueItems"`

	// Type holds every declared type. OAS 3.1 allows a list such as
	// ["string", "null"]; OAS 3.0 allows a single string.
	Type []string `yaml:"-"`

	// Minimum and Maximum are normalized across versions: a 3.1 numeric
	// exclusiveMinimum sets Minimum and ExclusiveMinimum together.
	Minimum          *float64 `yaml:"-"`
	Maximum          *float64 `yaml:"-"`
	ExclusiveMinimum bool     `yaml:"-"`
	ExclusiveMaximum bool     `yaml:"-"`

	Properties *maputil.Ordered[*Schema] `yaml:"-"`
	Items      *Schema                   `yaml:"-"`
	AllOf      []*Schema                 `yaml:"-"`
	AnyOf      []*Schema                 `yaml:"-"`
	OneOf      []*Schema                 `yaml:"-"`
	Not        *Schema                   `yaml:"-"`

	// AdditionalProperties is true when the keyword is present with a
	// schema or the value true.
	AdditionalProperties bool `yaml:"-"`

	// Line is the source line of the schema (0 if unknown)
	Line int `yaml:"-"`
}

// PrimaryType returns the first declared type other than "null", or "" when
// no type is declared.
func (s *Schema) PrimaryType() string {
	if s == nil {
		return ""
	}
	for _, t := range s.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}

// IsNullable reports whether the schema admits null, either through the
// 3.0 nullable keyword or a 3.1 "null" type entry.
func (s *Schema) IsNullable() bool {
	if s == nil {
		return false
	}
	if s.Nullable {
		return true
	}
	for _, t := range s.Type {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasComposition reports whether the schema uses allOf, anyOf, oneOf or not.
func (s *Schema) HasComposition() bool {
	if s == nil {
		return false
	}
	return len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0 || s.Not != nil
}

// HasProperties reports whether the schema declares at least one property.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}

// OperationCount returns the number of operations across all paths.
func (d *Document) OperationCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, item := range d.Paths.All() {
		n += item.Operations.Len()
	}
	return n
}

// SchemaCount returns the number of component schemas.
func (d *Document) SchemaCount() int {
	if d == nil || d.Components == nil {
		return 0
	}
	return d.Components.Schemas.Len()
}
