package parser

import (
	"fmt"
	"iter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasclientgen/internal/maputil"
	"github.com/erraggy/oasclientgen/oaserrors"
)

// The decoder walks yaml.Node trees instead of unmarshaling into Go maps so
// that every mapping keeps its source order. JSON input goes through the same
// path because JSON is valid YAML.

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// pairs iterates over the key/value pairs of a mapping node in source order.
func pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i].Value, resolve(n.Content[i+1])) {
				return
			}
		}
	}
}

func nodeError(n *yaml.Node, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return &oaserrors.ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func expectMapping(n *yaml.Node, what string) error {
	if n == nil || n.Kind != yaml.MappingNode {
		return nodeError(n, "%s must be a mapping", what)
	}
	return nil
}

func expectSequence(n *yaml.Node, what string) error {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nodeError(n, "%s must be a sequence", what)
	}
	return nil
}

func decodeInto(n *yaml.Node, what string, v any) error {
	if err := n.Decode(v); err != nil {
		return &oaserrors.ParseError{Line: n.Line, Message: "invalid " + what, Cause: err}
	}
	return nil
}

// decodeDocument converts the root of a parsed stream into a Document.
func decodeDocument(root *yaml.Node) (*Document, error) {
	n := resolve(root)
	if err := expectMapping(n, "document root"); err != nil {
		return nil, err
	}

	doc := &Document{Paths: maputil.NewOrdered[*PathItem](0)}
	for key, val := range pairs(n) {
		var err error
		switch key {
		case "openapi":
			doc.OpenAPI = val.Value
		case "swagger":
			return nil, nodeError(val, "OpenAPI 2.0 (swagger %s) documents are not supported", val.Value)
		case "info":
			doc.Info = &Info{}
			err = decodeInto(val, "info", doc.Info)
		case "servers":
			doc.Servers, err = decodeServers(val)
		case "paths":
			doc.Paths, err = decodePaths(val)
		case "components":
			doc.Components, err = decodeComponents(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func decodeServers(n *yaml.Node) ([]*Server, error) {
	if err := expectSequence(n, "servers"); err != nil {
		return nil, err
	}
	servers := make([]*Server, 0, len(n.Content))
	for _, item := range n.Content {
		s := &Server{}
		if err := decodeInto(resolve(item), "server", s); err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}
	return servers, nil
}

func decodePaths(n *yaml.Node) (*maputil.Ordered[*PathItem], error) {
	if err := expectMapping(n, "paths"); err != nil {
		return nil, err
	}
	paths := maputil.NewOrdered[*PathItem](len(n.Content) / 2)
	for path, val := range pairs(n) {
		item, err := decodePathItem(val)
		if err != nil {
			return nil, err
		}
		paths.Set(path, item)
	}
	return paths, nil
}

func decodePathItem(n *yaml.Node) (*PathItem, error) {
	if err := expectMapping(n, "path item"); err != nil {
		return nil, err
	}
	item := &PathItem{Operations: maputil.NewOrdered[*Operation](0)}
	for key, val := range pairs(n) {
		switch {
		case key == "parameters":
			params, err := decodeParameters(val)
			if err != nil {
				return nil, err
			}
			item.Parameters = params
		case IsHTTPMethod(key):
			op, err := decodeOperation(val)
			if err != nil {
				return nil, err
			}
			item.Operations.Set(key, op)
		}
	}
	return item, nil
}

func decodeOperation(n *yaml.Node) (*Operation, error) {
	if err := expectMapping(n, "operation"); err != nil {
		return nil, err
	}
	op := &Operation{Line: n.Line}
	if err := decodeInto(n, "operation", op); err != nil {
		return nil, err
	}
	for key, val := range pairs(n) {
		var err error
		switch key {
		case "parameters":
			op.Parameters, err = decodeParameters(val)
		case "requestBody":
			op.RequestBody, err = decodeRequestBody(val)
		case "responses":
			op.Responses, err = decodeResponses(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return op, nil
}

func decodeParameters(n *yaml.Node) ([]*Parameter, error) {
	if err := expectSequence(n, "parameters"); err != nil {
		return nil, err
	}
	params := make([]*Parameter, 0, len(n.Content))
	for _, item := range n.Content {
		p, err := decodeParameter(resolve(item))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func decodeParameter(n *yaml.Node) (*Parameter, error) {
	if err := expectMapping(n, "parameter"); err != nil {
		return nil, err
	}
	p := &Parameter{}
	if err := decodeInto(n, "parameter", p); err != nil {
		return nil, err
	}
	for key, val := range pairs(n) {
		if key == "schema" {
			s, err := decodeSchema(val)
			if err != nil {
				return nil, err
			}
			p.Schema = s
		}
	}
	return p, nil
}

func decodeRequestBody(n *yaml.Node) (*RequestBody, error) {
	if err := expectMapping(n, "requestBody"); err != nil {
		return nil, err
	}
	rb := &RequestBody{}
	if err := decodeInto(n, "requestBody", rb); err != nil {
		return nil, err
	}
	for key, val := range pairs(n) {
		if key == "content" {
			content, err := decodeContent(val)
			if err != nil {
				return nil, err
			}
			rb.Content = content
		}
	}
	return rb, nil
}

func decodeResponses(n *yaml.Node) (*maputil.Ordered[*Response], error) {
	if err := expectMapping(n, "responses"); err != nil {
		return nil, err
	}
	responses := maputil.NewOrdered[*Response](len(n.Content) / 2)
	for code, val := range pairs(n) {
		resp, err := decodeResponse(val)
		if err != nil {
			return nil, err
		}
		responses.Set(code, resp)
	}
	return responses, nil
}

func decodeResponse(n *yaml.Node) (*Response, error) {
	if err := expectMapping(n, "response"); err != nil {
		return nil, err
	}
	resp := &Response{}
	if err := decodeInto(n, "response", resp); err != nil {
		return nil, err
	}
	for key, val := range pairs(n) {
		if key == "content" {
			content, err := decodeContent(val)
			if err != nil {
				return nil, err
			}
			resp.Content = content
		}
	}
	return resp, nil
}

func decodeContent(n *yaml.Node) (*maputil.Ordered[*MediaType], error) {
	if err := expectMapping(n, "content"); err != nil {
		return nil, err
	}
	content := maputil.NewOrdered[*MediaType](len(n.Content) / 2)
	for mediaType, val := range pairs(n) {
		if err := expectMapping(val, "media type "+mediaType); err != nil {
			return nil, err
		}
		mt := &MediaType{}
		for key, sv := range pairs(val) {
			if key == "schema" {
				s, err := decodeSchema(sv)
				if err != nil {
					return nil, err
				}
				mt.Schema = s
			}
		}
		content.Set(mediaType, mt)
	}
	return content, nil
}

func decodeComponents(n *yaml.Node) (*Components, error) {
	if err := expectMapping(n, "components"); err != nil {
		return nil, err
	}
	c := &Components{
		Schemas:       maputil.NewOrdered[*Schema](0),
		Parameters:    maputil.NewOrdered[*Parameter](0),
		RequestBodies: maputil.NewOrdered[*RequestBody](0),
		Responses:     maputil.NewOrdered[*Response](0),
	}
	for key, val := range pairs(n) {
		var err error
		switch key {
		case "schemas":
			c.Schemas, err = decodeSchemaMap(val)
		case "parameters":
			err = decodeNamed(val, key, c.Parameters, decodeParameter)
		case "requestBodies":
			err = decodeNamed(val, key, c.RequestBodies, decodeRequestBody)
		case "responses":
			err = decodeNamed(val, key, c.Responses, decodeResponse)
		}
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func decodeNamed[V any](n *yaml.Node, what string, into *maputil.Ordered[V], decode func(*yaml.Node) (V, error)) error {
	if err := expectMapping(n, what); err != nil {
		return err
	}
	for name, val := range pairs(n) {
		v, err := decode(val)
		if err != nil {
			return err
		}
		into.Set(name, v)
	}
	return nil
}

func decodeSchemaMap(n *yaml.Node) (*maputil.Ordered[*Schema], error) {
	schemas := maputil.NewOrdered[*Schema](len(n.Content) / 2)
	if err := decodeNamed(n, "schemas", schemas, decodeSchema); err != nil {
		return nil, err
	}
	return schemas, nil
}

func decodeSchemaList(n *yaml.Node, what string) ([]*Schema, error) {
	if err := expectSequence(n, what); err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, len(n.Content))
	for _, item := range n.Content {
		s, err := decodeSchema(resolve(item))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeSchema(n *yaml.Node) (*Schema, error) {
	if n == nil {
		return nil, nodeError(n, "schema must be a mapping")
	}
	// OAS 3.1 permits boolean schemas; they carry no structure.
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool" {
		return &Schema{Line: n.Line}, nil
	}
	if err := expectMapping(n, "schema"); err != nil {
		return nil, err
	}

	s := &Schema{Line: n.Line}
	if err := decodeInto(n, "schema", s); err != nil {
		return nil, err
	}

	var exclusiveMin, exclusiveMax *yaml.Node
	for key, val := range pairs(n) {
		var err error
		switch key {
		case "type":
			s.Type, err = decodeTypes(val)
		case "minimum":
			s.Minimum, err = decodeFloat(val, key)
		case "maximum":
			s.Maximum, err = decodeFloat(val, key)
		case "exclusiveMinimum":
			exclusiveMin = val
		case "exclusiveMaximum":
			exclusiveMax = val
		case "properties":
			s.Properties, err = decodeSchemaMap(val)
		case "items":
			s.Items, err = decodeSchema(val)
		case "allOf":
			s.AllOf, err = decodeSchemaList(val, key)
		case "anyOf":
			s.AnyOf, err = decodeSchemaList(val, key)
		case "oneOf":
			s.OneOf, err = decodeSchemaList(val, key)
		case "not":
			s.Not, err = decodeSchema(val)
		case "additionalProperties":
			s.AdditionalProperties = !(val.Kind == yaml.ScalarNode && val.Value == "false")
		}
		if err != nil {
			return nil, err
		}
	}

	var err error
	if s.Minimum, s.ExclusiveMinimum, err = decodeExclusive(exclusiveMin, s.Minimum, "exclusiveMinimum"); err != nil {
		return nil, err
	}
	if s.Maximum, s.ExclusiveMaximum, err = decodeExclusive(exclusiveMax, s.Maximum, "exclusiveMaximum"); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeTypes(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}, nil
	case yaml.SequenceNode:
		types := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			types = append(types, resolve(item).Value)
		}
		return types, nil
	default:
		return nil, nodeError(n, "type must be a string or a list of strings")
	}
}

func decodeFloat(n *yaml.Node, what string) (*float64, error) {
	var f float64
	if err := decodeInto(n, what, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// decodeExclusive handles both the OAS 3.0 boolean form, which modifies
// bound, and the OAS 3.1 numeric form, which replaces it.
func decodeExclusive(n *yaml.Node, bound *float64, what string) (*float64, bool, error) {
	if n == nil {
		return bound, false, nil
	}
	if n.ShortTag() == "!!bool" {
		var b bool
		if err := decodeInto(n, what, &b); err != nil {
			return nil, false, err
		}
		return bound, b && bound != nil, nil
	}
	f, err := decodeFloat(n, what)
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}
