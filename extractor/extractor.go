package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/maputil"
	"github.com/erraggy/oasclientgen/internal/naming"
	"github.com/erraggy/oasclientgen/internal/severity"
	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/oaserrors"
	"github.com/erraggy/oasclientgen/parser"
)

// Result is the output of an extraction.
type Result struct {
	// Operations holds one descriptor per operation, in document order
	Operations []*model.OperationDescriptor
	// Pool holds component types and synthesized payload types
	Pool *model.TypePool
	// Issues lists substitutions and recoveries made along the way
	Issues []issues.Issue
}

// Extractor turns a parsed document into operation descriptors and the
// global type pool.
type Extractor struct {
	policy TypeResolutionPolicy
	logger parser.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPolicy sets the type resolution policy. Default: StrictPolicy.
func WithPolicy(p TypeResolutionPolicy) Option {
	return func(e *Extractor) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithLogger sets the structured logger for debug output.
func WithLogger(l parser.Logger) Option {
	return func(e *Extractor) {
		e.logger = parser.OrNop(l)
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{policy: StrictPolicy{}, logger: parser.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the active type resolution policy.
func (e *Extractor) Policy() TypeResolutionPolicy {
	return e.policy
}

// entry is an operation that passed identifier validation.
type entry struct {
	path   string
	verb   string
	item   *parser.PathItem
	op     *parser.Operation
	module string
}

func (en entry) location() string {
	return en.verb + " " + en.path
}

func (en entry) context() *issues.OperationContext {
	return &issues.OperationContext{Method: en.verb, Path: en.path, OperationID: en.op.OperationID}
}

// Extract runs both passes. The first validates every operationId and, if
// any is missing or malformed, returns a single *oaserrors.AggregateError
// listing all of them. The second builds descriptors in document order.
func (e *Extractor) Extract(doc *parser.Document) (*Result, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "extractor: document is nil"}
	}

	entries, err := e.identify(doc)
	if err != nil {
		return nil, err
	}

	x := &extraction{
		Extractor: e,
		doc:       doc,
		pool:      model.NewPoolBuilder(),
		methods:   make(map[string]map[string]string),
		skipped:   make(map[string]string),
		empty:     make(map[string]*model.TypeDescriptor),
	}
	if err := x.components(); err != nil {
		return nil, err
	}

	ops := make([]*model.OperationDescriptor, 0, len(entries))
	for _, en := range entries {
		op, err := x.operation(en)
		if err != nil {
			return nil, fmt.Errorf("extractor: %s: %w", en.location(), err)
		}
		ops = append(ops, op)
	}
	if err := x.references(ops); err != nil {
		return nil, err
	}

	pool := x.pool.Build()
	e.logger.Debug("extracted operations",
		"operations", len(ops),
		"types", pool.Len(),
		"policy", e.policy.Name(),
		"issues", len(x.issues))
	return &Result{Operations: ops, Pool: pool, Issues: x.issues}, nil
}

func (e *Extractor) identify(doc *parser.Document) ([]entry, error) {
	var (
		entries  []entry
		failures []error
	)
	for path, item := range doc.Paths.All() {
		for verb, op := range item.Operations.All() {
			upper := strings.ToUpper(verb)
			if op.OperationID == "" {
				failures = append(failures, &oaserrors.OperationIDError{
					Kind:       oaserrors.MissingOperationID,
					Path:       path,
					Verb:       upper,
					Suggestion: naming.SuggestOperationID(upper, path, declaredPathParamNames(item, op, path)),
				})
				continue
			}
			module, ok := naming.ModuleName(op.OperationID)
			if !ok {
				failures = append(failures, &oaserrors.OperationIDError{
					Kind:        oaserrors.MalformedOperationID,
					Path:        path,
					Verb:        upper,
					OperationID: op.OperationID,
					Suggestion:  naming.SuggestOperationID(upper, path, declaredPathParamNames(item, op, path)),
				})
				continue
			}
			entries = append(entries, entry{path: path, verb: upper, item: item, op: op, module: module})
		}
	}

	if len(failures) > 0 {
		return nil, &oaserrors.AggregateError{
			Summary: fmt.Sprintf("extractor: %d operation(s) have a missing or malformed operationId", len(failures)),
			Errors:  failures,
		}
	}
	return entries, nil
}

// extraction holds the state of one Extract call.
type extraction struct {
	*Extractor
	doc  *parser.Document
	pool *model.PoolBuilder
	// methods maps module -> method name -> "VERB /path" of its first owner
	methods map[string]map[string]string
	issues  []issues.Issue
	// skipped maps non-object component names to a short description
	skipped map[string]string
	// empty holds object components without properties
	empty map[string]*model.TypeDescriptor
}

func (x *extraction) warn(at, module string, op *issues.OperationContext, msg string) {
	x.issues = append(x.issues, issues.Issue{
		Path:      at,
		Message:   msg,
		Severity:  severity.SeverityWarning,
		Module:    module,
		Operation: op,
	})
	x.logger.Warn(msg, "path", at, "module", module)
}

func (x *extraction) info(at, module string, op *issues.OperationContext, msg string) {
	x.issues = append(x.issues, issues.Issue{
		Path:      at,
		Message:   msg,
		Severity:  severity.SeverityInfo,
		Module:    module,
		Operation: op,
	})
}

func (x *extraction) components() error {
	if x.doc.Components == nil {
		return nil
	}
	for name, s := range x.doc.Components.Schemas.All() {
		at := issues.ComponentPath(name)
		if !IsInlineObject(s) {
			// aliases and arrays carry no fields; references to one are
			// settled by the policy in references
			x.skipped[name] = describeSchema(s)
			x.info(at, "", nil, fmt.Sprintf("component schema %s (%s) is not an object; skipped", name, describeSchema(s)))
			continue
		}
		td, err := ResolveSchema(name, s)
		if err != nil {
			var se *oaserrors.SchemaError
			if errors.As(err, &se) {
				se.Path = "#/components/schemas/" + name
				se.Role = "component"
			}
			td, err = x.policy.Underspecified(Failure{
				TypeName:   name,
				Err:        err,
				Diagnostic: fmt.Sprintf("component schema %s unsupported: %s", name, detailOf(err)),
			})
			if err != nil {
				return fmt.Errorf("extractor: %w", err)
			}
			x.warn(at, "", nil, td.Diagnostic)
		} else if len(td.Properties) == 0 {
			x.empty[name] = td
		}
		if err := x.pool.Add(td); err != nil {
			return fmt.Errorf("extractor: %w", err)
		}
	}
	return nil
}

func (x *extraction) operation(en entry) (*model.OperationDescriptor, error) {
	params, undeclared, err := x.pathParams(en.item, en.op, en.path)
	if err != nil {
		return nil, err
	}
	for _, name := range undeclared {
		x.info(issues.OperationPath(en.path, en.verb, "parameters"), en.module, en.context(),
			fmt.Sprintf("path placeholder {%s} has no declared parameter; treating it as a string", name))
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	method, err := x.claimMethod(en, naming.MethodName(en.verb, en.path, names))
	if err != nil {
		return nil, err
	}

	desc := &model.OperationDescriptor{
		ExternalID:   en.op.OperationID,
		Module:       en.module,
		MethodName:   method,
		Verb:         en.verb,
		PathTemplate: en.path,
		Summary:      en.op.Summary,
		Description:  en.op.Description,
		Deprecated:   en.op.Deprecated,
		PathParams:   params,
	}
	if desc.RequestTypeName, err = x.request(en, method); err != nil {
		return nil, err
	}
	if desc.ResponseTypeName, err = x.response(en, method); err != nil {
		return nil, err
	}
	return desc, nil
}

// claimMethod reserves method within the operation's module, consulting the
// policy when it is already taken.
func (x *extraction) claimMethod(en entry, method string) (string, error) {
	seen := x.methods[en.module]
	if seen == nil {
		seen = make(map[string]string)
		x.methods[en.module] = seen
	}

	if first, taken := seen[method]; taken {
		collision := &oaserrors.CollisionError{
			Module:     en.module,
			MethodName: method,
			First:      first,
			Second:     en.location(),
		}
		if err := x.policy.MethodCollision(collision); err != nil {
			return "", err
		}
		base := method
		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s%d", base, n)
			if _, taken := seen[candidate]; !taken {
				method = candidate
				break
			}
		}
		x.warn(issues.OperationPath(en.path, en.verb), en.module, en.context(),
			fmt.Sprintf("method name %s is already used by %s; renamed to %s", base, first, method))
	}
	seen[method] = en.location()
	return method, nil
}

var templateParam = regexp.MustCompile(`\{([^{}]+)\}`)

func templateParams(path string) []string {
	var names []string
	for _, m := range templateParam.FindAllStringSubmatch(path, -1) {
		names = append(names, m[1])
	}
	return names
}

// pathParams merges path-item and operation parameters (the operation wins
// by name), keeps in: path ones in declared order, and appends template
// placeholders that nothing declares.
func (x *extraction) pathParams(item *parser.PathItem, op *parser.Operation, path string) ([]model.PathParam, []string, error) {
	var merged []*parser.Parameter
	index := make(map[string]int)
	for _, list := range [][]*parser.Parameter{item.Parameters, op.Parameters} {
		for _, p := range list {
			p, err := x.resolveParameter(p)
			if err != nil {
				return nil, nil, err
			}
			if p.In != parser.ParamInPath {
				continue
			}
			if i, ok := index[p.Name]; ok {
				merged[i] = p
				continue
			}
			index[p.Name] = len(merged)
			merged = append(merged, p)
		}
	}

	params := make([]model.PathParam, 0, len(merged))
	for _, p := range merged {
		params = append(params, model.PathParam{Name: p.Name, Type: paramType(p.Schema), Description: p.Description})
	}
	var undeclared []string
	for _, name := range templateParams(path) {
		if _, ok := index[name]; !ok {
			index[name] = len(params)
			params = append(params, model.PathParam{Name: name, Type: model.String})
			undeclared = append(undeclared, name)
		}
	}
	return params, undeclared, nil
}

func (x *extraction) resolveParameter(p *parser.Parameter) (*parser.Parameter, error) {
	if p.Ref == "" {
		return p, nil
	}
	name, err := ResolveRef(p.Ref)
	if err != nil {
		return nil, err
	}
	var target *parser.Parameter
	if x.doc.Components != nil {
		target, _ = x.doc.Components.Parameters.Get(name)
	}
	if target == nil {
		return nil, &oaserrors.ReferenceError{Ref: p.Ref, IsDangling: true, Message: "parameter is not defined in components.parameters"}
	}
	return target, nil
}

// declaredPathParamNames is the best-effort parameter list used for
// remediation suggestions, before any validation has happened.
func declaredPathParamNames(item *parser.PathItem, op *parser.Operation, path string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, list := range [][]*parser.Parameter{item.Parameters, op.Parameters} {
		for _, p := range list {
			if p.In == parser.ParamInPath && !seen[p.Name] {
				seen[p.Name] = true
				names = append(names, p.Name)
			}
		}
	}
	for _, name := range templateParams(path) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func paramType(s *parser.Schema) string {
	switch t := s.PrimaryType(); t {
	case model.Integer, model.Number, model.Boolean:
		return t
	default:
		return model.String
	}
}

// payloadSpec describes which side of an operation is being resolved.
type payloadSpec struct {
	role        string
	defaultName string
	at          string
	empty       error
}

func (x *extraction) request(en entry, method string) (string, error) {
	rb := en.op.RequestBody
	if rb == nil {
		return "", nil
	}
	ps := payloadSpec{
		role:        "request",
		defaultName: naming.RequestTypeName(method),
		at:          issues.OperationPath(en.path, en.verb, "requestBody"),
		empty:       oaserrors.ErrEmptyRequestSchema,
	}
	if rb.Ref != "" {
		name, err := ResolveRef(rb.Ref)
		var target *parser.RequestBody
		if err == nil && x.doc.Components != nil {
			target, _ = x.doc.Components.RequestBodies.Get(name)
		}
		if target == nil {
			return x.fail(en, ps, oaserrors.ErrMissingRequestSchema, "requestBody "+rb.Ref+" is not defined")
		}
		rb = target
	}

	mt := pickJSON(rb.Content)
	if mt == nil || mt.Schema == nil {
		return x.fail(en, ps, oaserrors.ErrMissingRequestSchema, "")
	}
	return x.payload(en, ps, mt.Schema)
}

func (x *extraction) response(en entry, method string) (string, error) {
	ps := payloadSpec{
		role:        "response",
		defaultName: naming.ResponseTypeName(method),
		at:          issues.OperationPath(en.path, en.verb, "responses", "200"),
		empty:       oaserrors.ErrEmptyResponseSchema,
	}
	resp, ok := en.op.Responses.Get("200")
	if !ok {
		return x.fail(en, ps, oaserrors.ErrMissing200Response, "")
	}
	if resp.Ref != "" {
		name, err := ResolveRef(resp.Ref)
		var target *parser.Response
		if err == nil && x.doc.Components != nil {
			target, _ = x.doc.Components.Responses.Get(name)
		}
		if target == nil {
			return x.fail(en, ps, oaserrors.ErrMissingResponseSchema, "response "+resp.Ref+" is not defined")
		}
		resp = target
	}

	mt := pickJSON(resp.Content)
	if mt == nil || mt.Schema == nil {
		return x.fail(en, ps, oaserrors.ErrMissingResponseSchema, "")
	}
	return x.payload(en, ps, mt.Schema)
}

func (x *extraction) payload(en entry, ps payloadSpec, schema *parser.Schema) (string, error) {
	if schema.Ref != "" {
		name, err := ResolveRef(schema.Ref)
		if err != nil {
			return x.fail(en, ps, oaserrors.ErrUnsupportedReferenceShape, err.Error())
		}
		if target, ok := x.componentSchema(name); ok && IsInlineObject(target) && !target.HasProperties() {
			if err := x.allowEmptyRef(en, ps, name); err != nil {
				return "", err
			}
		}
		return name, nil
	}

	td, err := ResolveSchema(ps.defaultName, schema)
	if err != nil {
		cause, detail := oaserrors.ErrUnsupportedSchemaKind, err.Error()
		var se *oaserrors.SchemaError
		if errors.As(err, &se) {
			cause, detail = se.Cause, se.Message
		}
		return x.fail(en, ps, cause, detail)
	}
	if len(td.Properties) == 0 {
		return x.fail(en, ps, ps.empty, "")
	}
	td.Synthesized = true
	return x.register(td, en.module), nil
}

// fail routes a payload failure through the policy and registers the
// substitute, if any, under the default name.
func (x *extraction) fail(en entry, ps payloadSpec, cause error, detail string) (string, error) {
	err := &oaserrors.SchemaError{
		Path:     en.path,
		Verb:     en.verb,
		Role:     ps.role,
		TypeName: ps.defaultName,
		Message:  detail,
		Cause:    cause,
	}
	td, perr := x.policy.Underspecified(Failure{
		TypeName:   ps.defaultName,
		Err:        err,
		Diagnostic: diagnostic(ps.role, cause, en, detail),
	})
	if perr != nil {
		return "", perr
	}
	x.warn(ps.at, en.module, en.context(), td.Diagnostic)
	return x.register(td, en.module), nil
}

// allowEmptyRef asks the policy whether a payload may reference a component
// without properties. The component itself stays in the pool unchanged.
func (x *extraction) allowEmptyRef(en entry, ps payloadSpec, name string) error {
	detail := fmt.Sprintf("referenced schema %s has no properties", name)
	_, err := x.policy.Underspecified(Failure{
		TypeName: name,
		Err: &oaserrors.SchemaError{
			Path: en.path, Verb: en.verb, Role: ps.role, TypeName: name,
			Message: detail, Cause: ps.empty,
		},
		Diagnostic: diagnostic(ps.role, ps.empty, en, detail),
	})
	if err != nil {
		return err
	}
	x.warn(ps.at, en.module, en.context(), diagnostic(ps.role, ps.empty, en, detail))
	return nil
}

// reference is one use of a component name, from an operation payload or
// from a property of a pooled type.
type reference struct {
	name   string
	from   string
	module string
	// property is false for operation payloads
	property bool
}

// references settles uses of components that cannot produce a struct. A
// skipped non-object component gets the policy's substitute added to the
// pool under its own name. A component without properties that a property
// points at is marked unresolved when the policy allows it. Payload uses of
// the latter were already settled by allowEmptyRef.
func (x *extraction) references(ops []*model.OperationDescriptor) error {
	var refs []reference
	for _, op := range ops {
		for _, name := range op.TypeNames() {
			refs = append(refs, reference{name: name, from: op.Location(), module: op.Module})
		}
	}
	for owner, td := range x.pool.All() {
		for _, p := range td.Properties {
			if name := p.Type.RefName(); name != "" {
				refs = append(refs, reference{name: name, from: owner + "." + p.Name, property: true})
			}
		}
	}

	settled := make(map[string]bool)
	for _, r := range refs {
		if settled[r.name] {
			continue
		}
		// a synthesized type may already hold a skipped component's name
		if kind, ok := x.skipped[r.name]; ok && !x.pool.Has(r.name) {
			settled[r.name] = true
			if err := x.substituteSkipped(r, kind); err != nil {
				return fmt.Errorf("extractor: %w", err)
			}
			continue
		}
		if td, ok := x.empty[r.name]; ok && r.property {
			settled[r.name] = true
			if err := x.markEmpty(r, td); err != nil {
				return fmt.Errorf("extractor: %w", err)
			}
		}
	}
	return nil
}

func (x *extraction) substituteSkipped(r reference, kind string) error {
	td, err := x.policy.Underspecified(Failure{
		TypeName: r.name,
		Err: &oaserrors.SchemaError{
			Path:     "#/components/schemas/" + r.name,
			Role:     "component",
			TypeName: r.name,
			Message:  fmt.Sprintf("%s cannot produce a type; referenced by %s", kind, r.from),
			Cause:    oaserrors.ErrUnsupportedSchemaKind,
		},
		Diagnostic: fmt.Sprintf("component schema %s (%s) is not an object; referenced by %s", r.name, kind, r.from),
	})
	if err != nil {
		return err
	}
	x.warn(issues.ComponentPath(r.name), r.module, nil, td.Diagnostic)
	return x.pool.Add(td)
}

func (x *extraction) markEmpty(r reference, td *model.TypeDescriptor) error {
	sub, err := x.policy.Underspecified(Failure{
		TypeName: r.name,
		Err: &oaserrors.SchemaError{
			Path:     "#/components/schemas/" + r.name,
			Role:     "component",
			TypeName: r.name,
			Message:  "referenced by " + r.from,
			Cause:    oaserrors.ErrEmptySchema,
		},
		Diagnostic: fmt.Sprintf("component schema %s has no properties; referenced by %s", r.name, r.from),
	})
	if err != nil {
		return err
	}
	td.Resolved = false
	td.Diagnostic = sub.Diagnostic
	x.warn(issues.ComponentPath(r.name), r.module, nil, td.Diagnostic)
	return nil
}

func (x *extraction) componentSchema(name string) (*parser.Schema, bool) {
	if x.doc.Components == nil {
		return nil, false
	}
	return x.doc.Components.Schemas.Get(name)
}

// register adds a synthesized type to the pool. A name already taken is
// qualified with the module name so the pool stays write-once.
func (x *extraction) register(td *model.TypeDescriptor, module string) string {
	if x.pool.Has(td.Name) {
		name := module + td.Name
		for n := 2; x.pool.Has(name); n++ {
			name = fmt.Sprintf("%s%s%d", module, td.Name, n)
		}
		x.logger.Debug("qualified synthesized type name", "type", td.Name, "as", name, "module", module)
		td.Name = name
	}
	if err := x.pool.Add(td); err != nil {
		// unreachable: the name is free and the builder is not frozen
		panic(err)
	}
	return td.Name
}

func diagnostic(role string, cause error, en entry, detail string) string {
	var msg string
	switch {
	case errors.Is(cause, oaserrors.ErrMissing200Response):
		msg = "200 response missing for " + en.location()
	case errors.Is(cause, oaserrors.ErrMissingRequestSchema), errors.Is(cause, oaserrors.ErrMissingResponseSchema):
		msg = role + " schema missing for " + en.location()
	case errors.Is(cause, oaserrors.ErrEmptyRequestSchema), errors.Is(cause, oaserrors.ErrEmptyResponseSchema):
		msg = role + " schema empty for " + en.location()
	default:
		msg = role + " schema unsupported for " + en.location()
	}
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

func detailOf(err error) string {
	var se *oaserrors.SchemaError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}

// pickJSON selects the JSON media type: application/json, then any
// +json type in document order, then */*.
func pickJSON(content *maputil.Ordered[*parser.MediaType]) *parser.MediaType {
	if mt, ok := content.Get("application/json"); ok {
		return mt
	}
	for key, mt := range content.All() {
		base, _, _ := strings.Cut(key, ";")
		base = strings.ToLower(strings.TrimSpace(base))
		if base == "application/json" || strings.HasSuffix(base, "+json") {
			return mt
		}
	}
	if mt, ok := content.Get("*/*"); ok {
		return mt
	}
	return nil
}
