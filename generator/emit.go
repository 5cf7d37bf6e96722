package generator

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/erraggy/oasclientgen/internal/issues"
	"github.com/erraggy/oasclientgen/internal/naming"
	"github.com/erraggy/oasclientgen/model"
	"github.com/erraggy/oasclientgen/parser"
)

// runtimePackage is the name generated code uses for the runtime import.
const runtimePackage = "clientrt"

// reservedTypeNames are declared by every module file.
var reservedTypeNames = []string{"Client", "New"}

// reservedParamNames are referenced inside generated method bodies and
// cannot be taken by path parameters.
var reservedParamNames = []string{"c", "ctx", "request", "opts", runtimePackage, "fmt", "url", "context"}

var pathPlaceholder = regexp.MustCompile(`\{([^{}]+)\}`)

type importSpec struct {
	Alias string
	Path  string
}

type headerData struct {
	// Doc is the package doc comment, ending in a newline
	Doc         string
	PackageName string
	Imports     []importSpec
}

type moduleRef struct {
	PackageName string
	Operations  int
}

type clientFileData struct {
	Header           headerData
	DefaultBaseURL   string
	DefaultUserAgent string
	Modules          []moduleRef
}

type fieldData struct {
	Comment string
	Name    string
	Type    string
	Tag     string
}

type typeData struct {
	Comment string
	Name    string
	// Map marks unresolved types, emitted as map[string]any
	Map    bool
	Fields []fieldData
}

type operationData struct {
	Comment  string
	Name     string
	Params   string
	Response string
	Verb     string
	PathExpr string
	Payload  string
}

type moduleFileData struct {
	Header     headerData
	Module     string
	Types      []typeData
	Operations []operationData
}

// emitter renders the files of one generation run into result.
type emitter struct {
	g             *Generator
	doc           *parser.Document
	result        *GenerateResult
	runtimeImport string
}

func (e *emitter) emit() error {
	if err := e.clientFile(); err != nil {
		return err
	}
	for _, m := range e.result.Modules {
		if err := e.moduleFile(m); err != nil {
			return fmt.Errorf("module %s: %w", m.Name, err)
		}
		e.result.GeneratedTypes += m.Types.Len()
		e.result.GeneratedOperations += len(m.Operations)
	}
	return nil
}

func (e *emitter) runtimeSpec() importSpec {
	spec := importSpec{Path: e.runtimeImport}
	if path.Base(e.runtimeImport) != runtimePackage {
		spec.Alias = runtimePackage
	}
	return spec
}

// render executes a template and appends the file to the result. A file
// that goimports rejects is kept unformatted with a warning.
func (e *emitter) render(tmpl, name string, data any, sizeHint int) error {
	src, err := executeTemplate(tmpl, data, sizeHint)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if e.g.Format {
		formatted, ferr := formatAndFixImports(name, src)
		if ferr != nil {
			e.result.Issues = append(e.result.Issues, GenerateIssue{
				Path:     name,
				Message:  fmt.Sprintf("formatting failed, keeping unformatted source: %v", ferr),
				Severity: SeverityWarning,
			})
			parser.OrNop(e.g.Logger).Warn("formatting failed", "file", name, "error", ferr)
		} else {
			src = formatted
		}
	}
	e.result.Files = append(e.result.Files, GeneratedFile{Name: name, Content: src})
	return nil
}

func (e *emitter) clientFile() error {
	pkg := e.result.PackageName
	data := clientFileData{
		Header: headerData{
			Doc:         e.clientDoc(),
			PackageName: pkg,
			Imports: []importSpec{
				{Path: "context"},
				{Path: "net/http"},
				e.runtimeSpec(),
			},
		},
		DefaultUserAgent: e.defaultUserAgent(),
	}
	if len(e.doc.Servers) > 0 && e.doc.Servers[0] != nil {
		data.DefaultBaseURL = e.doc.Servers[0].URL
	}
	for _, m := range e.result.Modules {
		data.Modules = append(data.Modules, moduleRef{PackageName: m.PackageName, Operations: len(m.Operations)})
	}
	return e.render("client.go.tmpl", ClientFileName, data, len(data.Modules))
}

func (e *emitter) clientDoc() string {
	pkg := e.result.PackageName
	title := ""
	if e.doc.Info != nil {
		title = cleanDescription(e.doc.Info.Title)
		if title != "" && e.doc.Info.Version != "" {
			title += " (version " + cleanDescription(e.doc.Info.Version) + ")"
		}
	}
	if title == "" {
		return "// Package " + pkg + " holds the client shared by the generated module packages.\n"
	}
	return "// Package " + pkg + " is the client for " + title + ".\n" +
		"// Each module of operations lives in its own subpackage.\n"
}

func (e *emitter) defaultUserAgent() string {
	product := e.result.PackageName
	version := "dev"
	if e.doc.Info != nil {
		if kebab := naming.ToKebabCase(e.doc.Info.Title); kebab != "" {
			product = kebab
		}
		if v := strings.Join(strings.Fields(e.doc.Info.Version), ""); v != "" {
			version = v
		}
	}
	return product + "-client/" + version
}

// moduleEmitter renders one module package.
type moduleEmitter struct {
	*emitter
	m *model.ModuleDescriptor
	// goNames maps module type names to their Go identifiers
	goNames  map[string]string
	usesTime bool
	usesFmt  bool
	usesURL  bool
}

func (e *emitter) moduleFile(m *model.ModuleDescriptor) error {
	me := &moduleEmitter{emitter: e, m: m, goNames: make(map[string]string, m.Types.Len())}
	me.allocateTypeNames()

	data := moduleFileData{Module: m.Name}
	roles := me.payloadRoles()
	for name, td := range m.Types.All() {
		data.Types = append(data.Types, me.typeDecl(name, td, roles[name]))
	}
	for _, op := range m.Operations {
		data.Operations = append(data.Operations, me.operation(op))
	}

	data.Header = headerData{
		Doc:         me.packageDoc(),
		PackageName: m.PackageName,
		Imports:     me.imports(),
	}
	name := m.PackageName + "/" + m.PackageName + ".go"
	return e.render("module.go.tmpl", name, data, len(data.Types)+len(data.Operations))
}

func (me *moduleEmitter) packageDoc() string {
	doc := "// Package " + me.m.PackageName + " calls the " + me.m.Name + " operations"
	if me.doc.Info != nil {
		if title := cleanDescription(me.doc.Info.Title); title != "" {
			doc += " of " + title
		}
	}
	return doc + ".\n"
}

func (me *moduleEmitter) imports() []importSpec {
	specs := []importSpec{{Path: "context"}}
	if me.usesFmt {
		specs = append(specs, importSpec{Path: "fmt"})
	}
	if me.usesURL {
		specs = append(specs, importSpec{Path: "net/url"})
	}
	if me.usesTime {
		specs = append(specs, importSpec{Path: "time"})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return append(specs, me.runtimeSpec())
}

// allocateTypeNames assigns unique Go identifiers to the module types, in
// module order. A renamed type is reported as info.
func (me *moduleEmitter) allocateTypeNames() {
	idents := newIdentSet(reservedTypeNames...)
	for name := range me.m.Types.All() {
		base := naming.ToTypeName(name)
		goName := idents.claim(base)
		me.goNames[name] = goName
		if goName != base {
			me.result.Issues = append(me.result.Issues, GenerateIssue{
				Path:     issues.ComponentPath(name),
				Module:   me.m.Name,
				Message:  fmt.Sprintf("type %s is emitted as %s to avoid a name clash", name, goName),
				Severity: SeverityInfo,
			})
		}
	}
}

// typeName returns the Go identifier of a module type. Names outside the
// module cannot occur after bundling; they fall back to the plain conversion.
func (me *moduleEmitter) typeName(name string) string {
	if goName, ok := me.goNames[name]; ok {
		return goName
	}
	return naming.ToTypeName(name)
}

// payloadRoles maps request and response type names to a description of
// where they are used, for types that carry no description of their own.
func (me *moduleEmitter) payloadRoles() map[string]string {
	roles := make(map[string]string)
	for _, op := range me.m.Operations {
		if op.RequestTypeName != "" {
			if _, ok := roles[op.RequestTypeName]; !ok {
				roles[op.RequestTypeName] = "is the request payload of " + op.Location()
			}
		}
		if op.ResponseTypeName != "" {
			if _, ok := roles[op.ResponseTypeName]; !ok {
				roles[op.ResponseTypeName] = "is the response payload of " + op.Location()
			}
		}
	}
	return roles
}

func (me *moduleEmitter) typeDecl(name string, td *model.TypeDescriptor, role string) typeData {
	goName := me.typeName(name)
	out := typeData{Name: goName}

	switch {
	case td.Description != "":
		out.Comment = formatMultilineComment(td.Description, goName, "")
	case role != "":
		out.Comment = "// " + goName + " " + role + ".\n"
	}

	if !td.Resolved {
		out.Map = true
		diag := td.Diagnostic
		if diag == "" {
			diag = "type " + name + " could not be resolved"
		}
		if out.Comment != "" {
			out.Comment += "//\n"
		}
		out.Comment += "// Diagnostic: " + cleanDescription(diag) + "\n"
		return out
	}

	fields := newIdentSet()
	for _, p := range td.Properties {
		ft := mapFieldType(p, me.typeName)
		if strings.Contains(ft.goType, "time.Time") {
			me.usesTime = true
		}
		if ft.kind == kindString && p.Constraints.Pattern != "" && enforcedPattern(p.Constraints) == "" {
			me.result.Issues = append(me.result.Issues, GenerateIssue{
				Path:     issues.FormatPath("components", "schemas", name, "properties", p.Name),
				Module:   me.m.Name,
				Message:  fmt.Sprintf("pattern %q of %s.%s is not a valid Go regular expression; not enforced", p.Constraints.Pattern, name, p.Name),
				Severity: SeverityInfo,
			})
		}
		out.Fields = append(out.Fields, fieldData{
			Comment: commentLine(p.Description, "\t"),
			Name:    fields.claim(naming.ToTypeName(p.Name)),
			Type:    ft.goType,
			Tag:     structTag(p, ft, buildValidateTag(p, ft)),
		})
	}
	return out
}

// goParamType maps a path parameter type to its Go type.
func goParamType(t string) string {
	switch t {
	case model.Integer:
		return "int64"
	case model.Number:
		return "float64"
	case model.Boolean:
		return "bool"
	}
	return "string"
}

func (me *moduleEmitter) operation(op *model.OperationDescriptor) operationData {
	methodName := naming.ToPascalCase(op.MethodName)
	out := operationData{
		Name:    methodName,
		Verb:    op.Verb,
		Comment: operationComment(op, methodName),
		Payload: runtimePackage + ".Empty{}",
	}

	idents := newIdentSet(reservedParamNames...)
	params := []string{"ctx context.Context"}
	goParams := make(map[string]string, len(op.PathParams))
	goTypes := make(map[string]string, len(op.PathParams))
	for _, pp := range op.PathParams {
		goName := idents.claim(naming.ToParamName(pp.Name))
		goType := goParamType(pp.Type)
		goParams[pp.Name] = goName
		goTypes[pp.Name] = goType
		params = append(params, goName+" "+goType)
	}
	if op.RequestTypeName != "" {
		params = append(params, "request *"+me.typeName(op.RequestTypeName))
		out.Payload = "request"
	}
	params = append(params, "opts ..."+runtimePackage+".RequestOption")
	out.Params = strings.Join(params, ", ")

	if op.ResponseTypeName != "" {
		out.Response = me.typeName(op.ResponseTypeName)
	} else {
		out.Response = runtimePackage + ".Empty"
	}

	expr, dynamic := pathExpr(op.PathTemplate, goParams, goTypes)
	out.PathExpr = expr
	if dynamic {
		me.usesFmt = true
		me.usesURL = true
	}
	return out
}

// operationComment builds the doc comment of a generated method.
func operationComment(op *model.OperationDescriptor, methodName string) string {
	text := op.Summary
	if strings.TrimSpace(text) == "" {
		text = op.Description
	}
	var c string
	if text = cleanDescription(text); text != "" {
		c = formatMultilineComment(text, methodName, "") + "//\n// " + op.Location() + "\n"
	} else {
		c = "// " + methodName + " calls " + op.Location() + ".\n"
	}
	if op.Deprecated {
		c += "//\n// Deprecated: " + op.Location() + " is marked deprecated.\n"
	}
	return c
}

// pathExpr returns the Go expression building the request path. Templates
// without placeholders become a string literal; otherwise each placeholder
// becomes an escaped fmt.Sprintf argument in template order. dynamic reports
// whether fmt and net/url are needed.
func pathExpr(template string, goParams, goTypes map[string]string) (expr string, dynamic bool) {
	matches := pathPlaceholder.FindAllStringSubmatchIndex(template, -1)

	var (
		format strings.Builder
		args   []string
		last   int
	)
	for _, m := range matches {
		name := template[m[2]:m[3]]
		goName, ok := goParams[name]
		if !ok {
			continue
		}
		format.WriteString(strings.ReplaceAll(template[last:m[0]], "%", "%%"))
		format.WriteString("%s")
		if goTypes[name] == "string" {
			args = append(args, "url.PathEscape("+goName+")")
		} else {
			args = append(args, "url.PathEscape(fmt.Sprint("+goName+"))")
		}
		last = m[1]
	}
	if len(args) == 0 {
		return strconv.Quote(template), false
	}
	format.WriteString(strings.ReplaceAll(template[last:], "%", "%%"))
	return "fmt.Sprintf(" + strconv.Quote(format.String()) + ", " + strings.Join(args, ", ") + ")", true
}
