package generator

import (
	"embed"
	"path"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
}

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
	"join":  strings.Join,
}

// executeTemplate executes a template by name into a pooled buffer sized by
// sizeHint (operations plus types) and returns a copy of the raw output.
func executeTemplate(name string, data any, sizeHint int) ([]byte, error) {
	buf := getTemplateBuffer(sizeHint)
	defer putTemplateBuffer(buf, sizeHint)

	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// formatAndFixImports runs goimports over src: gofmt formatting plus
// pruning of unused and grouping of remaining imports.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(path.Base(filename), src, nil)
}
