package naming

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	operationIDPattern = regexp.MustCompile(`(?i)^([A-Za-z]+?)(?:controller)?_([A-Za-z]+)`)
	versionSegment     = regexp.MustCompile(`(?i)^v\d+$`)
)

// droppedPrefixes are path segments that carry no resource meaning.
var droppedPrefixes = map[string]bool{
	"api":  true,
	"rest": true,
}

// ModuleName extracts the module from an operationId of the form
// prefix[Controller]_verbPhrase. It returns false when the identifier does
// not match or the prefix is empty once "controller" is removed.
//
// ModuleName(m + "_" + verb) == m for every module m it returns.
func ModuleName(operationID string) (string, bool) {
	m := operationIDPattern.FindStringSubmatch(operationID)
	if m == nil {
		return "", false
	}
	prefix := m[1]
	if len(prefix) >= len("controller") && strings.EqualFold(prefix[len(prefix)-len("controller"):], "controller") {
		prefix = prefix[:len(prefix)-len("controller")]
	}
	if prefix == "" {
		return "", false
	}
	return ToPascalCase(prefix), true
}

// VerbLexeme maps an HTTP verb to the word that starts a method name.
func VerbLexeme(verb string) string {
	switch strings.ToUpper(verb) {
	case "GET":
		return "get"
	case "POST":
		return "create"
	case "PUT":
		return "update"
	case "DELETE":
		return "delete"
	case "PATCH":
		return "patch"
	default:
		return strings.ToLower(verb)
	}
}

// pathParts is a path reduced to the segments that name a method.
type pathParts struct {
	version  string
	resource []string
}

// isParamSegment reports whether seg is (or contains) a {param} placeholder.
func isParamSegment(seg string) bool {
	return strings.Contains(seg, "{")
}

func splitPath(path string) pathParts {
	var parts pathParts
	prevKept := false
	for _, seg := range strings.Split(path, "/") {
		switch {
		case seg == "":
			continue
		case isParamSegment(seg):
			// /orders/{id} addresses one order, not the collection
			if prevKept {
				parts.resource = parts.resource[:len(parts.resource)-1]
			}
			prevKept = false
		case droppedPrefixes[strings.ToLower(seg)]:
			prevKept = false
		case versionSegment.MatchString(seg):
			if parts.version == "" {
				parts.version = strings.ToLower(seg)
			}
			prevKept = false
		default:
			parts.resource = append(parts.resource, seg)
			prevKept = true
		}
	}
	return parts
}

// MethodName derives a method name from the verb, the path template and the
// path parameter names in declared order.
//
//	GET /api/v1/users        -> getV1Users
//	PUT /orders/{id}/status  -> updateStatusById
func MethodName(verb, path string, pathParams []string) string {
	parts := splitPath(path)

	var b strings.Builder
	b.WriteString(VerbLexeme(verb))
	b.WriteString(ToPascalCase(parts.version))
	for _, seg := range parts.resource {
		b.WriteString(ToPascalCase(seg))
	}
	if len(pathParams) > 0 {
		b.WriteString("By")
		for _, p := range pathParams {
			b.WriteString(ToPascalCase(p))
		}
	}
	return b.String()
}

// RequestTypeName returns the default request type name for a method.
func RequestTypeName(method string) string {
	return upperFirst(method) + "Request"
}

// ResponseTypeName returns the default response type name for a method.
func ResponseTypeName(method string) string {
	return upperFirst(method) + "Response"
}

// SuggestOperationID builds an identifier that satisfies the
// prefix[Controller]_verbPhrase convention for an operation that has none.
// The resource is the first meaningful path segment, reduced to letters.
func SuggestOperationID(verb, path string, pathParams []string) string {
	resource := ""
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || isParamSegment(seg) || versionSegment.MatchString(seg) || droppedPrefixes[strings.ToLower(seg)] {
			continue
		}
		resource = lettersOnly(ToCamelCase(seg))
		if resource != "" {
			break
		}
	}
	if resource == "" {
		resource = "default"
	}
	return resource + "Controller_" + MethodName(verb, path, pathParams)
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}
