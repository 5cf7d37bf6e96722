package issues

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return new(strings.Builder)
	},
}

// FormatPath joins document path segments with dots.
func FormatPath(segments ...string) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0]
	}

	sb := stringBuilderPool.Get().(*strings.Builder)
	sb.Reset()
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	result := sb.String()
	stringBuilderPool.Put(sb)
	return result
}

// OperationPath returns the location of an operation (or something inside
// it), e.g. OperationPath("/pets", "GET", "responses", "200") returns
// "paths./pets.get.responses.200".
func OperationPath(path, verb string, rest ...string) string {
	segments := make([]string, 0, 3+len(rest))
	segments = append(segments, "paths", path, strings.ToLower(verb))
	segments = append(segments, rest...)
	return FormatPath(segments...)
}

// ComponentPath returns the location of a component schema.
func ComponentPath(name string) string {
	return FormatPath("components", "schemas", name)
}
