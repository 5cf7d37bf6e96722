// This file holds identifier allocation for generated code and the
// description helpers used for Go comments.

package generator

import (
	"strconv"
	"strings"
)

// maxDescriptionLength is the maximum length for descriptions in Go comments
// before truncation. This keeps generated code readable and prevents excessively
// long comment lines.
const maxDescriptionLength = 200

// identSet hands out identifiers that are unique within one scope: the
// types of a module, the fields of a struct or the parameters of a method.
type identSet struct {
	taken map[string]bool
}

func newIdentSet(reserved ...string) *identSet {
	s := &identSet{taken: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		s.taken[r] = true
	}
	return s
}

// claim returns base, or base followed by the smallest suffix from 2 up
// that is still free, and marks the result as taken.
func (s *identSet) claim(base string) string {
	name := base
	for n := 2; s.taken[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	s.taken[name] = true
	return name
}

// normalizeNewlines turns CRLF and CR line endings into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// cleanDescription prepares an OpenAPI description for use in Go comments.
// It removes newlines, trims whitespace, and truncates long descriptions.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(normalizeNewlines(s), "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) > maxDescriptionLength {
		// Truncate at rune boundary to avoid splitting multi-byte characters
		runes := []rune(s)
		if len(runes) > maxDescriptionLength-3 {
			s = string(runes[:maxDescriptionLength-3]) + "..."
		}
	}
	return s
}

// formatMultilineComment formats a description as multi-line Go comments.
// The name is included as a prefix on the first line; blank lines are dropped.
// If the text doesn't contain newlines, it's returned as a single-line comment.
func formatMultilineComment(text, name, indent string) string {
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return ""
	}

	var buf strings.Builder
	lines := strings.Split(text, "\n")

	first := strings.TrimSpace(lines[0])
	buf.WriteString(indent)
	buf.WriteString("// ")
	buf.WriteString(name)
	if first != "" {
		buf.WriteString(" ")
		buf.WriteString(first)
	}
	buf.WriteString("\n")

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		buf.WriteString(indent)
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	return buf.String()
}

// commentLine returns text as a single comment line, or "" for empty text.
func commentLine(text, indent string) string {
	text = cleanDescription(text)
	if text == "" {
		return ""
	}
	return indent + "// " + text + "\n"
}
