package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits s on every rune that is neither a letter nor a digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ToPascalCase converts a string to PascalCase.
// Any non-alphanumeric rune separates words; the first letter of each word is
// upper-cased and the rest is left alone, so acronyms survive.
// Example: "user_profile" -> "UserProfile"
// Example: "API" -> "API"
func ToPascalCase(s string) string {
	parts := words(s)
	if len(parts) == 0 {
		return ""
	}
	// Casers carry state, so each call gets its own.
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range parts {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToCamelCase converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
func ToCamelCase(s string) string {
	return lowerFirst(ToPascalCase(s))
}

// ToSnakeCase converts a string to snake_case.
// An upper-case letter starts a new word unless it continues an acronym.
// Example: "UserProfile" -> "user_profile"
// Example: "APIClient" -> "api_client"
func ToSnakeCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		runes := []rune(w)
		for i, r := range runes {
			if i > 0 && unicode.IsUpper(r) {
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if !unicode.IsUpper(runes[i-1]) || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ToKebabCase converts a string to kebab-case.
// Example: "UserProfile" -> "user-profile"
func ToKebabCase(s string) string {
	return strings.ReplaceAll(ToSnakeCase(s), "_", "-")
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// goReservedWords contains Go keywords, which cannot be used as identifiers
// or package names. Predeclared identifiers such as "error" can be shadowed
// and are left alone.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// EscapeReservedWord appends an underscore when name is a Go keyword.
func EscapeReservedWord(name string) string {
	if goReservedWords[name] {
		return name + "_"
	}
	return name
}

// ToTypeName converts a schema or property name into an exported Go
// identifier. Names that do not start with a letter are prefixed with "T".
func ToTypeName(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return "Type"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}

// ToParamName converts a parameter name into an unexported Go identifier.
func ToParamName(s string) string {
	return EscapeReservedWord(lowerFirst(ToTypeName(s)))
}

// PackageName lower-cases a module name into a Go package name.
func PackageName(module string) string {
	name := strings.ToLower(strings.Join(words(module), ""))
	if name == "" {
		return "module"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "m" + name
	}
	return EscapeReservedWord(name)
}
