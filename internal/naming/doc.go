// Package naming derives every generated identifier from the source document.
//
// It holds the case conversions (ToPascalCase, ToCamelCase, ToSnakeCase,
// ToKebabCase), module inference from operation identifiers (ModuleName),
// deterministic method naming from verb and path (MethodName), the derived
// request and response type names, and the remediation hint offered for
// operations that lack an identifier (SuggestOperationID).
//
// All functions are pure: the same input always produces the same output.
package naming
