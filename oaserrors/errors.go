package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the source document could not be loaded or decoded.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrMissingOperationID indicates an operation declares no operationId.
	ErrMissingOperationID = errors.New("missing operationId")

	// ErrMalformedOperationID indicates an operationId does not follow the
	// prefix[Controller]_verbPhrase convention.
	ErrMalformedOperationID = errors.New("malformed operationId")

	// ErrMissingRequestSchema indicates a request body without a JSON schema.
	ErrMissingRequestSchema = errors.New("missing request schema")

	// ErrEmptyRequestSchema indicates a request schema with no properties.
	ErrEmptyRequestSchema = errors.New("empty request schema")

	// ErrMissing200Response indicates an operation without a 200 response.
	ErrMissing200Response = errors.New("missing 200 response")

	// ErrMissingResponseSchema indicates a 200 response without a JSON schema.
	ErrMissingResponseSchema = errors.New("missing response schema")

	// ErrEmptyResponseSchema indicates a response schema with no properties.
	ErrEmptyResponseSchema = errors.New("empty response schema")

	// ErrUnsupportedReferenceShape indicates a $ref that is not of the form ".../<name>".
	ErrUnsupportedReferenceShape = errors.New("unsupported reference shape")

	// ErrUnsupportedSchemaKind indicates a schema that is not an inline object
	// schema, or a property shape the resolver does not handle.
	ErrUnsupportedSchemaKind = errors.New("unsupported schema kind")

	// ErrEmptySchema indicates a referenced object schema that declares no properties.
	ErrEmptySchema = errors.New("empty schema")

	// ErrDanglingReference indicates a referenced type that exists nowhere in the document.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrMethodNameCollision indicates two operations in one module resolve
	// to the same method name.
	ErrMethodNameCollision = errors.New("method name collision")
)

// OperationIDKind distinguishes the two operationId failures.
type OperationIDKind int

const (
	// MissingOperationID means the operation has no operationId at all.
	MissingOperationID OperationIDKind = iota
	// MalformedOperationID means the operationId does not match the naming convention.
	MalformedOperationID
)

// OperationIDError describes one operation whose identifier cannot be used
// to infer a module.
type OperationIDError struct {
	Kind OperationIDKind
	// Path is the path template (e.g., "/users/{id}")
	Path string
	// Verb is the upper-case HTTP verb
	Verb string
	// OperationID is the offending identifier (empty when missing)
	OperationID string
	// Suggestion is a synthesized identifier that would satisfy the convention.
	// It is never applied automatically.
	Suggestion string
}

// Error returns a human-readable error message.
func (e *OperationIDError) Error() string {
	var msg string
	switch e.Kind {
	case MissingOperationID:
		msg = fmt.Sprintf("%s %s: missing operationId", e.Verb, e.Path)
	default:
		msg = fmt.Sprintf("%s %s: malformed operationId %q (expected prefix[Controller]_verbPhrase)", e.Verb, e.Path, e.OperationID)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; suggestion: %q", e.Suggestion)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *OperationIDError) Is(target error) bool {
	switch e.Kind {
	case MissingOperationID:
		return target == ErrMissingOperationID
	default:
		return target == ErrMalformedOperationID
	}
}

// AggregateError collects every failure found in a single pass so that one
// run reports all of them at once.
type AggregateError struct {
	// Summary describes what was being checked
	Summary string
	// Errors holds the individual failures in document order
	Errors []error
}

// Error returns the summary followed by one line per failure.
func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString(e.Summary)
	_, _ = fmt.Fprintf(&b, " (%d error(s))", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// SchemaError represents a request or response payload that cannot be turned
// into a type, or a component schema the resolver does not support.
type SchemaError struct {
	// Path is the path template or the component location
	Path string
	// Verb is the upper-case HTTP verb (empty for components)
	Verb string
	// Role is "request", "response", "component" or "property"
	Role string
	// TypeName is the type that was being built
	TypeName string
	// Message provides additional context
	Message string
	// Cause is one of the schema sentinels
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Verb != "" {
		msg += " at " + e.Verb + " " + e.Path
	} else if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Role != "" {
		msg += " (" + e.Role
		if e.TypeName != "" {
			msg += " " + e.TypeName
		}
		msg += ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// ReferenceError represents a $ref that cannot be used.
type ReferenceError struct {
	// Ref is the reference string or the bare type name
	Ref string
	// Module is the module that needed the reference (empty if unknown)
	Module string
	// IsDangling is true when the name exists nowhere in the document
	IsDangling bool
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "unsupported reference shape"
	if e.IsDangling {
		msg = "dangling reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Module != "" {
		msg += " (module " + e.Module + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	if e.IsDangling {
		return target == ErrDanglingReference
	}
	return target == ErrUnsupportedReferenceShape
}

// CollisionError reports two operations that resolve to one method name.
type CollisionError struct {
	Module     string
	MethodName string
	// First and Second are "VERB /path" strings for the two operations
	First  string
	Second string
}

// Error returns a human-readable error message.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("method name collision in module %s: %s resolves to %q, already used by %s",
		e.Module, e.Second, e.MethodName, e.First)
}

// Is reports whether target matches this error type.
func (e *CollisionError) Is(target error) bool {
	return target == ErrMethodNameCollision
}

// ParseError represents a failure to load or decode a source document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
