package clientrt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxErrorBody bounds how much of a response body StatusError.Error prints.
const maxErrorBody = 200

// StatusError is returned for responses with a status code of 400 or above.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	// Body is the full response body
	Body []byte
}

// Error returns a human-readable error message.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("clientrt: %s %s: HTTP %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// MarshalError wraps a Marshaller failure.
type MarshalError struct {
	// Op is "marshal" or "unmarshal"
	Op  string
	Err error
}

// Error returns a human-readable error message.
func (e *MarshalError) Error() string {
	return "clientrt: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause for error chaining.
func (e *MarshalError) Unwrap() error {
	return e.Err
}

// ValidationError reports a payload that violates its validate tags.
type ValidationError struct {
	Errs validator.ValidationErrors
}

// Error lists every failed field.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), rule))
	}
	return "clientrt: invalid payload: " + strings.Join(parts, "; ")
}

// Unwrap returns the underlying validator errors.
func (e *ValidationError) Unwrap() error {
	return e.Errs
}
