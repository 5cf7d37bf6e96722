package clientrt

import (
	"context"
	"net/http"
	"net/url"
)

// Empty is the payload of operations that declare no request body.
type Empty struct{}

// Call is one request as assembled by a generated method.
type Call struct {
	Method  string
	Path    string
	Payload any
	Header  http.Header
	Query   url.Values
}

// HasBody reports whether the call carries a payload to marshal.
func (c *Call) HasBody() bool {
	switch c.Payload.(type) {
	case nil, Empty, *Empty:
		return false
	default:
		return true
	}
}

// RequestOption shapes a single call.
type RequestOption func(*Call)

// WithHeader sets a request header, replacing any previous value.
func WithHeader(key, value string) RequestOption {
	return func(c *Call) {
		c.Header.Set(key, value)
	}
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(c *Call) {
		c.Query.Add(key, value)
	}
}

// WithBearerToken sets the Authorization header.
func WithBearerToken(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

// Executor runs a call and decodes the response into out.
type Executor interface {
	Execute(ctx context.Context, call *Call, out any) error
}

// NewCall builds a call and applies opts.
func NewCall(method, path string, payload any, opts ...RequestOption) *Call {
	call := &Call{
		Method:  method,
		Path:    path,
		Payload: payload,
		Header:  make(http.Header),
		Query:   make(url.Values),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(call)
		}
	}
	return call
}

// Do runs one operation and returns its decoded response.
func Do[T any](ctx context.Context, exec Executor, method, path string, payload any, opts ...RequestOption) (*T, error) {
	out := new(T)
	if err := exec.Execute(ctx, NewCall(method, path, payload, opts...), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Send marshals the call payload, executes it through t and unmarshals a
// non-empty response body into out. It is the body of a generated client's
// Execute method.
func Send(ctx context.Context, t Transport, m Marshaller, call *Call, out any) error {
	rb := t.NewRequest().Method(call.Method).Path(call.Path)
	for key, values := range call.Header {
		for _, v := range values {
			rb = rb.Header(key, v)
		}
	}
	for key, values := range call.Query {
		for _, v := range values {
			rb = rb.Query(key, v)
		}
	}
	rb = rb.Header("Accept", m.ContentType())

	if call.HasBody() {
		body, err := m.Marshal(call.Payload)
		if err != nil {
			return &MarshalError{Op: "marshal", Err: err}
		}
		rb = rb.Header("Content-Type", m.ContentType()).Body(body)
	}

	data, err := rb.Execute(ctx)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := m.Unmarshal(data, out); err != nil {
		return &MarshalError{Op: "unmarshal", Err: err}
	}
	return nil
}
