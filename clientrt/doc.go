// Package clientrt is the runtime that generated clients call into.
//
// Generated code depends on three small contracts:
//
//   - [Transport] creates a [RequestBuilder], configured builder-style with a
//     path, a method, headers and a body, and executed to return the response
//     body.
//   - [Marshaller] converts payloads to and from transport bytes.
//   - [Executor] runs one [Call]. Each generated module client holds one and
//     every generated method ends in [Do].
//
// [HTTPTransport] is the default Transport. It retries connection errors and
// 5xx responses through hashicorp/go-retryablehttp on top of a pooled
// go-cleanhttp transport. Responses with a status of 400 or above become a
// [*StatusError].
//
// [Validate] enforces the validate struct tags emitted on generated types
// (required, bounds, formats, enums and patterns) before a payload is sent.
//
// Everything in this package is safe for concurrent use.
package clientrt
