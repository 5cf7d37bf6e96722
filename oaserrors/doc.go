// Package oaserrors provides structured error types for oasclientgen.
//
// Import path: github.com/erraggy/oasclientgen/oaserrors
//
// Every failure kind the generation pipeline can raise has a sentinel error
// for [errors.Is] and, where extra context is useful, a struct type for
// [errors.As].
//
// # Error Types
//
//   - [OperationIDError]: a missing or malformed operationId on one operation
//   - [AggregateError]: all operationId failures found in one pass
//   - [SchemaError]: request, response or component schemas that cannot become a type
//   - [ReferenceError]: unsupported $ref shapes and dangling references
//   - [CollisionError]: two operations resolving to the same method name
//   - [ParseError]: source document loading and decoding failures
//   - [ConfigError]: invalid options
//
// # Usage
//
//	result, err := generator.GenerateWithOptions(generator.WithFilePath("api.yaml"))
//	if errors.Is(err, oaserrors.ErrMalformedOperationID) {
//	    var agg *oaserrors.AggregateError
//	    if errors.As(err, &agg) {
//	        for _, e := range agg.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
// [AggregateError] implements Unwrap() []error, so errors.Is matches any of
// the sentinels carried by its members.
package oaserrors
