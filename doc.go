// Package oasclientgen generates strongly-typed Go client libraries from
// OpenAPI 3.x documents.
//
// # Overview
//
// Generation runs in four phases:
//
//   - extractor: validate operation identifiers, infer the module of every
//     operation, and synthesize request and response types
//   - internal/naming: derive deterministic method names from verb and path
//   - bundler: group operations into modules and close each module over the
//     types it references
//   - generator: emit one shared client file plus one Go package per module
//
// The generated code depends only on the small runtime in package clientrt.
//
// # Installation
//
//	go install github.com/erraggy/oasclientgen/cmd/oasclientgen@latest
//
// # Quick Start
//
//	import "github.com/erraggy/oasclientgen/generator"
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithPackageName("api"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./client"); err != nil {
//		log.Fatal(err)
//	}
//
// From the command line:
//
//	oasclientgen generate -o ./client -p api openapi.yaml
//	oasclientgen inspect --format json openapi.yaml
//
// Settings are read from .oasclientgen.yaml, then OASCLIENTGEN_* environment
// variables, then flags.
//
// # Operation identifiers
//
// Every operation must carry an operationId of the form
// prefix[Controller]_verbPhrase, for example userController_getUsers. The
// prefix names the module. Operations that violate the convention stop the
// run and are reported together, each with a suggested replacement.
//
// # Policies
//
// Underspecified payload schemas (missing, empty or unsupported) are handled
// by a TypeResolutionPolicy. The strict policy fails the run. The lenient
// policy emits a placeholder type annotated with a diagnostic and records a
// warning.
package oasclientgen
