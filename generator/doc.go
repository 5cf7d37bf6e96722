// Package generator turns an OpenAPI document into a typed Go client.
//
// Generation runs the document through the extractor, which describes every
// operation and the schemas it uses, and the bundler, which groups operations
// into modules by tag and gives each module a self-contained set of types.
// The generator then renders one Go package per module plus a shared client
// package.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithPackageName("petstore"),
//		generator.WithPolicy("lenient"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// Or configure a reusable Generator:
//
//	g := generator.New()
//	g.PackageName = "petstore"
//	result, err := g.Generate("openapi.yaml")
//
// # Output Layout
//
// The root file, client.go, declares the Client that carries the base URL,
// transport and default headers. Each module lives in <module>/<module>.go
// and exposes New(exec), where exec is anything implementing
// clientrt.Executor, usually the root Client:
//
//	c := petstore.NewClient(petstore.DefaultBaseURL)
//	pets := pet.New(c)
//	got, err := pets.GetPetByID(ctx, 42)
//
// # Type Mapping
//
//   - string → string (date-time → time.Time, byte and binary → []byte)
//   - integer → int64 (int32 for format int32)
//   - number → float64 (float32 for format float)
//   - boolean → bool
//   - free-form object → map[string]any
//   - array → []T
//   - reference → *T
//
// Optional and nullable scalars are pointers. Schema constraints become
// validate tags understood by github.com/go-playground/validator/v10, which
// the client checks before sending when validation is enabled.
//
// # Policies
//
// The strict policy fails generation on the first schema that cannot be
// resolved. The lenient policy emits such schemas as map[string]any with a
// Diagnostic comment and reports them as issues in the result.
package generator
