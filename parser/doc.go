// Package parser loads OpenAPI 3.x documents for client generation.
//
// The parser reads YAML or JSON from a file path, URL, io.Reader or byte slice
// and returns a [Document] whose maps (paths, operations, properties,
// responses, content, components) keep their source order. Generation output
// follows document order, so the loader never goes through Go maps.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for path, item := range result.Document.Paths.All() {
//		for verb, op := range item.Operations.All() {
//			fmt.Println(verb, path, op.OperationID)
//		}
//	}
//
// Only the keywords the generator consumes are decoded; everything else in
// the document is ignored. OpenAPI 2.0 documents are rejected.
//
// Failures are reported as *oaserrors.ParseError carrying the source and,
// where known, the line.
package parser
