package extractor

import (
	"strings"

	"github.com/erraggy/oasclientgen/oaserrors"
)

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// ResolveRef returns the bare type name of a reference of the form
// ".../<name>", such as "#/components/schemas/Pet". The check is purely
// syntactic: whether the name exists is decided during bundling.
func ResolveRef(ref string) (string, error) {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return "", &oaserrors.ReferenceError{Ref: ref, Message: "expected .../<name>"}
	}
	name := pointerUnescaper.Replace(ref[idx+1:])
	if strings.TrimSpace(name) == "" {
		return "", &oaserrors.ReferenceError{Ref: ref, Message: "reference has an empty final segment"}
	}
	return name, nil
}
