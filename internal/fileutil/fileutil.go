// Package fileutil holds file modes and path helpers for writing generated output.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for files that may hold
// credentials, such as a project config with a custom user agent or header.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the mode for directories created for generated packages.
const DirReadableByAll os.FileMode = 0o755

// SafeJoin joins a slash-separated relative name onto root. Absolute names,
// empty names and names that escape root through ".." are rejected.
func SafeJoin(root, name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("invalid file name %q: must be a relative path inside the output directory", name)
	}
	return filepath.Join(root, local), nil
}
