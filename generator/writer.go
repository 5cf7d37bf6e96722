package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasclientgen/internal/fileutil"
)

// WriteFiles writes all generated files below outputDir, creating module
// subdirectories as needed. Every file name must stay inside outputDir:
// absolute names and names containing ".." that escape it are rejected
// before anything is written.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	targets := make([]string, len(r.Files))
	for i, file := range r.Files {
		target, err := fileutil.SafeJoin(outputDir, file.Name)
		if err != nil {
			return err
		}
		targets[i] = target
	}

	for i := range r.Files {
		if err := r.Files[i].WriteFile(targets[i]); err != nil {
			return fmt.Errorf("failed to write file %s: %w", r.Files[i].Name, err)
		}
	}
	return nil
}

// WriteFile writes a single generated file to the specified path.
func (f *GeneratedFile) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
