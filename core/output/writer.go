// Package output handles file naming and writing for audit artifacts.
// Artifacts are numbered by their position in the batch input, so a
// re-run over the same input produces the same file names.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rendered artifacts to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores one rendered artifact. n is the document's 1-based
// position in the batch input. Filename: audit_report_<n><ext>.
func (w *Writer) Write(n int, data []byte, ext string) (string, error) {
	name := fmt.Sprintf("audit_report_%d%s", n, ext)
	path := filepath.Join(w.OutputDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
