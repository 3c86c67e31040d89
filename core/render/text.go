// Package render provides artifact renderers for audit outcomes.
// This file implements the plain-text renderer, the default export
// format: a source line, the report as indented JSON, and the advisory
// when one was produced.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// TextRenderer writes the classic downloadable report layout.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render produces the text artifact. A missing advisory never fails the
// render: the artifact carries the report alone, with a one-line note
// when enrichment was attempted and failed.
func (r *TextRenderer) Render(artifact core.Artifact) ([]byte, error) {
	data, err := json.MarshalIndent(artifact.Report, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n\n", artifact.Report.URL)
	fmt.Fprintf(&b, "Audit Report:\n%s\n", data)

	switch {
	case artifact.Advisory != "":
		fmt.Fprintf(&b, "\nEnhanced Analysis:\n%s\n", artifact.Advisory)
	case artifact.AdvisoryErr != "":
		fmt.Fprintf(&b, "\nEnhanced Analysis:\nunavailable: %s\n", artifact.AdvisoryErr)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
