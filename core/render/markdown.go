// Package render — Markdown renderer.
// Lays the report out as a small Markdown document: a signal table,
// the heading distribution, and the advisory section.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// MarkdownRenderer writes the artifact as Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the Markdown artifact.
func (r *MarkdownRenderer) Render(artifact core.Artifact) ([]byte, error) {
	rep := artifact.Report

	var b strings.Builder
	fmt.Fprintf(&b, "# SEO Audit: %s\n\n", orMissing(rep.URL))

	fmt.Fprintf(&b, "| Signal | Value |\n| --- | --- |\n")
	fmt.Fprintf(&b, "| Title | %s |\n", orMissing(rep.MetaTitle))
	fmt.Fprintf(&b, "| Description | %s |\n", orMissing(rep.MetaDescription))
	fmt.Fprintf(&b, "| Images | %d |\n", rep.ImageCount)
	fmt.Fprintf(&b, "| Links | %d |\n", rep.LinkCount)
	fmt.Fprintf(&b, "| Internal links | %d |\n", rep.InternalLinkCount)
	fmt.Fprintf(&b, "| External links | %d |\n", rep.ExternalLinkCount)
	fmt.Fprintf(&b, "| Broken links | %d |\n", rep.BrokenLinkCount)
	fmt.Fprintf(&b, "| Errored links | %d |\n", rep.ErrorLinkCount)
	fmt.Fprintf(&b, "| Main text length | %d |\n", rep.MainTextLength)

	b.WriteString("\n## Headings\n\n| Level | Count |\n| --- | --- |\n")
	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		fmt.Fprintf(&b, "| %s | %d |\n", tag, rep.Headers[tag])
	}

	switch {
	case artifact.Advisory != "":
		fmt.Fprintf(&b, "\n## Enhanced Analysis\n\n%s\n", artifact.Advisory)
	case artifact.AdvisoryErr != "":
		fmt.Fprintf(&b, "\n## Enhanced Analysis\n\n_unavailable: %s_\n", artifact.AdvisoryErr)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// orMissing substitutes an explicit marker for empty values so the
// table stays readable.
func orMissing(s string) string {
	if s == "" {
		return "_missing_"
	}
	return s
}
