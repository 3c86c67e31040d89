// Package render — PDF renderer.
// Lays the report out as a styled PDF using gofpdf: a title block, the
// audit signals as label/value rows, the heading distribution, and the
// advisory paragraphs.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// PDFRenderer renders the artifact as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the artifact into PDF bytes.
func (r *PDFRenderer) Render(artifact core.Artifact) ([]byte, error) {
	rep := artifact.Report

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title block.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "SEO Audit Report", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, "Source: "+rep.URL, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	writeRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, value, "", "L", false)
	}

	writeRow("Title", rep.MetaTitle)
	writeRow("Description", rep.MetaDescription)
	writeRow("Images", strconv.Itoa(rep.ImageCount))
	writeRow("Links", strconv.Itoa(rep.LinkCount))
	writeRow("Internal links", strconv.Itoa(rep.InternalLinkCount))
	writeRow("External links", strconv.Itoa(rep.ExternalLinkCount))
	writeRow("Broken links", strconv.Itoa(rep.BrokenLinkCount))
	writeRow("Errored links", strconv.Itoa(rep.ErrorLinkCount))
	writeRow("Main text length", strconv.Itoa(rep.MainTextLength))

	var counts []string
	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		counts = append(counts, fmt.Sprintf("%s: %d", tag, rep.Headers[tag]))
	}
	writeRow("Headings", strings.Join(counts, "   "))

	switch {
	case artifact.Advisory != "":
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, "Enhanced Analysis", "", "L", false)
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		for _, para := range strings.Split(artifact.Advisory, "\n") {
			if strings.TrimSpace(para) == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, 5, para, "", "L", false)
		}
	case artifact.AdvisoryErr != "":
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Enhanced analysis unavailable: "+artifact.AdvisoryErr, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
