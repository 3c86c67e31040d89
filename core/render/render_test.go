package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/auditpipe/core"
)

func sampleArtifact() core.Artifact {
	return core.Artifact{
		Report: &core.AuditReport{
			URL:               "https://site.example/",
			MetaTitle:         "Hi",
			MetaDescription:   "A sample page",
			Headers:           core.Headings{"h1": 1, "h2": 2, "h3": 0, "h4": 0, "h5": 0, "h6": 0},
			ImageCount:        1,
			LinkCount:         2,
			InternalLinkCount: 1,
			ExternalLinkCount: 1,
			BrokenLinkCount:   0,
			ErrorLinkCount:    0,
			MainTextLength:    6,
		},
	}
}

// reportFieldNames is the stable output contract for report JSON.
var reportFieldNames = []string{
	"url", "meta_title", "meta_description", "headers",
	"image_count", "link_count", "internal_link_count", "external_link_count",
	"broken_link_count", "error_link_count", "main_text_length",
}

func TestTextRendererLayout(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Advisory = "Add more internal links."

	data, err := NewTextRenderer().Render(artifact)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "URL: https://site.example/\n\nAudit Report:\n{"), "got: %q", out[:40])
	assert.Contains(t, out, "\"meta_title\": \"Hi\"")
	assert.Contains(t, out, "\nEnhanced Analysis:\nAdd more internal links.\n")
}

func TestTextRendererWithoutAdvisory(t *testing.T) {
	t.Parallel()

	data, err := NewTextRenderer().Render(sampleArtifact())
	require.NoError(t, err)

	assert.NotContains(t, string(data), "Enhanced Analysis")
}

func TestTextRendererAdvisoryFailure(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.AdvisoryErr = "inference API returned 503"

	data, err := NewTextRenderer().Render(artifact)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Audit Report:\n{", "report is exported even when enrichment failed")
	assert.Contains(t, out, "Enhanced Analysis:\nunavailable: inference API returned 503")
}

func TestJSONRendererStableFieldNames(t *testing.T) {
	t.Parallel()

	data, err := NewJSONRenderer().Render(sampleArtifact())
	require.NoError(t, err)

	var decoded struct {
		Report map[string]any `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, name := range reportFieldNames {
		assert.Contains(t, decoded.Report, name)
	}
	assert.Equal(t, "Hi", decoded.Report["meta_title"])
	assert.NotContains(t, string(data), "advisory", "empty advisory fields are omitted")
}

func TestJSONRendererWithAdvisory(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Advisory = "Tighten the title."

	data, err := NewJSONRenderer().Render(artifact)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Tighten the title.", decoded["advisory"])
}

func TestMarkdownRenderer(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Advisory = "Use one h1 per page."

	data, err := NewMarkdownRenderer().Render(artifact)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# SEO Audit: https://site.example/")
	assert.Contains(t, out, "| Internal links | 1 |")
	assert.Contains(t, out, "| h2 | 2 |")
	assert.Contains(t, out, "## Enhanced Analysis\n\nUse one h1 per page.")
}

func TestMarkdownRendererMissingValues(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Report.MetaDescription = ""

	data, err := NewMarkdownRenderer().Render(artifact)
	require.NoError(t, err)

	assert.Contains(t, string(data), "| Description | _missing_ |")
}

func TestPDFRenderer(t *testing.T) {
	t.Parallel()

	artifact := sampleArtifact()
	artifact.Advisory = "First paragraph.\n\nSecond paragraph."

	data, err := NewPDFRenderer().Render(artifact)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(data), 500)
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".txt", NewTextRenderer().Extension())
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}
