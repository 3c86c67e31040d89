// Package core defines the shared data model and stage interfaces for AuditPipe.
// Each stage of the audit pipeline is a clean, testable interface.
package core

import (
	"context"
	"net/url"
)

// Document is one unit of audit input: raw markup plus optional hints.
type Document struct {
	Markup  string `json:"page_html"`
	BaseURL string `json:"base_url,omitempty"`
	Label   string `json:"label,omitempty"`
}

// ResolvedRef is an anchor reference after resolution against the base URL.
// A non-empty Reason means the reference can never be probed (non-fetchable
// scheme, fragment-only, or a relative reference with no base to join).
type ResolvedRef struct {
	URL    string
	Reason string
}

// ImageRef is an image found in the document. Alt is empty both when the
// attribute is absent and when it is present but blank.
type ImageRef struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Headings maps heading level ("h1" through "h6") to its count.
// All six keys are always present.
type Headings map[string]int

// NewHeadings returns a Headings map with every level zeroed.
func NewHeadings() Headings {
	return Headings{"h1": 0, "h2": 0, "h3": 0, "h4": 0, "h5": 0, "h6": 0}
}

// Snapshot holds everything the extractor pulls from one document.
type Snapshot struct {
	Title       string
	Description string
	Headings    Headings
	Images      []ImageRef
	Anchors     []ResolvedRef
	MainText    string
	Excerpt     string // Markdown rendition of the main content, for advisory prompts
}

// LinkType classifies a link relative to the document's base host.
type LinkType string

const (
	LinkInternal LinkType = "internal"
	LinkExternal LinkType = "external"
)

// LinkRef is the verdict for a single anchor after classification and
// probing. Status is the final HTTP status (0 when the probe never got
// one); Err is set when the link could not be verified at all.
type LinkRef struct {
	URL    string   `json:"url"`
	Type   LinkType `json:"type"`
	Status int      `json:"status"`
	Err    string   `json:"error,omitempty"`
}

// Errored reports whether the probe failed without producing a status.
func (l LinkRef) Errored() bool {
	return l.Err != ""
}

// Broken reports whether the probe completed with a failing status.
// Broken and Errored are disjoint.
func (l LinkRef) Broken() bool {
	return l.Err == "" && l.Status >= 400
}

// AuditReport is the audit summary for one document. It is immutable once
// built, and the JSON field names are part of the output contract.
type AuditReport struct {
	URL               string   `json:"url"`
	MetaTitle         string   `json:"meta_title"`
	MetaDescription   string   `json:"meta_description"`
	Headers           Headings `json:"headers"`
	ImageCount        int      `json:"image_count"`
	LinkCount         int      `json:"link_count"`
	InternalLinkCount int      `json:"internal_link_count"`
	ExternalLinkCount int      `json:"external_link_count"`
	BrokenLinkCount   int      `json:"broken_link_count"`
	ErrorLinkCount    int      `json:"error_link_count"`
	MainTextLength    int      `json:"main_text_length"`
}

// FailureRecord marks a document that could not be audited. Index is the
// document's position in the batch input.
type FailureRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Artifact is the export unit for one audited document. Advisory holds
// enrichment output when available; AdvisoryErr records why it is missing.
type Artifact struct {
	Report      *AuditReport `json:"report"`
	Advisory    string       `json:"advisory,omitempty"`
	AdvisoryErr string       `json:"advisory_error,omitempty"`
}

// Prober verifies a document's resolved anchors against the network.
type Prober interface {
	ProbeAll(ctx context.Context, refs []ResolvedRef, base *url.URL) []LinkRef
}

// Enricher turns a finished audit report into advisory text. excerpt may
// be empty; when present it gives the model the page content to ground
// its recommendations.
type Enricher interface {
	Enrich(ctx context.Context, report *AuditReport, excerpt string) (string, error)
}

// Renderer converts an Artifact into a final output format.
type Renderer interface {
	Render(artifact Artifact) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt", ".pdf").
	Extension() string
}
