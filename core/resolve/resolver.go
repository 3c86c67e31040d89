// Package resolve handles base-URL discovery and reference resolution.
// The base is derived once per document: an explicit <base href> wins,
// then the first anchor with an absolute URL stripped to its root,
// otherwise there is no base and relative references stay unresolved.
package resolve

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// nonFetchableSchemes are reference schemes that can never be probed.
var nonFetchableSchemes = map[string]bool{
	"javascript": true,
	"mailto":     true,
	"tel":        true,
	"data":       true,
}

// DiscoverBase derives the document's base URL string.
// Precedence: explicit <base href> (returned verbatim), then the first
// anchor whose href is absolute, stripped to scheme://host/, else "".
func DiscoverBase(doc *goquery.Document) string {
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			return trimmed
		}
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		parsed, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return true
		}
		root := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: "/"}
		found = root.String()
		return false
	})
	return found
}

// ParseBase parses a base URL string. Empty, unparseable, or host-less
// values collapse to nil, the "no base" sentinel: classification then
// treats every link as external and relative references stay unresolved.
func ParseBase(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil
	}
	return parsed
}

// Resolve joins ref against base and applies the fetchability policy.
// A non-empty Reason marks a reference that must be recorded but never
// probed. base may be nil.
func Resolve(base *url.URL, ref string) core.ResolvedRef {
	trimmed := strings.TrimSpace(ref)

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return core.ResolvedRef{URL: trimmed, Reason: "unparseable reference"}
	}
	if nonFetchableSchemes[parsed.Scheme] {
		return core.ResolvedRef{URL: trimmed, Reason: parsed.Scheme + " reference is not fetchable"}
	}
	if strings.HasPrefix(trimmed, "#") {
		return core.ResolvedRef{URL: trimmed, Reason: "fragment-only reference"}
	}

	if base == nil {
		if parsed.Scheme != "" && parsed.Host != "" {
			parsed.Fragment = ""
			return core.ResolvedRef{URL: parsed.String()}
		}
		return core.ResolvedRef{URL: trimmed, Reason: "no base URL to resolve relative reference"}
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return core.ResolvedRef{URL: resolved.String(), Reason: "scheme " + resolved.Scheme + " is not fetchable"}
	}
	resolved.Fragment = ""
	return core.ResolvedRef{URL: resolved.String()}
}

// Join best-effort resolves an image src to an absolute string.
// It never rejects: unparseable refs and refs without a base pass
// through raw.
func Join(base *url.URL, ref string) string {
	trimmed := strings.TrimSpace(ref)
	parsed, err := url.Parse(trimmed)
	if err != nil || base == nil {
		return trimmed
	}
	return base.ResolveReference(parsed).String()
}

// SameHost reports whether rawURL's host matches host, case-insensitively.
// Subdomains do not match; an empty host matches nothing.
func SameHost(rawURL string, host string) bool {
	if host == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}
