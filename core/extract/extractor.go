// Package extract pulls the audit snapshot out of raw HTML:
// title, meta description, heading counts, images, anchors, and the
// visible text. Parsing is lenient; malformed markup degrades to
// whatever the parser salvages instead of failing.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/auditpipe/core"
	"github.com/gaurav-prasanna/auditpipe/core/resolve"
)

// excerptWords caps the Markdown content excerpt carried on a snapshot.
const excerptWords = 300

// noiseSelectors are HTML elements removed before taking the content
// excerpt. They contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor builds audit snapshots from parsed documents.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Parse parses raw markup into a document. The parser recovers from
// malformed input, so errors are rare (reader failures, not bad HTML).
func Parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Snapshot extracts every audit signal from doc. Anchors are resolved
// against base (which may be nil); duplicates are kept so each discovered
// anchor reaches the report exactly once.
func (e *HTMLExtractor) Snapshot(doc *goquery.Document, base *url.URL) *core.Snapshot {
	snap := &core.Snapshot{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		Headings:    core.NewHeadings(),
	}

	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		snap.Headings[tag] = doc.Find(tag).Length()
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		snap.Images = append(snap.Images, core.ImageRef{
			Src: resolve.Join(base, s.AttrOr("src", "")),
			Alt: strings.TrimSpace(s.AttrOr("alt", "")),
		})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		snap.Anchors = append(snap.Anchors, resolve.Resolve(base, s.AttrOr("href", "")))
	})

	snap.MainText = mainText(doc)

	// contentExcerpt removes nodes from doc, so it must stay last.
	snap.Excerpt = contentExcerpt(doc)

	return snap
}

// mainText collects all visible text with script and style subtrees
// excluded, whitespace collapsed, and the result trimmed.
func mainText(doc *goquery.Document) string {
	var words []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	return strings.Join(words, " ")
}

// contentExcerpt isolates the main content container, converts it to
// Markdown, and caps it at excerptWords words. Empty when the page has
// no usable container or the conversion fails.
func contentExcerpt(doc *goquery.Document) string {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically correct container, then <article>,
	// then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return ""
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return ""
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return ""
	}

	return capWords(markdown, excerptWords)
}

// capWords truncates text to at most n whitespace-separated words.
func capWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
