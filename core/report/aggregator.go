// Package report folds a snapshot and its probed links into the final
// audit summary.
package report

import (
	"unicode/utf8"

	"github.com/gaurav-prasanna/auditpipe/core"
)

// Aggregate builds the AuditReport for one document. It is a pure fold
// over the inputs: every LinkRef lands in exactly one liveness bucket,
// internal and external always sum to the link total, and broken plus
// errored never exceed it.
func Aggregate(source string, snap *core.Snapshot, links []core.LinkRef) *core.AuditReport {
	headers := snap.Headings
	if headers == nil {
		headers = core.NewHeadings()
	}

	rep := &core.AuditReport{
		URL:             source,
		MetaTitle:       snap.Title,
		MetaDescription: snap.Description,
		Headers:         headers,
		ImageCount:      len(snap.Images),
		LinkCount:       len(links),
		MainTextLength:  utf8.RuneCountInString(snap.MainText),
	}

	for _, link := range links {
		if link.Type == core.LinkInternal {
			rep.InternalLinkCount++
		} else {
			rep.ExternalLinkCount++
		}

		switch {
		case link.Errored():
			rep.ErrorLinkCount++
		case link.Broken():
			rep.BrokenLinkCount++
		}
	}

	return rep
}
