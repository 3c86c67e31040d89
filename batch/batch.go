// Package batch runs multi-document audits. Documents are audited
// concurrently under an outer bound that is independent of the per-link
// bound inside each document. A document failure becomes a failure
// record in its slot and never stops its siblings.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/auditpipe/core"
	"github.com/gaurav-prasanna/auditpipe/core/extract"
	"github.com/gaurav-prasanna/auditpipe/core/probe"
	"github.com/gaurav-prasanna/auditpipe/core/report"
	"github.com/gaurav-prasanna/auditpipe/core/resolve"
)

const defaultDocWorkers = 4

// Config tunes a batch run. Zero values take defaults.
type Config struct {
	RequestTimeout time.Duration // per-probe budget
	LinkWorkers    int           // max in-flight probes per document
	DocWorkers     int           // max documents audited at once
	ProbeRPS       float64       // probe rate across the whole run, 0 = unlimited
	UserAgent      string
	Client         *http.Client // injectable for tests
}

// Outcome is the result for one input document: exactly one of Report
// and Failure is set. Excerpt carries the page-content Markdown for
// advisory prompts when the audit succeeded.
type Outcome struct {
	Report  *core.AuditReport
	Failure *core.FailureRecord
	Excerpt string
}

// Runner audits batches of documents.
type Runner struct {
	docWorkers int
	prober     core.Prober
	extractor  *extract.HTMLExtractor
	log        *slog.Logger
}

// New creates a Runner. logger may be nil.
func New(cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	docWorkers := cfg.DocWorkers
	if docWorkers <= 0 {
		docWorkers = defaultDocWorkers
	}

	return &Runner{
		docWorkers: docWorkers,
		prober: probe.New(probe.Config{
			Timeout:   cfg.RequestTimeout,
			Workers:   cfg.LinkWorkers,
			RPS:       cfg.ProbeRPS,
			UserAgent: cfg.UserAgent,
			Client:    cfg.Client,
		}, logger),
		extractor: extract.New(),
		log:       logger.With("component", "batch"),
	}
}

// Run audits every document and returns one Outcome per input, in input
// order. Documents without markup become failure records up front. Run
// returns an error only when nothing in the batch is auditable.
func (r *Runner) Run(ctx context.Context, docs []core.Document) ([]Outcome, error) {
	outcomes := make([]Outcome, len(docs))

	valid := 0
	for i, doc := range docs {
		if doc.Markup == "" {
			outcomes[i] = Outcome{Failure: &core.FailureRecord{Index: i, Reason: "missing page_html"}}
			continue
		}
		valid++
	}
	if valid == 0 {
		return nil, fmt.Errorf("no documents with page_html to audit")
	}

	r.log.Info("starting batch", "documents", len(docs), "auditable", valid, "doc_workers", r.docWorkers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.docWorkers)

	for i, doc := range docs {
		if outcomes[i].Failure != nil {
			continue
		}
		g.Go(func() error {
			outcomes[i] = r.audit(ctx, i, doc)
			return nil
		})
	}

	// Workers record failures per document instead of returning errors,
	// so Wait cannot fail here.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// audit runs the single-document pipeline: parse, derive the base,
// snapshot, probe, aggregate.
func (r *Runner) audit(ctx context.Context, index int, doc core.Document) Outcome {
	parsed, err := extract.Parse(doc.Markup)
	if err != nil {
		r.log.Warn("unparseable document", "index", index, "error", err)
		return Outcome{Failure: &core.FailureRecord{Index: index, Reason: fmt.Sprintf("parsing markup: %v", err)}}
	}

	baseRaw := doc.BaseURL
	if baseRaw == "" {
		baseRaw = resolve.DiscoverBase(parsed)
	}
	base := resolve.ParseBase(baseRaw)
	if base == nil && baseRaw != "" {
		r.log.Warn("unusable base URL, treating all links as external", "index", index, "base", baseRaw)
	}

	snap := r.extractor.Snapshot(parsed, base)
	links := r.prober.ProbeAll(ctx, snap.Anchors, base)
	rep := report.Aggregate(source(doc, base), snap, links)

	r.log.Info("document audited",
		"index", index,
		"links", rep.LinkCount,
		"broken", rep.BrokenLinkCount,
		"errored", rep.ErrorLinkCount,
	)

	return Outcome{Report: rep, Excerpt: snap.Excerpt}
}

// source picks the report's identifier: the usable base URL, else the
// document label, else empty.
func source(doc core.Document, base *url.URL) string {
	if base != nil {
		return base.String()
	}
	return doc.Label
}
