// Package probe verifies link liveness with bounded concurrency.
// Every resolved anchor is classified against the base host and checked
// with a HEAD request, falling back to a single GET when HEAD is
// rejected. Probe failures land on the individual link, never anywhere
// else.
package probe

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/auditpipe/core"
	"github.com/gaurav-prasanna/auditpipe/core/resolve"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultWorkers   = 8
	defaultUserAgent = "AuditPipe/1.0 (+https://github.com/gaurav-prasanna/auditpipe)"
)

// Config tunes a Prober. Zero values take defaults.
type Config struct {
	Timeout   time.Duration // per-request budget
	Workers   int           // max in-flight probes per document
	RPS       float64       // probe rate across all documents, 0 = unlimited
	UserAgent string
	Client    *http.Client // injectable for tests; Timeout is ignored when set
}

// Prober classifies and probes resolved references. A single Prober is
// shared across documents and is safe for concurrent use.
type Prober struct {
	client    *http.Client
	workers   int
	userAgent string
	limiter   *rate.Limiter
	log       *slog.Logger
}

// New creates a Prober from cfg. logger may be nil.
func New(cfg Config, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	return &Prober{
		client:    client,
		workers:   workers,
		userAgent: userAgent,
		limiter:   limiter,
		log:       logger.With("component", "probe"),
	}
}

// ProbeAll classifies and probes every reference. The result slice is
// positionally aligned with refs; each worker writes only its own slot,
// so no coordination beyond the job channel is needed.
func (p *Prober) ProbeAll(ctx context.Context, refs []core.ResolvedRef, base *url.URL) []core.LinkRef {
	results := make([]core.LinkRef, len(refs))
	if len(refs) == 0 {
		return results
	}

	workers := p.workers
	if len(refs) < workers {
		workers = len(refs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.probe(ctx, refs[i], base)
			}
		}()
	}

	for i := range refs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// probe produces the verdict for a single reference.
func (p *Prober) probe(ctx context.Context, ref core.ResolvedRef, base *url.URL) core.LinkRef {
	link := core.LinkRef{URL: ref.URL, Type: classify(ref.URL, base)}

	if ref.Reason != "" {
		link.Err = ref.Reason
		return link
	}

	status, err := p.request(ctx, http.MethodHead, ref.URL)
	if err == nil && status >= 400 {
		// Some servers reject HEAD outright; give the link one GET
		// before trusting the failure.
		status, err = p.request(ctx, http.MethodGet, ref.URL)
	}
	if err != nil {
		p.log.Debug("probe failed", "url", ref.URL, "error", err)
		link.Err = err.Error()
		return link
	}

	link.Status = status
	return link
}

// request performs one probe request and returns the response status.
func (p *Prober) request(ctx context.Context, method, rawURL string) (int, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	return resp.StatusCode, nil
}

// classify is pure: internal iff the link host equals the base host,
// case-insensitive exact match. Without a base every link is external.
func classify(rawURL string, base *url.URL) core.LinkType {
	if base != nil && resolve.SameHost(rawURL, base.Host) {
		return core.LinkInternal
	}
	return core.LinkExternal
}
