package reportgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

// Kind selects the output pipeline.
type Kind string

const (
	// KindPDF is the canvas PDF.
	KindPDF Kind = "pdf"
	// KindHTML is the standalone HTML document.
	KindHTML Kind = "html"
	// KindHTMLPDF is the HTML document rasterized by a headless browser.
	KindHTMLPDF Kind = "html.pdf"
)

// ErrUnknownKind is returned for an unsupported output kind.
var ErrUnknownKind = errors.New("reportgen: unknown report kind")

// ErrRasterizerUnavailable is returned when html.pdf is requested without a
// configured rasterizer.
var ErrRasterizerUnavailable = errors.New("reportgen: html rasterizer not configured")

// ParseKind validates a kind name.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindPDF, KindHTML, KindHTMLPDF:
		return Kind(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// ContentType returns the MIME type of the kind's output.
func (k Kind) ContentType() string {
	if k == KindHTML {
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

// Extension returns the file extension of the kind's output.
func (k Kind) Extension() string {
	if k == KindHTML {
		return ".html"
	}
	return ".pdf"
}

// HTMLBuilder produces the HTML rendition of a report.
type HTMLBuilder interface {
	Build(ctx context.Context, data *reportdata.ReportData) (string, error)
}

// Rasterizer converts HTML into PDF bytes.
type Rasterizer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Result is one generated report.
type Result struct {
	Body        []byte
	ContentType string
	// Pages is the physical page count for canvas PDFs. HTML kinds count the
	// cover plus one per section and are not recorded in page metrics.
	Pages  int
	Cached bool
}

// ServiceConfig wires the report service.
type ServiceConfig struct {
	Generator  *Generator
	HTML       HTMLBuilder
	Rasterizer Rasterizer
	Cache      *Cache
	Metrics    *observability.Metrics
	Logger     *slog.Logger
	// BuildTimeout bounds a shared generation. Defaults to DefaultBuildTimeout.
	BuildTimeout time.Duration
}

// DefaultBuildTimeout bounds one report generation.
const DefaultBuildTimeout = 2 * time.Minute

// Service generates reports of every kind, deduplicating identical
// concurrent requests and caching finished bodies.
type Service struct {
	generator  *Generator
	html       HTMLBuilder
	rasterizer Rasterizer
	cache      *Cache
	metrics    *observability.Metrics
	logger     *slog.Logger
	timeout    time.Duration
	group      singleflight.Group

	mu      sync.Mutex
	seq     uint64
	flights map[string]*flight
}

// flight is one shared generation, cancelled when its last waiter leaves.
type flight struct {
	id      uint64
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	generator := cfg.Generator
	if generator == nil {
		generator = NewGenerator(GeneratorConfig{Logger: logger})
	}
	timeout := cfg.BuildTimeout
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}
	return &Service{
		timeout:    timeout,
		flights:    make(map[string]*flight),
		generator:  generator,
		html:       cfg.HTML,
		rasterizer: cfg.Rasterizer,
		cache:      cfg.Cache,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

// Generate produces the report of the given kind.
func (s *Service) Generate(ctx context.Context, kind Kind, data *reportdata.ReportData) (*Result, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if err := reportdata.Validate(data); err != nil {
		return nil, err
	}
	data = s.stamp(data)
	key, err := s.cache.Key(ctx, kind, data)
	if err != nil {
		s.metrics.CacheResult("error")
		s.logger.Warn("report cache key", slog.Any("error", err))
		digest, ferr := Fingerprint(kind, data)
		if ferr != nil {
			return nil, ferr
		}
		key = string(kind) + ":" + digest
	} else if s.cache.enabled() {
		body, hit, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.metrics.CacheResult("error")
			s.logger.Warn("report cache read", slog.Any("error", err))
		case hit:
			s.metrics.CacheResult("hit")
			return &Result{Body: body, ContentType: kind.ContentType(), Cached: true}, nil
		default:
			s.metrics.CacheResult("miss")
		}
	}

	val, err, _ := s.singleflight(ctx, key, func(ctx context.Context) (any, error) {
		return s.build(ctx, kind, data)
	})
	if err != nil {
		return nil, err
	}
	res, ok := val.(*Result)
	if !ok {
		return nil, fmt.Errorf("reportgen: unexpected result %T", val)
	}
	if err := s.cache.Set(ctx, key, res.Body); err != nil {
		s.metrics.CacheResult("error")
		s.logger.Warn("report cache write", slog.Any("error", err))
	}
	return res, nil
}

// stamp fills a missing generation date with today's date, so the cache key
// covers the date printed on the report.
func (s *Service) stamp(data *reportdata.ReportData) *reportdata.ReportData {
	if !data.GeneratedAt.IsZero() {
		return data
	}
	now := s.generator.now()
	stamped := *data
	stamped.GeneratedAt = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &stamped
}

// Invalidate drops every cached report.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) singleflight(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	f := s.join(ctx, key)
	defer s.leave(key, f)
	resultChan := s.group.DoChan(key+"#"+strconv.FormatUint(f.id, 10), func() (any, error) {
		return fn(f.ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}

// join attaches the caller to the running flight for key, starting one
// detached from ctx cancellation when none exists.
func (s *Service) join(ctx context.Context, key string) *flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[key]
	if !ok {
		s.seq++
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		f = &flight{id: s.seq, ctx: fctx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++
	return f
}

func (s *Service) leave(key string, f *flight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if s.flights[key] == f {
		delete(s.flights, key)
	}
}

func (s *Service) build(ctx context.Context, kind Kind, data *reportdata.ReportData) (*Result, error) {
	start := time.Now()
	var (
		res *Result
		err error
	)
	switch kind {
	case KindPDF:
		res, err = s.canvas(ctx, data)
	case KindHTML:
		res, err = s.htmlDocument(ctx, data)
	case KindHTMLPDF:
		res, err = s.htmlPDF(ctx, data)
	}
	if err != nil {
		s.logger.Error("report generation failed", slog.String("kind", string(kind)), slog.Any("error", err))
		return nil, err
	}
	elapsed := time.Since(start)
	pages := 0
	if kind == KindPDF {
		pages = res.Pages
	}
	s.metrics.ObserveReport(string(kind), elapsed, pages)
	s.logger.Info("report generated",
		slog.String("kind", string(kind)),
		slog.Int("sections", len(data.PresentSections())),
		slog.Int("pages", res.Pages),
		slog.Int("bytes", len(res.Body)),
		slog.Duration("duration", elapsed),
	)
	return res, nil
}

func (s *Service) canvas(ctx context.Context, data *reportdata.ReportData) (*Result, error) {
	doc, err := s.generator.Layout(ctx, data)
	if err != nil {
		return nil, err
	}
	body, err := s.generator.Render(doc)
	if err != nil {
		return nil, err
	}
	return &Result{Body: body, ContentType: KindPDF.ContentType(), Pages: doc.PageCount()}, nil
}

func (s *Service) htmlDocument(ctx context.Context, data *reportdata.ReportData) (*Result, error) {
	if s.html == nil {
		return nil, errors.New("reportgen: html builder not configured")
	}
	html, err := s.html.Build(ctx, data)
	if err != nil {
		return nil, err
	}
	return &Result{Body: []byte(html), ContentType: KindHTML.ContentType(), Pages: len(data.PresentSections()) + 1}, nil
}

func (s *Service) htmlPDF(ctx context.Context, data *reportdata.ReportData) (*Result, error) {
	if s.rasterizer == nil {
		return nil, ErrRasterizerUnavailable
	}
	doc, err := s.htmlDocument(ctx, data)
	if err != nil {
		return nil, err
	}
	body, err := s.rasterizer.RenderHTML(ctx, string(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("reportgen: rasterize: %w", err)
	}
	return &Result{Body: body, ContentType: KindHTMLPDF.ContentType(), Pages: doc.Pages}, nil
}
