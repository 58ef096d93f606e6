package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var (
	// ErrBrowserPath reports a missing or unusable browser executable.
	ErrBrowserPath = errors.New("report: invalid browser path")
	// ErrChartsNotReady reports that the page never signalled readiness.
	ErrChartsNotReady = errors.New("report: charts not ready")
)

// ChromiumConfig configures the local browser rasterizer.
type ChromiumConfig struct {
	// Path is the browser executable. There is no search path fallback.
	Path string
	// ReadyTimeout bounds the wait for ReadyExpression.
	ReadyTimeout time.Duration
	Logger       *slog.Logger
}

// Chromium prints HTML through a headless browser started per document.
type Chromium struct {
	path         string
	readyTimeout time.Duration
	logger       *slog.Logger
}

// NewChromium validates the executable and returns the rasterizer.
func NewChromium(cfg ChromiumConfig) (*Chromium, error) {
	path := strings.TrimSpace(cfg.Path)
	if err := checkExecutable(path); err != nil {
		return nil, err
	}
	timeout := cfg.ReadyTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Chromium{path: path, readyTimeout: timeout, logger: logger}, nil
}

func checkExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty", ErrBrowserPath)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserPath, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrBrowserPath, path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrBrowserPath, path)
	}
	return nil
}

// Ping re-checks the executable.
func (c *Chromium) Ping(context.Context) error {
	return checkExecutable(c.path)
}

// RenderHTML loads html into a fresh browser, waits for ReadyExpression and
// prints a landscape A4 PDF. The browser process ends with the call.
func (c *Chromium) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(c.path),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	start := time.Now()
	var (
		ready bool
		pdf   []byte
	)
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Poll(ReadyExpression, &ready, chromedp.WithPollingTimeout(c.readyTimeout)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(11.69).
				WithPaperHeight(8.27).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			pdf = buf
			return err
		}),
	)
	if err != nil {
		if errors.Is(err, chromedp.ErrPollingTimeout) {
			return nil, fmt.Errorf("%w after %s", ErrChartsNotReady, c.readyTimeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("report: chromium: %w", err)
	}
	c.logger.Debug("chromium rendered html",
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}
