// Package report converts report HTML into PDF through a headless browser,
// either a Gotenberg service or a local Chromium driven over CDP.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ReadyExpression is the page condition rasterizers wait for before printing.
const ReadyExpression = "window.__chartsReady === true"

// ErrRenderFailed reports a non-success answer from the browser backend.
var ErrRenderFailed = errors.New("report: render failed")

// Rasterizer turns a complete HTML document into PDF bytes.
type Rasterizer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Pinger reports whether a rasterizer backend is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientConfig configures the Gotenberg client.
type ClientConfig struct {
	BaseURL string
	// Timeout bounds a whole conversion request, including the wait for
	// ReadyExpression.
	Timeout time.Duration
}

// Client wraps interactions with the Gotenberg API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping checks if the remote Gotenberg service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderHTML converts raw HTML into a landscape A4 PDF using Gotenberg's
// Chromium route. Printing starts once ReadyExpression holds.
func (c *Client) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, strings.NewReader(html)); err != nil {
		return nil, err
	}
	for _, field := range formFields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/convert/html", c.baseURL), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("report: gotenberg: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: gotenberg status %d: %s", ErrRenderFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return io.ReadAll(resp.Body)
}

// formFields are Gotenberg form options. Paper sizes are in inches, portrait
// orientation; landscape rotates them.
var formFields = [][2]string{
	{"waitForExpression", ReadyExpression},
	{"waitDelay", "0s"},
	{"landscape", "true"},
	{"printBackground", "true"},
	{"preferCssPageSize", "true"},
	{"paperWidth", "8.27"},
	{"paperHeight", "11.7"},
	{"marginTop", "0"},
	{"marginBottom", "0"},
	{"marginLeft", "0"},
	{"marginRight", "0"},
	{"skipNetworkIdleEvent", "false"},
	{"failOnConsoleExceptions", "false"},
}
