package report

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLPostsGotenbergForm(t *testing.T) {
	var fields map[string]string
	var html string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		fh := r.MultipartForm.File["files"][0]
		assert.Equal(t, "index.html", fh.Filename)
		f, err := fh.Open()
		require.NoError(t, err)
		raw, _ := io.ReadAll(f)
		html = string(raw)
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	pdf, err := NewClient(ClientConfig{BaseURL: srv.URL + "/"}).RenderHTML(context.Background(), "<html>ok</html>")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, ReadyExpression, fields["waitForExpression"])
	assert.Equal(t, "true", fields["landscape"])
	assert.Equal(t, "true", fields["printBackground"])
	assert.Equal(t, "8.27", fields["paperWidth"])
	assert.Equal(t, "11.7", fields["paperHeight"])
}

func TestRenderHTMLReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(ClientConfig{BaseURL: srv.URL}).RenderHTML(context.Background(), "<html></html>")
	require.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, err.Error(), "chromium crashed")
}

func TestPingChecksHealth(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL})
	require.NoError(t, c.Ping(context.Background()))
	status = http.StatusInternalServerError
	require.Error(t, c.Ping(context.Background()))
}

func TestNewChromiumValidatesPath(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	exe := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	for name, path := range map[string]string{
		"empty":     "",
		"missing":   filepath.Join(dir, "nope"),
		"directory": dir,
		"not exec":  plain,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewChromium(ChromiumConfig{Path: path})
			require.ErrorIs(t, err, ErrBrowserPath)
		})
	}

	c, err := NewChromium(ChromiumConfig{Path: exe})
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))

	require.NoError(t, os.Remove(exe))
	require.ErrorIs(t, c.Ping(context.Background()), ErrBrowserPath)
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandlerPing(t *testing.T) {
	var fail error
	r := chi.NewRouter()
	NewHandler("gotenberg", pingFunc(func(context.Context) error { return fail }), nil).MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend":"gotenberg"`)

	fail = errors.New("down")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
