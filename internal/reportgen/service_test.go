package reportgen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

type stubHTML struct {
	calls     atomic.Int32
	cancelled atomic.Int32
	gate      chan struct{}
}

func (s *stubHTML) Build(ctx context.Context, data *reportdata.ReportData) (string, error) {
	s.calls.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			s.cancelled.Add(1)
			return "", ctx.Err()
		}
	}
	return "<html><body>" + data.OrganizationName + "</body></html>", nil
}

type stubRasterizer struct {
	html string
	err  error
}

func (s *stubRasterizer) RenderHTML(_ context.Context, html string) ([]byte, error) {
	s.html = html
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestServiceCachesReports(t *testing.T) {
	cache, _ := newCache(t)
	html := &stubHTML{}
	svc := NewService(ServiceConfig{Generator: newGenerator(t, ""), HTML: html, Cache: cache, Metrics: observability.NewMetrics(), Logger: quietLogger()})

	first, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 2, first.Pages)

	second, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Body, second.Body)
	assert.EqualValues(t, 1, html.calls.Load())

	require.NoError(t, svc.Invalidate(context.Background()))
	third, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.EqualValues(t, 2, html.calls.Load())
}

func TestServiceCanvasPDF(t *testing.T) {
	svc := NewService(ServiceConfig{Generator: newGenerator(t, ""), Logger: quietLogger()})
	res, err := svc.Generate(context.Background(), KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.True(t, strings.HasPrefix(string(res.Body), "%PDF-"))
}

func TestServiceHTMLPDFUsesRasterizer(t *testing.T) {
	raster := &stubRasterizer{}
	svc := NewService(ServiceConfig{HTML: &stubHTML{}, Rasterizer: raster, Logger: quietLogger()})
	res, err := svc.Generate(context.Background(), KindHTMLPDF, propertiesOnly())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stub", string(res.Body))
	assert.Contains(t, raster.html, "Fazendas Boa Vista")

	raster.err = errors.New("browser crashed")
	_, err = svc.Generate(context.Background(), KindHTMLPDF, reportdata.Sample(fixedNow))
	require.ErrorContains(t, err, "browser crashed")
}

func TestServiceWithoutRasterizer(t *testing.T) {
	svc := NewService(ServiceConfig{HTML: &stubHTML{}, Logger: quietLogger()})
	_, err := svc.Generate(context.Background(), KindHTMLPDF, propertiesOnly())
	require.ErrorIs(t, err, ErrRasterizerUnavailable)
}

func TestServiceRejectsBadInput(t *testing.T) {
	svc := NewService(ServiceConfig{Logger: quietLogger()})
	_, err := svc.Generate(context.Background(), Kind("docx"), propertiesOnly())
	require.ErrorIs(t, err, ErrUnknownKind)
	_, err = svc.Generate(context.Background(), KindPDF, &reportdata.ReportData{})
	require.ErrorIs(t, err, reportdata.ErrInvalid)
}

func TestServiceDeduplicatesConcurrentRequests(t *testing.T) {
	html := &stubHTML{gate: make(chan struct{})}
	svc := NewService(ServiceConfig{HTML: html, Logger: quietLogger()})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	require.Eventually(t, func() bool { return html.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(html.gate)
	wg.Wait()

	assert.EqualValues(t, 1, html.calls.Load())
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, results[0].Body, res.Body)
	}
}

func TestServiceCallerCancellation(t *testing.T) {
	html := &stubHTML{gate: make(chan struct{})}
	svc := NewService(ServiceConfig{HTML: html, Logger: quietLogger()})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Generate(ctx, KindHTML, propertiesOnly())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Eventually(t, func() bool { return html.cancelled.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(html.gate)
}

func (s *Service) waiting(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.flights[key]; ok {
		return f.waiters
	}
	return 0
}

func TestServiceFollowerSurvivesLeaderCancellation(t *testing.T) {
	html := &stubHTML{gate: make(chan struct{})}
	svc := NewService(ServiceConfig{HTML: html, Logger: quietLogger()})
	key, err := svc.cache.Key(context.Background(), KindHTML, svc.stamp(propertiesOnly()))
	require.NoError(t, err)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := svc.Generate(leaderCtx, KindHTML, propertiesOnly())
		leaderErr <- err
	}()
	require.Eventually(t, func() bool { return html.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type outcome struct {
		res *Result
		err error
	}
	follower := make(chan outcome, 1)
	go func() {
		res, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
		follower <- outcome{res, err}
	}()
	require.Eventually(t, func() bool { return svc.waiting(key) == 2 }, time.Second, 5*time.Millisecond)

	cancelLeader()
	require.ErrorIs(t, <-leaderErr, context.Canceled)
	close(html.gate)

	got := <-follower
	require.NoError(t, got.err)
	assert.Contains(t, string(got.res.Body), "Fazendas Boa Vista")
	assert.EqualValues(t, 1, html.calls.Load())
	assert.Zero(t, html.cancelled.Load())
	assert.Zero(t, svc.waiting(key))
}

func TestServiceRecordsPagesForCanvasOnly(t *testing.T) {
	metrics := observability.NewMetrics()
	svc := NewService(ServiceConfig{Generator: newGenerator(t, ""), HTML: &stubHTML{}, Metrics: metrics, Logger: quietLogger()})

	_, err := svc.Generate(context.Background(), KindHTML, propertiesOnly())
	require.NoError(t, err)
	assert.Zero(t, pageObservations(t, metrics))

	_, err = svc.Generate(context.Background(), KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.EqualValues(t, 1, pageObservations(t, metrics))
}

func pageObservations(t *testing.T, m *observability.Metrics) uint64 {
	t.Helper()
	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "farmreport_report_pages" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestFingerprintDependsOnKindAndData(t *testing.T) {
	a, err := Fingerprint(KindPDF, propertiesOnly())
	require.NoError(t, err)
	b, err := Fingerprint(KindPDF, propertiesOnly())
	require.NoError(t, err)
	c, err := Fingerprint(KindHTML, propertiesOnly())
	require.NoError(t, err)
	other := propertiesOnly()
	other.OrganizationName = "Outra"
	d, err := Fingerprint(KindPDF, other)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestCacheVersioning(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	ver, err := cache.Version(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, ver)

	key, err := cache.Key(ctx, KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "farmreport:report:pdf:"))
	assert.True(t, strings.HasSuffix(key, ":v1"))

	require.NoError(t, cache.Set(ctx, key, []byte("body")))
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.Equal(t, time.Minute, ttl)

	require.NoError(t, cache.Bump(ctx))
	next, err := cache.Key(ctx, KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(next, ":v2"))
	_, hit, err := cache.Get(ctx, next)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()
	_, hit, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	require.NoError(t, cache.Bump(ctx))
}

func TestServiceCacheKeyFollowsStampedDate(t *testing.T) {
	cache, _ := newCache(t)
	clock := fixedNow
	g := newGenerator(t, "")
	g.WithNow(func() time.Time { return clock })
	svc := NewService(ServiceConfig{Generator: g, Cache: cache, Logger: quietLogger()})

	first, err := svc.Generate(context.Background(), KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.False(t, first.Cached)

	clock = fixedNow.Add(3 * time.Hour)
	sameDay, err := svc.Generate(context.Background(), KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.True(t, sameDay.Cached)

	clock = fixedNow.Add(24 * time.Hour)
	nextDay, err := svc.Generate(context.Background(), KindPDF, propertiesOnly())
	require.NoError(t, err)
	assert.False(t, nextDay.Cached)
}
