package jobmetrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	require.NoError(t, m.Track("report").End(nil))
	require.Error(t, m.Track("report").End(errors.New("boom")))
	require.ErrorIs(t, m.Track("report").End(fmt.Errorf("bad payload: %w", asynq.SkipRetry)), asynq.SkipRetry)
	m.AddOutput("report", 2048)

	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("report", "success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("report", "failure")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("report", "skipped")))
	require.Equal(t, 2048.0, testutil.ToFloat64(m.output.WithLabelValues("report")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	require.NoError(t, m.Track("report").End(nil))
	m.AddOutput("report", 10)
}
