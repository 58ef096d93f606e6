package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTaskRoundTrip(t *testing.T) {
	task, opts, err := NewReportTask(ReportPayload{JobID: "job-1", Kind: "pdf", Data: json.RawMessage(`{"organization":"Fazenda"}`)})
	require.NoError(t, err)
	assert.Equal(t, TaskReportGenerate, task.Type())
	assert.Len(t, opts, 4)

	payload, err := DecodeReportPayload(task.Payload())
	require.NoError(t, err)
	assert.Equal(t, "job-1", payload.JobID)
	assert.Equal(t, "pdf", payload.Kind)
	assert.JSONEq(t, `{"organization":"Fazenda"}`, string(payload.Data))
}

func TestReportTaskRequiresJobID(t *testing.T) {
	_, _, err := NewReportTask(ReportPayload{Kind: "pdf"})
	require.ErrorIs(t, err, ErrMissingJobID)

	_, err = DecodeReportPayload([]byte(`{"kind":"pdf"}`))
	require.ErrorIs(t, err, ErrMissingJobID)

	_, err = DecodeReportPayload([]byte(`not json`))
	require.Error(t, err)
}

func TestHealthWithoutInspector(t *testing.T) {
	h := NewHandler(nil, nil)
	r := chi.NewRouter()
	h.MountRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0}`, rec.Body.String())

	_, err := h.JobState(t.Context(), "missing")
	require.ErrorIs(t, err, ErrJobNotFound)
}
