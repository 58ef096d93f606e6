package reportgen

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/jobs"
)

func reportTask(t *testing.T, id, kind string, data any) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	task, _, err := jobs.NewReportTask(jobs.ReportPayload{JobID: id, Kind: kind, Data: raw})
	require.NoError(t, err)
	return task
}

func newJob(t *testing.T) (*Job, *Storage) {
	t.Helper()
	storage := NewStorage(t.TempDir())
	svc := NewService(ServiceConfig{Generator: newGenerator(t, ""), HTML: &stubHTML{}, Logger: quietLogger()})
	return NewJob(JobConfig{Service: svc, Storage: storage, Logger: quietLogger()}), storage
}

func TestJobWritesReport(t *testing.T) {
	job, storage := newJob(t)
	id := uuid.NewString()
	require.NoError(t, job.Handle(context.Background(), reportTask(t, id, "pdf", propertiesOnly())))

	f, kind, err := storage.Open(id)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, KindPDF, kind)
	head := make([]byte, 5)
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestJobStoresHTML(t *testing.T) {
	job, storage := newJob(t)
	id := uuid.NewString()
	require.NoError(t, job.Handle(context.Background(), reportTask(t, id, "html", propertiesOnly())))
	path, err := storage.Path(id, KindHTML)
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Fazendas Boa Vista")
}

func TestJobSkipsRetryOnBadInput(t *testing.T) {
	job, _ := newJob(t)
	ctx := context.Background()

	err := job.Handle(ctx, asynq.NewTask(jobs.TaskReportGenerate, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(ctx, reportTask(t, uuid.NewString(), "docx", propertiesOnly()))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(ctx, reportTask(t, uuid.NewString(), "pdf", &reportdata.ReportData{}))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(ctx, reportTask(t, uuid.NewString(), "html.pdf", propertiesOnly()))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestStorageRejectsUnsafeIDs(t *testing.T) {
	storage := NewStorage(t.TempDir())
	_, err := storage.Path("../../etc/passwd", KindPDF)
	require.Error(t, err)

	_, _, err = storage.Open(uuid.NewString())
	require.ErrorIs(t, err, ErrReportNotFound)
}
