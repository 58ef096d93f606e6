package reportgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/sr-consultoria/farmreport/internal/jobs"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/jobs"
)

// ErrReportNotFound is returned when no stored file exists for a job.
var ErrReportNotFound = errors.New("reportgen: report file not found")

const jobName = "report_generate"

// Storage keeps finished reports on local disk, one file per job.
type Storage struct {
	dir string
}

// NewStorage returns a Storage rooted at dir, defaulting to a temp folder.
func NewStorage(dir string) *Storage {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join(os.TempDir(), "farmreport")
	}
	return &Storage{dir: dir}
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// Path returns the file location of a job's output.
func (s *Storage) Path(jobID string, kind Kind) (string, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return "", fmt.Errorf("reportgen: invalid job id %q: %w", jobID, err)
	}
	return filepath.Join(s.dir, id.String()+kind.Extension()), nil
}

// Save writes body for jobID and returns the path.
func (s *Storage) Save(jobID string, kind Kind, body []byte) (string, error) {
	path, err := s.Path(jobID, kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// Open locates a stored report, trying the PDF first.
func (s *Storage) Open(jobID string) (*os.File, Kind, error) {
	for _, kind := range []Kind{KindPDF, KindHTML} {
		path, err := s.Path(jobID, kind)
		if err != nil {
			return nil, "", err
		}
		f, err := os.Open(path)
		if err == nil {
			return f, kind, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", err
		}
	}
	return nil, "", ErrReportNotFound
}

// JobConfig wires dependencies required by the worker job.
type JobConfig struct {
	Service *Service
	Storage *Storage
	Metrics *jobmetrics.Metrics
	Logger  *slog.Logger
}

// Job processes report generation requests coming from the queue.
type Job struct {
	service *Service
	storage *Storage
	metrics *jobmetrics.Metrics
	logger  *slog.Logger
}

// NewJob constructs a Job handler.
func NewJob(cfg JobConfig) *Job {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{service: cfg.Service, storage: cfg.Storage, metrics: cfg.Metrics, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract. Malformed payloads and
// invalid report data are not retried.
func (j *Job) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.service == nil || j.storage == nil {
		return errors.New("report job not configured")
	}
	tracker := j.metrics.Track(jobName)
	return tracker.End(j.handle(ctx, task))
}

func (j *Job) handle(ctx context.Context, task *asynq.Task) error {
	payload, err := jobs.DecodeReportPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("report job payload: %v: %w", err, asynq.SkipRetry)
	}
	if _, err := uuid.Parse(payload.JobID); err != nil {
		return fmt.Errorf("report job id: %v: %w", err, asynq.SkipRetry)
	}
	kind, err := ParseKind(payload.Kind)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	var data reportdata.ReportData
	if err := json.Unmarshal(payload.Data, &data); err != nil {
		return fmt.Errorf("report job data: %v: %w", err, asynq.SkipRetry)
	}
	res, err := j.service.Generate(ctx, kind, &data)
	if err != nil {
		if errors.Is(err, reportdata.ErrInvalid) || errors.Is(err, ErrRasterizerUnavailable) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	path, err := j.storage.Save(payload.JobID, kind, res.Body)
	if err != nil {
		return err
	}
	j.metrics.AddOutput(jobName, len(res.Body))
	j.logger.Info("report ready", slog.String("job_id", payload.JobID), slog.String("kind", string(kind)), slog.String("file", path))
	return nil
}
