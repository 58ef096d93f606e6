package jobs

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportGenerate renders a report into the storage directory.
	TaskReportGenerate = "report:generate"
	// ReportRetention keeps finished report tasks inspectable for a day.
	ReportRetention = 24 * time.Hour
)

// ErrMissingJobID is returned when a payload has no job id.
var ErrMissingJobID = errors.New("jobs: missing job id")

// ReportPayload describes one queued report. Data holds the raw ReportData
// JSON so the queue stays independent of the domain types.
type ReportPayload struct {
	JobID string          `json:"jobId"`
	Kind  string          `json:"kind"`
	Data  json.RawMessage `json:"data"`
}

// NewReportTask constructs the asynq task. The job id doubles as the task id
// so the inspector can look it up later.
func NewReportTask(payload ReportPayload) (*asynq.Task, []asynq.Option, error) {
	if strings.TrimSpace(payload.JobID) == "" {
		return nil, nil, ErrMissingJobID
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.TaskID(payload.JobID),
		asynq.Retention(ReportRetention),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TaskReportGenerate, data), opts, nil
}

// DecodeReportPayload parses a task payload.
func DecodeReportPayload(raw []byte) (ReportPayload, error) {
	var payload ReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ReportPayload{}, err
	}
	if strings.TrimSpace(payload.JobID) == "" {
		return ReportPayload{}, ErrMissingJobID
	}
	return payload, nil
}
