// Package worker consumes analysis jobs from an AMQP queue and publishes the
// scored results to a results queue.
package worker

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/jonathan/resume-matcher/internal/types"
)

// AnalysisJob is one queued request. Exactly one of ResumeText or
// ResumeObjectKey is needed; Bucket overrides the configured bucket.
type AnalysisJob struct {
	ID              string `json:"id" validate:"required"`
	ResumeText      string `json:"resume_text,omitempty" validate:"required_without=ResumeObjectKey"`
	ResumeObjectKey string `json:"resume_object_key,omitempty" validate:"required_without=ResumeText"`
	Bucket          string `json:"bucket,omitempty"`
	JDText          string `json:"jd_text" validate:"required"`
}

// Status is the lifecycle state reported for a job.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// JobResult is published once per consumed job.
type JobResult struct {
	ID        string                `json:"id"`
	Status    Status                `json:"status"`
	Result    *types.AnalysisResult `json:"result,omitempty"`
	Error     string                `json:"error,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

var validate = validator.New()

// DecodeJob parses and validates a message body.
func DecodeJob(body []byte) (job AnalysisJob, err error) {
	err = json.Unmarshal(body, &job)
	if err != nil {
		err = errors.Wrap(err, "failed to decode job")
		return job, err
	}

	err = validate.Struct(job)
	if err != nil {
		err = errors.Wrapf(err, "invalid job %q", job.ID)
		return job, err
	}

	return job, err
}
