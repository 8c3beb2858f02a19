package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Analyzer scores résumé text against job-description text.
// pipeline.Analyzer implements it.
type Analyzer interface {
	AnalyzeText(resumeText, jdText string) types.AnalysisResult
}

// Processor turns a message body into a JobResult. It never returns an
// error; failures are reported in the result.
type Processor struct {
	Analyzer Analyzer
	Objects  ingestion.ObjectReader // nil disables object-key jobs
	Bucket   string
	Retries  int
	Backoff  time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// Process handles one message body.
func (p *Processor) Process(ctx context.Context, body []byte) (result JobResult) {
	result.Timestamp = p.now()

	job, err := DecodeJob(body)
	result.ID = job.ID
	if err != nil {
		return p.fail(result, err)
	}

	resumeText, err := p.resumeText(ctx, job)
	if err != nil {
		return p.fail(result, err)
	}

	analysis := p.Analyzer.AnalyzeText(resumeText, job.JDText)
	result.Status = StatusCompleted
	result.Result = &analysis
	p.logger().Info("job completed", "job_id", job.ID, "score", analysis.Score)
	return result
}

func (p *Processor) resumeText(ctx context.Context, job AnalysisJob) (text string, err error) {
	if job.ResumeText != "" {
		text = job.ResumeText
		return text, err
	}
	if p.Objects == nil {
		err = errors.New("object storage is not configured")
		return text, err
	}

	bucket := job.Bucket
	if bucket == "" {
		bucket = p.Bucket
	}
	if bucket == "" {
		err = errors.Errorf("job %q has an object key but no bucket", job.ID)
		return text, err
	}

	text, err = retry(ctx, p.Retries+1, p.Backoff, func() (string, error) {
		t, _, dlErr := ingestion.FromObject(ctx, p.Objects, bucket, job.ResumeObjectKey)
		return t, dlErr
	})
	if err != nil {
		err = errors.Wrap(err, "resume download failed")
	}
	return text, err
}

func (p *Processor) fail(result JobResult, err error) JobResult {
	p.logger().Error("job failed", "job_id", result.ID, "error", err)
	result.Status = StatusFailed
	result.Error = err.Error()
	return result
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}
