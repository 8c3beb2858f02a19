// Package pipeline wires normalization, parsing and scoring into the
// operations exposed by the CLI, the HTTP server and the queue worker.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/recency"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ProgressEvent reports one finished item of a batch.
type ProgressEvent struct {
	Index int    `json:"index"`
	Total int    `json:"total"`
	Score int    `json:"score"`
	ID    string `json:"analysis_id"`
}

// ProgressCallback is called as batch items finish. It may be called from
// several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock fixes the time used for recency decay.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithLogger sets the logger used for truncation and batch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithProgress registers a batch progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Analyzer) {
		a.onProgress = cb
	}
}

// WithIDs replaces the analysis ID generator.
func WithIDs(newID func() string) Option {
	return func(a *Analyzer) {
		a.newID = newID
	}
}

// Analyzer runs the parse and score operations with one configuration. It is
// safe for concurrent use.
type Analyzer struct {
	cfg        *config.Config
	parser     *parsing.Parser
	scorer     *scoring.Scorer
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
	onProgress ProgressCallback
}

// NewAnalyzer validates cfg and builds an Analyzer. A nil cfg uses
// config.Default().
func NewAnalyzer(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	parser := parsing.NewParser(skills.NewCanonicalizer(nil))
	weighter := recency.New(cfg.Recency, nil)
	scorer, err := scoring.New(parser, weighter, cfg.ScoringOptions())
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		cfg:    cfg,
		parser: parser,
		scorer: scorer,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *config.Config {
	return a.cfg
}

// ParseResume parses résumé text, truncated to the configured maximum.
func (a *Analyzer) ParseResume(text string) *types.ResumeProfile {
	return a.parser.ParseResume(a.truncate("resume", text, a.cfg.MaxResumeLength))
}

// ParseJD parses job-description text, truncated to the configured maximum.
func (a *Analyzer) ParseJD(text string) *types.JobDescription {
	return a.parser.ParseJD(a.truncate("jd", text, a.cfg.MaxJDLength))
}

// Parse dispatches on kind. The result is a *types.ResumeProfile or a
// *types.JobDescription.
func (a *Analyzer) Parse(kind types.DocumentKind, text string) (any, error) {
	switch kind {
	case types.KindResume:
		return a.ParseResume(text), nil
	case types.KindJD:
		return a.ParseJD(text), nil
	}
	return nil, &types.FieldError{Field: "kind", Message: fmt.Sprintf("unsupported document kind %q", kind)}
}

// Analyze scores a parsed résumé against a parsed job description and stamps
// the result with a fresh analysis ID.
func (a *Analyzer) Analyze(resume *types.ResumeProfile, jd *types.JobDescription) types.AnalysisResult {
	result, _ := a.Explain(resume, jd)
	return result
}

// Explain is Analyze plus the scoring breakdown, which is nil when either
// input is empty.
func (a *Analyzer) Explain(resume *types.ResumeProfile, jd *types.JobDescription) (types.AnalysisResult, *scoring.Breakdown) {
	result, breakdown := a.scorer.Explain(resume, jd, a.now())
	result.AnalysisID = a.newID()
	result.Normalize()
	return result, breakdown
}

// AnalyzeText parses both texts and scores them.
func (a *Analyzer) AnalyzeText(resumeText, jdText string) types.AnalysisResult {
	return a.Analyze(a.ParseResume(resumeText), a.ParseJD(jdText))
}

// AnalyzeBatch scores several résumé texts against one job description with
// bounded concurrency. Results keep the order of resumes. Cancelling ctx
// stops items that have not started and returns the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, resumes []string, jd *types.JobDescription) ([]types.AnalysisResult, error) {
	results := make([]types.AnalysisResult, len(resumes))
	if len(resumes) == 0 {
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.BatchConcurrency)

	a.logger.Debug("starting batch analysis", "resumes", len(resumes), "concurrency", a.cfg.BatchConcurrency)
	for i, text := range resumes {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = a.Analyze(a.ParseResume(text), jd)
			if a.onProgress != nil {
				a.onProgress(ProgressEvent{
					Index: i,
					Total: len(resumes),
					Score: results[i].Score,
					ID:    results[i].AnalysisID,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis cancelled: %w", err)
	}
	return results, nil
}

// truncate cuts text to at most limit characters.
func (a *Analyzer) truncate(kind, text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	a.logger.Debug("truncating input", "kind", kind, "chars", len(runes), "limit", limit)
	return string(runes[:limit])
}
