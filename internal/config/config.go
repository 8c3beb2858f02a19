// Package config provides configuration loading and validation for the
// matcher, its HTTP server and its queue worker.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/recency"
	"github.com/jonathan/resume-matcher/internal/scoring"
)

// Config holds every tunable of the matcher. Values loaded from a JSON file
// are layered over Default(), and environment variables over both.
type Config struct {
	// Scoring
	Weights                 scoring.Weights `json:"weights"`
	FuzzyThreshold          float64         `json:"fuzzy_threshold" validate:"gte=0,lte=100"`           // Token-set ratio for a term match
	FuzzyThresholdCanonical float64         `json:"fuzzy_threshold_canonical" validate:"gte=0,lte=100"` // Ratio for canonical-form matches
	VerbThreshold           float64         `json:"verb_threshold" validate:"gte=0,lte=100"`            // Ratio for fuzzy verb matches
	DomainBonusMax          float64         `json:"domain_bonus_max" validate:"gte=0,lte=15"`           // Points added for title overlap
	EnhancedNormalization   bool            `json:"enhanced_normalization"`                             // Phrase mining and compound splitting
	Recency                 recency.Params  `json:"recency"`

	// Limits
	MaxResumeLength  int `json:"max_resume_length" validate:"gt=0"` // Characters kept from a résumé
	MaxJDLength      int `json:"max_jd_length" validate:"gt=0"`     // Characters kept from a job description
	BatchConcurrency int `json:"batch_concurrency" validate:"gte=1,lte=64"`

	Log         LogConfig         `json:"log"`
	Server      ServerConfig      `json:"server"`
	Worker      WorkerConfig      `json:"worker"`
	ObjectStore ObjectStoreConfig `json:"object_store"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `json:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" validate:"oneof=text json"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int      `json:"port" validate:"gte=1,lte=65535"`
	MaxBodyBytes       int64    `json:"max_body_bytes" validate:"gt=0"`
	RateLimitEnabled   bool     `json:"rate_limit_enabled"`
	RateLimitPerMinute int      `json:"rate_limit_per_minute" validate:"gte=1"`
	RateLimitBurst     int      `json:"rate_limit_burst" validate:"gte=1"`
	AllowedOrigins     []string `json:"allowed_origins"`
	ExposeConfig       bool     `json:"expose_config"` // Serve /config
	ShutdownSeconds    int      `json:"shutdown_seconds" validate:"gte=0"`
}

// WorkerConfig configures the AMQP job consumer.
type WorkerConfig struct {
	AMQPURL      string `json:"amqp_url" validate:"omitempty,url"`
	Queue        string `json:"queue" validate:"required"`
	ResultsQueue string `json:"results_queue" validate:"required"`
	Concurrency  int    `json:"concurrency" validate:"gte=1,lte=64"`
	MaxRetries   int    `json:"max_retries" validate:"gte=0,lte=10"`
}

// ObjectStoreConfig points at the S3 bucket that holds uploaded texts.
type ObjectStoreConfig struct {
	Bucket       string `json:"bucket"`
	Region       string `json:"region"`
	Endpoint     string `json:"endpoint" validate:"omitempty,url"` // Non-AWS endpoints such as MinIO or R2
	UsePathStyle bool   `json:"use_path_style"`

	// Static credentials come from the environment only. When empty the
	// default AWS credential chain is used.
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
}

// Default returns the stock configuration.
func Default() *Config {
	opts := scoring.DefaultOptions()
	return &Config{
		Weights:                 opts.Weights,
		FuzzyThreshold:          opts.FuzzyThreshold,
		FuzzyThresholdCanonical: opts.CanonicalThreshold,
		VerbThreshold:           opts.VerbThreshold,
		DomainBonusMax:          opts.DomainBonusMax,
		EnhancedNormalization:   opts.Enhanced,
		Recency:                 recency.DefaultParams(),
		MaxResumeLength:         25000,
		MaxJDLength:             50000,
		BatchConcurrency:        4,
		Log:                     LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{
			Port:               8080,
			MaxBodyBytes:       10 << 20,
			RateLimitPerMinute: 60,
			RateLimitBurst:     10,
			AllowedOrigins:     []string{"*"},
			ShutdownSeconds:    10,
		},
		Worker: WorkerConfig{
			Queue:        "resume.analyze",
			ResultsQueue: "resume.results",
			Concurrency:  2,
			MaxRetries:   3,
		},
		ObjectStore: ObjectStoreConfig{Region: "us-east-1"},
	}
}

// LoadConfig reads a JSON file over Default(). Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks ranges and that the weights sum to 100.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q check (value %v)", fe.Tag(), fe.Value()),
				Err:     err,
			}
		}
		return &ValidationError{Field: "config", Message: "invalid configuration", Err: err}
	}

	if sum := c.Weights.Sum(); math.Abs(sum-100) > 1e-6 {
		return &ValidationError{
			Field:   "Config.Weights",
			Message: fmt.Sprintf("weights sum to %g, expected 100", sum),
		}
	}
	return nil
}

// Warnings lists settings that are valid but unsafe for production.
func (c *Config) Warnings() []string {
	var out []string
	for _, o := range c.Server.AllowedOrigins {
		if o == "*" {
			out = append(out, "CORS allows all origins (*); restrict for production")
			break
		}
	}
	if c.Log.Level == "debug" {
		out = append(out, "debug logging enabled; disable for production")
	}
	if !c.Server.RateLimitEnabled {
		out = append(out, "rate limiting disabled")
	}
	return out
}

// ScoringOptions converts the scoring fields for scoring.New.
func (c *Config) ScoringOptions() scoring.Options {
	return scoring.Options{
		Weights:            c.Weights,
		FuzzyThreshold:     c.FuzzyThreshold,
		CanonicalThreshold: c.FuzzyThresholdCanonical,
		VerbThreshold:      c.VerbThreshold,
		DomainBonusMax:     c.DomainBonusMax,
		Enhanced:           c.EnhancedNormalization,
	}
}

// Public is the subset of the configuration that is safe to expose over
// HTTP.
type Public struct {
	Weights                 scoring.Weights `json:"weights"`
	FuzzyThreshold          float64         `json:"fuzzy_threshold"`
	FuzzyThresholdCanonical float64         `json:"fuzzy_threshold_canonical"`
	EnhancedNormalization   bool            `json:"enhanced_normalization"`
	MaxResumeLength         int             `json:"max_resume_length"`
	MaxJDLength             int             `json:"max_jd_length"`
}

// Public returns the exposable view.
func (c *Config) Public() Public {
	return Public{
		Weights:                 c.Weights,
		FuzzyThreshold:          c.FuzzyThreshold,
		FuzzyThresholdCanonical: c.FuzzyThresholdCanonical,
		EnhancedNormalization:   c.EnhancedNormalization,
		MaxResumeLength:         c.MaxResumeLength,
		MaxJDLength:             c.MaxJDLength,
	}
}
