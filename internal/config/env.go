package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix namespaces every environment variable read by ApplyEnv.
const EnvPrefix = "RESUME_MATCH_"

// ApplyEnv overlays RESUME_MATCH_* environment variables onto c. Unset
// variables leave the current value alone; malformed numbers are errors.
func (c *Config) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"WEIGHT_CORE", &c.Weights.Core},
		{"WEIGHT_PREFERRED", &c.Weights.Preferred},
		{"WEIGHT_VERBS", &c.Weights.Verbs},
		{"WEIGHT_DOMAIN", &c.Weights.Domain},
		{"WEIGHT_RECENCY", &c.Weights.Recency},
		{"WEIGHT_HYGIENE", &c.Weights.Hygiene},
		{"FUZZY_THRESHOLD", &c.FuzzyThreshold},
		{"FUZZY_THRESHOLD_CANONICAL", &c.FuzzyThresholdCanonical},
		{"RECENCY_DECAY_MONTHS", &c.Recency.DecayMonths},
	}
	for _, f := range floats {
		if err := envFloat(f.key, f.dst); err != nil {
			return err
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MAX_RESUME_LENGTH", &c.MaxResumeLength},
		{"MAX_JD_LENGTH", &c.MaxJDLength},
		{"BATCH_CONCURRENCY", &c.BatchConcurrency},
		{"PORT", &c.Server.Port},
		{"RATE_LIMIT_PER_MINUTE", &c.Server.RateLimitPerMinute},
		{"RATE_LIMIT_BURST", &c.Server.RateLimitBurst},
		{"WORKER_CONCURRENCY", &c.Worker.Concurrency},
		{"WORKER_MAX_RETRIES", &c.Worker.MaxRetries},
	}
	for _, i := range ints {
		if err := envInt(i.key, i.dst); err != nil {
			return err
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"ENHANCED_JD_NORMALIZATION", &c.EnhancedNormalization},
		{"RATE_LIMIT_ENABLED", &c.Server.RateLimitEnabled},
		{"EXPOSE_CONFIG", &c.Server.ExposeConfig},
		{"S3_USE_PATH_STYLE", &c.ObjectStore.UsePathStyle},
	}
	for _, b := range bools {
		if err := envBool(b.key, b.dst); err != nil {
			return err
		}
	}

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Worker.AMQPURL = getEnv("AMQP_URL", c.Worker.AMQPURL)
	c.Worker.Queue = getEnv("QUEUE", c.Worker.Queue)
	c.Worker.ResultsQueue = getEnv("RESULTS_QUEUE", c.Worker.ResultsQueue)
	c.ObjectStore.Bucket = getEnv("S3_BUCKET", c.ObjectStore.Bucket)
	c.ObjectStore.Region = getEnv("S3_REGION", c.ObjectStore.Region)
	c.ObjectStore.Endpoint = getEnv("S3_ENDPOINT", c.ObjectStore.Endpoint)
	c.ObjectStore.AccessKeyID = getEnv("S3_ACCESS_KEY", c.ObjectStore.AccessKeyID)
	c.ObjectStore.SecretAccessKey = getEnv("S3_SECRET_KEY", c.ObjectStore.SecretAccessKey)

	if v := os.Getenv(EnvPrefix + "ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = f
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}
