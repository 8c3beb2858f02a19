// Package objectstore downloads plain-text résumés and postings from S3 or an
// S3-compatible store such as R2 or MinIO.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jonathan/resume-matcher/internal/config"
)

// DefaultMaxObjectBytes caps a single download.
const DefaultMaxObjectBytes = 10 << 20

// GetObjectAPI is the subset of the S3 client used here.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client downloads objects. It satisfies ingestion.ObjectReader.
type Client struct {
	api      GetObjectAPI
	maxBytes int64
}

// New builds an S3 client from cfg. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg config.ObjectStoreConfig) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewWithAPI(api, DefaultMaxObjectBytes), nil
}

// NewWithAPI wraps an existing GetObject implementation. maxBytes <= 0 uses
// DefaultMaxObjectBytes.
func NewWithAPI(api GetObjectAPI, maxBytes int64) *Client {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxObjectBytes
	}
	return &Client{api: api, maxBytes: maxBytes}
}

// ErrTooLarge is returned when an object exceeds the size cap.
type ErrTooLarge struct {
	Bucket, Key string
	Limit       int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("object %s/%s exceeds %d bytes", e.Bucket, e.Key, e.Limit)
}

// Download reads the whole object into memory.
func (c *Client) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	if n > c.maxBytes {
		return nil, &ErrTooLarge{Bucket: bucket, Key: key, Limit: c.maxBytes}
	}
	return buf.Bytes(), nil
}
