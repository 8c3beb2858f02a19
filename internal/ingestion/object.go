package ingestion

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// ObjectReader downloads an object's bytes. objectstore.Client implements it.
type ObjectReader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// FromObject downloads a plain-text object and normalizes it. Objects that
// are not valid UTF-8 are rejected, since binary formats are decoded upstream.
func FromObject(ctx context.Context, reader ObjectReader, bucket, key string) (string, *Metadata, error) {
	data, err := reader.Download(ctx, bucket, key)
	if err != nil {
		return "", nil, fmt.Errorf("failed to download %s/%s: %w", bucket, key, err)
	}
	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("object %s/%s is not plain UTF-8 text", bucket, key)
	}

	text := NormalizeText(string(data))
	meta := NewMetadata(text, SourceObject)
	meta.Bucket = bucket
	meta.Key = key
	return text, meta, nil
}
