// Package ingestion turns raw text from files, URLs and object storage into
// normalized plain text ready for parsing.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source identifies where ingested text came from.
type Source string

const (
	SourceFile   Source = "file"
	SourceURL    Source = "url"
	SourceObject Source = "object"
	SourceInline Source = "inline"
)

// Metadata describes one ingested document.
type Metadata struct {
	Source    Source `json:"source"`
	Path      string `json:"path,omitempty"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Key       string `json:"key,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
	Hash      string `json:"hash"`      // sha256 of the normalized text
	Chars     int    `json:"chars"`
	Lines     int    `json:"lines"`
}

// NewMetadata stamps content with the current time and its hash.
func NewMetadata(content string, source Source) *Metadata {
	lines := 0
	if content != "" {
		lines = 1
		for _, r := range content {
			if r == '\n' {
				lines++
			}
		}
	}
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len([]rune(content)),
		Lines:     lines,
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return out, nil
}
