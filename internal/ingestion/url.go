package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the page could not be downloaded.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text could be pulled from the page.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions controls FromURL.
type URLOptions struct {
	// UseBrowser re-renders the page in headless Chrome when the plain HTTP
	// fetch yields too little text.
	UseBrowser bool
	Fetch      *fetch.Options
	Logger     *slog.Logger
}

// FromURL downloads a job posting, extracts its main text with
// platform-specific selectors and normalizes it.
func FromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching job posting", "url", urlStr, "platform", platform)

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug("extracted page text", "chars", len(text))

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("page text too short, rendering with headless browser",
			"chars", len(text), "min", fetch.MinContentLength)
		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, fetch.DefaultTimeout, logger)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping HTTP content", "error", browserErr)
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil {
			text = browserText
		}
	}

	cleaned := NormalizeText(text)
	meta := NewMetadata(cleaned, SourceURL)
	meta.URL = urlStr
	meta.Platform = string(platform)
	return cleaned, meta, nil
}

// FromHTML extracts and normalizes the main text of an HTML document that is
// already in memory.
func FromHTML(html string) (string, error) {
	text, err := fetch.ExtractMainText(html, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	return NormalizeText(text), nil
}
