package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	horizontalSpaceRx = regexp.MustCompile(`[ \t\x{00A0}\x{2000}-\x{200A}\x{202F}\x{205F}\x{3000}]+`)
	excessBlankRx     = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText canonicalizes line endings and whitespace while leaving bullet
// glyphs in place. It never fails: any string yields a well-formed result.
func NormalizeText(content string) string {
	if content == "" {
		return ""
	}

	// CRLF and bare CR become LF
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	content = strings.Map(replaceControl, content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}

	result := strings.Join(lines, "\n")
	result = excessBlankRx.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// normalizeLine collapses runs of horizontal whitespace and trims the line.
func normalizeLine(line string) string {
	line = horizontalSpaceRx.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// replaceControl maps control and zero-width characters to a space (or drops
// them), keeping newlines and tabs.
func replaceControl(r rune) rune {
	switch {
	case r == '\n' || r == '\t':
		return r
	case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff':
		return -1
	case r == unicode.ReplacementChar:
		return ' '
	case unicode.IsControl(r):
		return ' '
	}
	return r
}

// FromFile reads a plain-text file and returns its normalized content with
// metadata.
func FromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := NormalizeText(string(content))
	meta := NewMetadata(text, SourceFile)
	meta.Path = path
	return text, meta, nil
}

// WriteOutput writes <name>.cleaned.txt and <name>.meta.json into outDir.
func WriteOutput(outDir, name, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, name+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
