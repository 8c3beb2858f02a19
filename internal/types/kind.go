package types

import (
	"fmt"
	"strings"
)

// DocumentKind tells the parser which extractor to run.
type DocumentKind string

const (
	// KindResume selects the résumé extractors.
	KindResume DocumentKind = "resume"
	// KindJD selects the job-description extractors.
	KindJD DocumentKind = "jd"
)

// ParseDocumentKind accepts "resume" or "jd" (case-insensitive).
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindResume:
		return KindResume, nil
	case KindJD:
		return KindJD, nil
	}
	return "", &FieldError{Field: "kind", Message: fmt.Sprintf("must be %q or %q, got %q", KindResume, KindJD, s)}
}

// FieldError reports input that does not have the expected shape.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}
