package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	maxSuggestedTerms = 8
	weakVerbThreshold = 0.6
	styleSuggestion   = "Use stronger action verbs (designed, built, optimized, scaled) and quantify impact."
)

func suggest(coreMissing, preferredMissing []string, verbs float64) types.Suggestions {
	var s types.Suggestions
	if len(coreMissing) > 0 {
		s.Skills = []string{fmt.Sprintf("Consider weaving in: %s (only if true).", joinFirst(coreMissing))}
	}
	if len(preferredMissing) > 0 {
		s.NiceToHave = []string{fmt.Sprintf("If applicable, mention: %s.", joinFirst(preferredMissing))}
	}
	if verbs < weakVerbThreshold {
		s.Style = []string{styleSuggestion}
	}
	return s
}

func joinFirst(terms []string) string {
	if len(terms) > maxSuggestedTerms {
		terms = terms[:maxSuggestedTerms]
	}
	return strings.Join(terms, ", ")
}
