package skills

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-matcher/internal/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultCanonicalThreshold is the token-set score needed for two
// canonicalized terms to count as the same skill.
const DefaultCanonicalThreshold = 90

var (
	leadingGlyphRx  = regexp.MustCompile(`^\s*(?:[•\-–—\*·▪►◦]+|\d+[.)])\s*`)
	whitespaceRx    = regexp.MustCompile(`\s+`)
	matchKeyStripRx = regexp.MustCompile(`[^\p{L}\p{N}+#./\s-]`)
)

// Canonicalizer maps free-form skill strings onto canonical names using an
// injected alias table.
type Canonicalizer struct {
	table *AliasTable
}

// NewCanonicalizer returns a canonicalizer backed by table. A nil table uses
// DefaultAliasTable.
func NewCanonicalizer(table *AliasTable) *Canonicalizer {
	if table == nil {
		table = DefaultAliasTable()
	}
	return &Canonicalizer{table: table}
}

// Canonical returns the canonical spelling of one term, or "" when the term is
// blank after stripping glyphs.
func (c *Canonicalizer) Canonical(term string) string {
	cleaned := cleanTerm(term)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := c.table.Lookup(lookupKey(cleaned)); ok {
		return canonical
	}
	return cases.Title(language.Und).String(strings.ToLower(cleaned))
}

// CanonicalizeTerms canonicalizes every term and returns the unique results in
// first-seen order. Uniqueness is case-insensitive.
func (c *Canonicalizer) CanonicalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		canonical := c.Canonical(term)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canonical)
	}
	return out
}

// FuzzyContainsCanonical reports whether needle matches any haystack entry
// once both are canonicalized: exact membership first, then a token-set score
// of at least threshold.
func (c *Canonicalizer) FuzzyContainsCanonical(needle string, haystack []string, threshold float64) bool {
	target := c.Canonical(needle)
	if target == "" {
		return false
	}
	targetKey := MatchKey(target)

	keys := make([]string, 0, len(haystack))
	for _, h := range haystack {
		canonical := c.Canonical(h)
		if canonical == "" {
			continue
		}
		if strings.EqualFold(canonical, target) {
			return true
		}
		keys = append(keys, MatchKey(canonical))
	}

	_, ok := fuzzy.Contains(targetKey, keys, threshold)
	return ok
}

// MatchKey lower-cases s, folds accents and reduces punctuation to spaces so
// free text can be compared token by token. Characters common in skill names
// (+ # . / -) are kept.
func MatchKey(s string) string {
	s = strings.ToLower(foldAccents(s))
	s = matchKeyStripRx.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRx.ReplaceAllString(s, " "))
}

// cleanTerm strips list glyphs, surrounding punctuation and extra whitespace
// until nothing more comes off, so stacked glyphs ("- • Python") are removed.
func cleanTerm(term string) string {
	for {
		next := cleanOnce(term)
		if next == term {
			return next
		}
		term = next
	}
}

func cleanOnce(term string) string {
	term = leadingGlyphRx.ReplaceAllString(term, "")
	term = whitespaceRx.ReplaceAllString(term, " ")
	term = strings.TrimSpace(term)
	term = strings.TrimRight(term, ".,;:!?")
	term = strings.TrimLeft(term, ".,;:!?")
	return strings.TrimSpace(term)
}

// lookupKey is the table key for a cleaned term.
func lookupKey(term string) string {
	return strings.ToLower(foldAccents(cleanTerm(term)))
}

// foldAccents removes combining marks, so "Pandás" and "Pandas" share a key.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
