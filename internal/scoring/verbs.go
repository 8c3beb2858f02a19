package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fuzzy"
)

// actionVerbs is the lexicon JD verbs are drawn from and the generic set
// used when a JD names none.
var actionVerbs = []string{
	"build", "built", "design", "designed", "implement", "implemented", "optimize", "optimized",
	"deploy", "deployed", "automate", "automated", "lead", "led", "own", "owned", "scale", "scaled",
	"migrate", "migrated", "improve", "improved", "reduce", "reduced", "increase", "increased",
	"deliver", "delivered", "architect", "architected", "monitor", "monitored", "debug", "debugged",
}

var actionVerbSet = func() map[string]bool {
	m := make(map[string]bool, len(actionVerbs))
	for _, v := range actionVerbs {
		m[v] = true
	}
	return m
}()

var irregularVerbs = map[string]string{
	"built": "build", "led": "lead", "ran": "run", "wrote": "write", "made": "make",
	"debugged": "debug", "shipped": "ship", "drove": "drive", "grew": "grow",
}

var tokenRx = regexp.MustCompile(`[a-z][a-z0-9+.#-]+`)

// Tokens returns the lower-cased word tokens of text.
func Tokens(text string) []string {
	return tokenRx.FindAllString(strings.ToLower(text), -1)
}

// Lemma reduces an English verb form to a comparison stem, so "designed" and
// "design" or "built" and "build" compare equal.
func Lemma(word string) string {
	w := strings.ToLower(strings.TrimRight(word, "."))
	if base, ok := irregularVerbs[w]; ok {
		return base
	}
	switch {
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		w = w[:len(w)-2]
	case strings.HasSuffix(w, "ing") && len(w) > 5:
		w = w[:len(w)-3]
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		w = w[:len(w)-1]
	}
	return strings.TrimSuffix(w, "e")
}

// JDVerbs returns the action verbs named in the JD text in first-seen order,
// or the generic set when there are none.
func JDVerbs(source []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range source {
		for _, tok := range Tokens(line) {
			if actionVerbSet[tok] && !seen[tok] {
				seen[tok] = true
				out = append(out, tok)
			}
		}
	}
	if len(out) == 0 {
		return append([]string{}, actionVerbs...)
	}
	return out
}

// VerbAlignment is the fraction of JD verbs found among bullet tokens, by
// lemma or by a Ratio of at least threshold.
func VerbAlignment(jdVerbs, bullets []string, threshold float64) float64 {
	if len(jdVerbs) == 0 {
		return 0
	}
	tokens := make(map[string]bool)
	lemmas := make(map[string]bool)
	for _, b := range bullets {
		for _, tok := range Tokens(b) {
			tokens[tok] = true
			lemmas[Lemma(tok)] = true
		}
	}

	hits := 0
	for _, v := range jdVerbs {
		if lemmas[Lemma(v)] || anyRatio(v, tokens, threshold) {
			hits++
		}
	}
	return float64(hits) / float64(len(jdVerbs))
}

func anyRatio(verb string, tokens map[string]bool, threshold float64) bool {
	for tok := range tokens {
		if fuzzy.Ratio(verb, tok) >= threshold {
			return true
		}
	}
	return false
}
