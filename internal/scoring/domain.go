package scoring

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// titleStopwords never count as domain keywords. Seniority words are
// included so the bonus reflects the field, not the level.
var titleStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "the": true, "to": true, "for": true,
	"of": true, "with": true, "in": true, "on": true, "at": true, "from": true, "by": true,
	"as": true, "is": true, "are": true, "be": true, "this": true, "that": true, "it": true,
	"its": true, "our": true, "your": true, "you": true, "we": true, "they": true,
	"senior": true, "sr": true, "sr.": true, "junior": true, "jr": true, "jr.": true,
	"ii": true, "iii": true, "iv": true, "mid-level": true, "entry-level": true,
}

// TitleKeywords returns the distinct non-stopword tokens of a job title.
func TitleKeywords(title string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range Tokens(title) {
		if titleStopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// DomainBonus scales maxBonus by the share of JD title keywords that appear
// in any résumé role title.
func DomainBonus(jdTitle string, roles []types.ExperienceRole, maxBonus float64) float64 {
	keywords := TitleKeywords(jdTitle)
	if len(keywords) == 0 {
		return 0
	}
	have := make(map[string]bool)
	for _, r := range roles {
		for _, tok := range Tokens(r.Role) {
			have[Lemma(tok)] = true
		}
	}
	matched := 0
	for _, k := range keywords {
		if have[Lemma(k)] {
			matched++
		}
	}
	return maxBonus * float64(matched) / float64(len(keywords))
}
