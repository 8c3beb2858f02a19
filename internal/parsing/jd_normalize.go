package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const maxPhraseWords = 3

var (
	listArtifactRx  = regexp.MustCompile(`^\s*(?:[-*•·▪►◦–—]+|\(?\d{1,2}[.)]|[a-z][.)])\s+`)
	compoundSplitRx = regexp.MustCompile(`\s*(?:;|\s•\s|\s·\s)\s*`)
	phraseStopRx    = regexp.MustCompile(`(?i)\s+(?:and|or|at|in|for|to|on|of|using|from|including|such|as|with|across|within)\s+.*$`)
	phraseSplitRx   = regexp.MustCompile(`(?i),|\s+and\s+|\s+or\s+`)
)

// phrasePattern captures the object of a requirement phrase such as
// "experience with X".
type phrasePattern struct {
	name string
	rx   *regexp.Regexp
}

var phrasePatterns = []phrasePattern{
	{"experience-with", regexp.MustCompile(`(?i)\b(?:experience|expertise)\s+(?:with|in|using|building)\s+([^.;:()]+)`)},
	{"proficiency-in", regexp.MustCompile(`(?i)\bproficien(?:cy|t)\s+(?:in|with)\s+([^.;:()]+)`)},
	{"knowledge-of", regexp.MustCompile(`(?i)\b(?:knowledge|understanding)\s+of\s+([^.;:()]+)`)},
	{"familiarity-with", regexp.MustCompile(`(?i)\bfamiliar(?:ity)?\s+with\s+([^.;:()]+)`)},
	{"background-in", regexp.MustCompile(`(?i)\bbackground\s+in\s+([^.;:()]+)`)},
}

// JDTerms is the canonical vocabulary extracted from a job description.
// Required holds core terms (required ∪ skills, plus terms mined from prose
// in enhanced mode); Preferred excludes anything already in Required.
type JDTerms struct {
	Required         []string
	Preferred        []string
	Responsibilities []string
}

// StripListArtifacts removes leading bullets, dashes and numbering.
func StripListArtifacts(line string) string {
	return strings.TrimSpace(listArtifactRx.ReplaceAllString(line, ""))
}

// SplitCompound splits a line on ";" and inline bullet separators.
func SplitCompound(line string) []string {
	var out []string
	for _, part := range compoundSplitRx.Split(line, -1) {
		if part = StripListArtifacts(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MinePhrases returns the objects of requirement phrases in text, cut at the
// first connective and limited to a few words.
func MinePhrases(text string) []string {
	var out []string
	for _, p := range phrasePatterns {
		for _, m := range p.rx.FindAllStringSubmatch(text, -1) {
			for _, piece := range phraseSplitRx.Split(m[1], -1) {
				piece = strings.TrimSpace(phraseStopRx.ReplaceAllString(" "+strings.TrimSpace(piece)+" ", ""))
				words := strings.Fields(piece)
				if len(words) == 0 || len(words) > maxPhraseWords {
					continue
				}
				out = append(out, strings.Join(words, " "))
			}
		}
	}
	return out
}

// ExtractTerms builds the JD vocabulary. Baseline mode canonicalizes the
// structured fields as given. Enhanced mode also strips list artifacts,
// splits compound lines and mines prose requirement and responsibility
// lines for known skills and requirement phrases.
func (p *Parser) ExtractTerms(jd *types.JobDescription, enhanced bool) JDTerms {
	if jd == nil {
		return JDTerms{Required: []string{}, Preferred: []string{}, Responsibilities: []string{}}
	}
	if !enhanced {
		required := p.canon.CanonicalizeTerms(append(append([]string{}, jd.Required...), jd.Skills...))
		return JDTerms{
			Required:         required,
			Preferred:        excludeFold(p.canon.CanonicalizeTerms(jd.Preferred), required),
			Responsibilities: []string(types.DedupeFold(jd.Responsibilities)),
		}
	}

	var responsibilities []string
	for _, line := range jd.Responsibilities {
		responsibilities = append(responsibilities, SplitCompound(line)...)
	}
	responsibilities = types.DedupeFold(responsibilities)

	required := p.enhancedItems(jd.Required)
	required = append(required, p.canon.CanonicalizeTerms(p.canon.SplitSkillLines(jd.Skills))...)
	for _, line := range responsibilities {
		required = append(required, p.mine(line)...)
	}
	required = p.canon.CanonicalizeTerms(required)

	return JDTerms{
		Required:         required,
		Preferred:        excludeFold(p.canon.CanonicalizeTerms(p.enhancedItems(jd.Preferred)), required),
		Responsibilities: responsibilities,
	}
}

// NormalizeJD returns the normalized skill and responsibility lists reported
// with an analysis.
func (p *Parser) NormalizeJD(jd *types.JobDescription, enhanced bool) types.NormalizedJD {
	terms := p.ExtractTerms(jd, enhanced)
	return types.NormalizedJD{
		Skills:           append(append([]string{}, terms.Required...), terms.Preferred...),
		Responsibilities: append([]string{}, terms.Responsibilities...),
	}
}

func (p *Parser) enhancedItems(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range SplitCompound(item) {
			if IsTermList(part) {
				out = append(out, p.canon.CanonicalizeTerms(p.canon.SplitSkillLines([]string{part}))...)
				continue
			}
			out = append(out, p.mine(part)...)
		}
	}
	return out
}

// mine returns known skills and phrase objects found in a prose line.
func (p *Parser) mine(line string) []string {
	found := p.canon.FindKnownTerms(line)
	for _, phrase := range MinePhrases(line) {
		if len(p.canon.FindKnownTerms(phrase)) > 0 {
			continue
		}
		found = append(found, phrase)
	}
	return found
}

// excludeFold returns items not present in exclude, compared
// case-insensitively.
func excludeFold(items, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[strings.ToLower(e)] = true
	}
	out := []string{}
	for _, it := range items {
		if !skip[strings.ToLower(it)] {
			out = append(out, it)
		}
	}
	return out
}
