package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxTermWords is the longest item still treated as a skill term rather than
// a prose requirement.
const maxTermWords = 4

var (
	companyLineRx   = regexp.MustCompile(`(?im)^\s*(?:company|employer|organization)\s*:\s*(.+?)\s*$`)
	aboutHeaderRx   = regexp.MustCompile(`(?i)^#*\s*about\s+(.+?)[\s:]*$`)
	termSeparatorRx = regexp.MustCompile(`[,;|·/]`)
)

// genericAboutTargets are "About ..." headers that do not name the company.
var genericAboutTargets = map[string]bool{
	"us": true, "the company": true, "the team": true, "the role": true, "the job": true,
	"you": true, "this role": true, "the position": true, "the opportunity": true, "me": true,
}

// ParseJD builds a JobDescription from raw posting text. Requirement lines
// that read as skill lists are split into canonical terms; prose lines are
// kept whole for later mining.
func (p *Parser) ParseJD(text string) *types.JobDescription {
	txt := ingestion.NormalizeText(text)
	lines := strings.Split(txt, "\n")
	doc := p.segmenter.Split(txt)

	jd := &types.JobDescription{
		Title:            jdTitle(lines),
		Company:          jdCompany(txt, doc),
		Responsibilities: CollectBullets(doc.Get(sections.Responsibilities)),
	}

	reqLines := doc.Get(sections.Requirements)
	if !doc.Has(sections.Requirements) {
		reqLines = doc.Get(sections.Qualifications)
	}
	prefLines := doc.Get(sections.Preferred)
	skillLines := doc.Get(sections.Skills)

	jd.Required = p.requirementItems(reqLines)
	jd.Preferred = p.requirementItems(prefLines)
	jd.Skills = p.canon.CanonicalizeTerms(p.canon.SplitSkillLines(skillLines))

	if len(jd.Required) == 0 && len(jd.Skills) == 0 && len(jd.Preferred) == 0 {
		jd.Required = p.canon.FindKnownTerms(strings.Join(lines, " "))
	}

	jd.Merge()
	jd.EnsureSlices()
	return jd
}

// requirementItems splits requirement bullets into canonical skill terms when
// they read as lists and keeps prose bullets as written.
func (p *Parser) requirementItems(lines []string) []string {
	var out []string
	for _, item := range CollectBullets(lines) {
		if IsTermList(item) {
			out = append(out, p.canon.CanonicalizeTerms(p.canon.SplitSkillLines([]string{item}))...)
			continue
		}
		out = append(out, item)
	}
	return types.DedupeFold(out)
}

// IsTermList reports whether item is a short term or a separator-delimited
// list of short terms, as opposed to a prose sentence.
func IsTermList(item string) bool {
	body := item
	if i := strings.Index(body, ":"); i >= 0 && i < 32 {
		body = body[i+1:]
	}
	if len(strings.Fields(body)) <= maxTermWords {
		return true
	}
	parts := termSeparatorRx.Split(body, -1)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if len(strings.Fields(conjunctionTrim(part))) > maxTermWords {
			return false
		}
	}
	return true
}

func conjunctionTrim(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range []string{"and ", "or ", "& "} {
		if strings.HasPrefix(strings.ToLower(s), c) {
			return s[len(c):]
		}
	}
	return s
}

func jdTitle(lines []string) string {
	for _, l := range lines {
		if t := StripBullet(strings.TrimSpace(l)); t != "" {
			return strings.TrimSpace(t)
		}
	}
	return ""
}

func jdCompany(txt string, doc *sections.Document) string {
	if m := companyLineRx.FindStringSubmatch(txt); m != nil {
		return m[1]
	}
	for _, s := range doc.Sections() {
		m := aboutHeaderRx.FindStringSubmatch(s.Header)
		if m == nil {
			continue
		}
		if name := strings.TrimSpace(m[1]); !genericAboutTargets[strings.ToLower(name)] {
			return name
		}
	}
	return ""
}
