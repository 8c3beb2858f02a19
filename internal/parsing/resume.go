// Package parsing turns normalized résumé and job-description text into
// structured profiles using section segmentation and line heuristics.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// modeledSections are parsed into dedicated profile fields and therefore not
// copied into OtherSections.
var modeledSections = map[string]bool{
	sections.Contact:          true,
	sections.Summary:          true,
	sections.Skills:           true,
	sections.Experience:       true,
	sections.Projects:         true,
	sections.Education:        true,
	sections.Responsibilities: true,
	sections.Requirements:     true,
	sections.Preferred:        true,
}

// Parser extracts structured documents from text. It is safe for concurrent
// use.
type Parser struct {
	canon     *skills.Canonicalizer
	segmenter *sections.Segmenter
}

// NewParser returns a Parser that canonicalizes skills with canon. A nil
// canonicalizer uses the default alias table.
func NewParser(canon *skills.Canonicalizer) *Parser {
	if canon == nil {
		canon = skills.NewCanonicalizer(nil)
	}
	return &Parser{
		canon:     canon,
		segmenter: sections.New(sections.WithHeaderVeto(IsRoleHeader)),
	}
}

// Canonicalizer returns the canonicalizer the parser uses.
func (p *Parser) Canonicalizer() *skills.Canonicalizer {
	return p.canon
}

// ParseResume builds a ResumeProfile from raw résumé text. It never fails;
// unrecognized input yields an empty profile.
func (p *Parser) ParseResume(text string) *types.ResumeProfile {
	txt := ingestion.NormalizeText(text)
	lines := strings.Split(txt, "\n")
	doc := p.segmenter.Split(txt)

	profile := &types.ResumeProfile{
		Contact: ExtractContact(lines),
		Summary: joinLines(doc.Get(sections.Summary)),
		Skills:  p.canon.CanonicalizeTerms(p.canon.SplitSkillLines(doc.Get(sections.Skills))),
	}

	expLines := doc.Get(sections.Experience)
	if !doc.Has(sections.Experience) {
		expLines = lines
	}
	profile.Experience = ParseRoles(expLines)

	projLines := doc.Get(sections.Projects)
	if !doc.Has(sections.Projects) {
		if other := linesOutside(doc, sections.Experience); HasProjectish(other) {
			projLines = other
		}
	}
	profile.Projects = SplitProjects(projLines)
	profile.Education = ParseEducation(doc.Get(sections.Education))
	profile.OtherSections = otherSections(doc)

	profile.EnsureSlices()
	return profile
}

func otherSections(doc *sections.Document) map[string]types.StringList {
	out := make(map[string]types.StringList)
	for _, s := range doc.Sections() {
		if modeledSections[s.Name] {
			continue
		}
		var body []string
		if s.Name == sections.Unknown {
			body = nonBlankLines(s.Lines)
		} else {
			body = CollectBullets(s.Lines)
		}
		if len(body) == 0 {
			continue
		}
		out[s.Name] = body
	}
	return out
}

// nonBlankLines returns the trimmed non-blank lines of block.
func nonBlankLines(block []string) []string {
	var out []string
	for _, l := range block {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// linesOutside returns the lines of every section except skip, in order.
func linesOutside(doc *sections.Document, skip string) []string {
	var out []string
	for _, s := range doc.Sections() {
		if s.Name != skip {
			out = append(out, s.Lines...)
		}
	}
	return out
}

func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
