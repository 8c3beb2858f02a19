// Package types defines the résumé, job description and analysis
// structures shared by the parser, the scorer and the outer surfaces.
package types

import "strings"

// Contact holds the candidate's contact details extracted from the top of a résumé.
type Contact struct {
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	Links []string `json:"links"`
}

// HasAny reports whether at least one way of reaching the candidate was found.
func (c Contact) HasAny() bool {
	return c.Email != "" || c.Phone != "" || len(c.Links) > 0
}

// ExperienceRole is a single position parsed from the experience section.
type ExperienceRole struct {
	Company  string     `json:"company"`
	Role     string     `json:"role"`
	Location string     `json:"location,omitempty"`
	Start    string     `json:"start,omitempty"`
	End      string     `json:"end,omitempty"`
	Bullets  StringList `json:"bullets"`
}

// Project is a named side project with its bullets. Name may be empty for the
// fallback block.
type Project struct {
	Name    string     `json:"name"`
	Bullets StringList `json:"bullets"`
}

// Education is one school entry.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree,omitempty"`
	Grad   string `json:"grad,omitempty"`
}

// ResumeProfile is the structured form of a résumé.
type ResumeProfile struct {
	Contact       Contact               `json:"contact"`
	Summary       string                `json:"summary,omitempty"`
	Skills        StringList            `json:"skills"`
	Experience    []ExperienceRole      `json:"experience"`
	Projects      []Project             `json:"projects"`
	Education     []Education           `json:"education"`
	OtherSections map[string]StringList `json:"other_sections"`
}

// Bullets returns every experience bullet followed by every project bullet.
func (p *ResumeProfile) Bullets() []string {
	var out []string
	for _, r := range p.Experience {
		out = append(out, r.Bullets...)
	}
	for _, pr := range p.Projects {
		out = append(out, pr.Bullets...)
	}
	return out
}

// IsEmpty reports whether the profile carries nothing that can be scored:
// no skills and no bullets anywhere.
func (p *ResumeProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(nonBlank(p.Skills)) == 0 && len(nonBlank(p.Bullets())) == 0
}

// EnsureSlices replaces nil slices and maps with empty ones so the profile
// always serializes with arrays.
func (p *ResumeProfile) EnsureSlices() {
	if p.Contact.Links == nil {
		p.Contact.Links = []string{}
	}
	if p.Skills == nil {
		p.Skills = StringList{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceRole{}
	}
	for i := range p.Experience {
		if p.Experience[i].Bullets == nil {
			p.Experience[i].Bullets = StringList{}
		}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Bullets == nil {
			p.Projects[i].Bullets = StringList{}
		}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.OtherSections == nil {
		p.OtherSections = map[string]StringList{}
	}
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
