// Package sections splits normalized résumé and job-description text into
// named sections.
package sections

import (
	"regexp"
	"sort"
	"strings"
)

// Canonical section names.
const (
	Unknown          = "unknown"
	Summary          = "summary"
	Skills           = "skills"
	Experience       = "experience"
	Projects         = "projects"
	Education        = "education"
	Certifications   = "certifications"
	Awards           = "awards"
	Publications     = "publications"
	Volunteer        = "volunteer"
	Interests        = "interests"
	Languages        = "languages"
	Responsibilities = "responsibilities"
	Requirements     = "requirements"
	Qualifications   = "qualifications"
	Preferred        = "preferred"
	About            = "about"
	Benefits         = "benefits"
	Contact          = "contact"
)

var registry = map[string][]string{
	Summary: {
		"summary", "profile", "professional summary", "career summary", "objective",
		"career objective", "about me", "professional profile", "overview",
	},
	Skills: {
		"skills", "technical skills", "core competencies", "competencies", "technologies",
		"tech stack", "tools", "skills & tools", "skills and tools", "skills & technologies",
		"skills and technologies", "technical proficiencies", "key skills",
	},
	Experience: {
		"experience", "work experience", "professional experience", "employment",
		"employment history", "work history", "relevant experience", "career history",
	},
	Projects: {
		"projects", "personal projects", "selected projects", "side projects",
		"academic projects", "key projects", "project experience",
	},
	Education: {
		"education", "academic background", "education & training", "education and training",
		"academics", "academic history",
	},
	Certifications: {
		"certifications", "certificates", "licenses", "licenses & certifications",
		"licenses and certifications", "certifications & licenses",
	},
	Awards:       {"awards", "honors", "achievements", "honors & awards", "honors and awards"},
	Publications: {"publications", "research", "papers"},
	Volunteer:    {"volunteer", "volunteering", "volunteer experience", "community involvement"},
	Interests:    {"interests", "hobbies", "hobbies & interests"},
	Languages:    {"languages", "spoken languages"},
	Responsibilities: {
		"responsibilities", "key responsibilities", "what you'll do", "what you will do",
		"duties", "the role", "your role", "role responsibilities", "day to day",
		"in this role you will", "what you'll be doing",
	},
	Requirements: {
		"requirements", "required qualifications", "minimum qualifications",
		"basic qualifications", "what you'll need", "what we're looking for", "must have",
		"must-haves", "must haves", "you have", "who you are", "required skills",
	},
	Qualifications: {"qualifications", "your qualifications"},
	Preferred: {
		"preferred", "preferred qualifications", "nice to have", "nice-to-have",
		"nice to haves", "bonus", "bonus points", "pluses", "desired qualifications",
		"preferred skills", "it's a plus if you have",
	},
	About:    {"about us", "about the company", "who we are", "about the team"},
	Benefits: {"benefits", "perks", "what we offer", "compensation", "perks & benefits"},
	Contact:  {"contact", "contact information", "contact info", "personal information"},
}

type aliasKey struct {
	alias     string
	canonical string
	pattern   *regexp.Regexp
}

var (
	exactAliases = buildExact()
	looseAliases = buildLoose()
)

func buildExact() map[string]string {
	m := make(map[string]string)
	for canonical, aliases := range registry {
		m[canonical] = canonical
		for _, a := range aliases {
			m[a] = canonical
		}
	}
	return m
}

// buildLoose orders aliases longest first so "preferred qualifications" wins
// over "qualifications" and "volunteer experience" over "experience".
func buildLoose() []aliasKey {
	var keys []aliasKey
	for alias, canonical := range exactAliases {
		keys = append(keys, aliasKey{
			alias:     alias,
			canonical: canonical,
			pattern:   regexp.MustCompile(`(?:^|[^a-z])` + regexp.QuoteMeta(alias) + `(?:$|[^a-z])`),
		})
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i].alias) != len(keys[j].alias) {
			return len(keys[i].alias) > len(keys[j].alias)
		}
		return keys[i].alias < keys[j].alias
	})
	return keys
}

var (
	headerPunctRx = regexp.MustCompile(`[:：\s]+$`)
	headerSpaceRx = regexp.MustCompile(`\s+`)
)

// Key normalizes a header line for lookup: lower-cased, markdown hashes and
// trailing colons removed, curly apostrophes straightened.
func Key(line string) string {
	k := strings.TrimSpace(line)
	k = strings.TrimLeft(k, "#")
	k = strings.ReplaceAll(k, "’", "'")
	k = strings.ToLower(k)
	k = headerPunctRx.ReplaceAllString(k, "")
	k = headerSpaceRx.ReplaceAllString(k, " ")
	return strings.TrimSpace(k)
}

// ExactName returns the canonical name when key is a registered alias.
func ExactName(key string) (string, bool) {
	name, ok := exactAliases[key]
	return name, ok
}

// GuessName maps a header key to a canonical name: exact alias first, then
// the longest alias contained in the key as a whole word. Unrecognized keys
// are returned unchanged.
func GuessName(key string) string {
	if name, ok := exactAliases[key]; ok {
		return name
	}
	for _, ak := range looseAliases {
		if ak.pattern.MatchString(key) {
			return ak.canonical
		}
	}
	return key
}
