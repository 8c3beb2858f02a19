package scoring

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Bucket names as reported in the heatmap.
const (
	BucketCore      = "core"
	BucketPreferred = "preferred"
	BucketDomain    = "domain"
)

// Buckets are the JD terms a résumé is checked against.
type Buckets struct {
	Core      []string
	Preferred []string
	// Domain holds the title and responsibility lines that are not already
	// core or preferred terms.
	Domain []string
	// VerbSource is the text JD action verbs are read from.
	VerbSource []string
}

// BuildBuckets derives the coverage buckets from a job description and its
// extracted terms.
func BuildBuckets(jd *types.JobDescription, terms parsing.JDTerms) Buckets {
	taken := make(map[string]bool, len(terms.Required)+len(terms.Preferred))
	for _, t := range terms.Required {
		taken[strings.ToLower(t)] = true
	}
	for _, t := range terms.Preferred {
		taken[strings.ToLower(t)] = true
	}

	var domain []string
	if jd != nil {
		domain = append(domain, titleTerms(jd.Title)...)
	}
	domain = append(domain, terms.Responsibilities...)
	domain = excludeTaken(domain, taken)

	return Buckets{
		Core:       append([]string{}, terms.Required...),
		Preferred:  append([]string{}, terms.Preferred...),
		Domain:     []string(types.DedupeFold(domain)),
		VerbSource: append([]string{}, terms.Responsibilities...),
	}
}

// titleTerms splits a title on commas and semicolons.
func titleTerms(title string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(title, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func excludeTaken(items []string, taken map[string]bool) []string {
	var out []string
	for _, it := range items {
		if !taken[strings.ToLower(strings.TrimSpace(it))] {
			out = append(out, it)
		}
	}
	return out
}
