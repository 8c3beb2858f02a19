package types

import "strings"

// JobDescription is the structured form of a job posting.
type JobDescription struct {
	Title            string     `json:"title"`
	Company          string     `json:"company,omitempty"`
	Responsibilities StringList `json:"responsibilities"`
	Required         StringList `json:"required"`
	Preferred        StringList `json:"preferred"`
	Skills           StringList `json:"skills"`
}

// Merge folds Skills into Required when absent and de-duplicates Required
// case-insensitively, keeping first-seen order.
func (j *JobDescription) Merge() {
	combined := make([]string, 0, len(j.Required)+len(j.Skills))
	combined = append(combined, j.Required...)
	combined = append(combined, j.Skills...)
	j.Required = DedupeFold(combined)
	j.Preferred = DedupeFold(j.Preferred)
	j.Skills = DedupeFold(j.Skills)
	j.Responsibilities = DedupeFold(j.Responsibilities)
}

// IsEmpty reports whether the posting has no requirement content. A title on
// its own is metadata and does not count.
func (j *JobDescription) IsEmpty() bool {
	if j == nil {
		return true
	}
	return len(nonBlank(j.Required)) == 0 &&
		len(nonBlank(j.Preferred)) == 0 &&
		len(nonBlank(j.Skills)) == 0 &&
		len(nonBlank(j.Responsibilities)) == 0
}

// EnsureSlices replaces nil slices with empty ones.
func (j *JobDescription) EnsureSlices() {
	if j.Responsibilities == nil {
		j.Responsibilities = StringList{}
	}
	if j.Required == nil {
		j.Required = StringList{}
	}
	if j.Preferred == nil {
		j.Preferred = StringList{}
	}
	if j.Skills == nil {
		j.Skills = StringList{}
	}
}

// DedupeFold removes blank entries and case-insensitive duplicates, keeping
// the first spelling seen.
func DedupeFold(items []string) StringList {
	seen := make(map[string]bool, len(items))
	out := make(StringList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
