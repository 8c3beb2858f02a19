package scoring

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/fuzzy"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Haystack is the résumé side of coverage matching: canonical skills plus
// every bullet, reduced to match keys.
type Haystack struct {
	skills []string
	keys   []string
}

// NewHaystack builds the haystack for profile.
func NewHaystack(profile *types.ResumeProfile) Haystack {
	if profile == nil {
		return Haystack{}
	}
	var h Haystack
	h.skills = append(h.skills, profile.Skills...)

	seen := make(map[string]bool)
	for _, item := range append(append([]string{}, profile.Skills...), profile.Bullets()...) {
		k := skills.MatchKey(item)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		h.keys = append(h.keys, k)
	}
	return h
}

// TermHit is the coverage outcome for one JD term.
type TermHit struct {
	Term        string
	Bucket      string
	Present     bool
	Occurrences int
}

// BucketCoverage is the coverage outcome for one bucket.
type BucketCoverage struct {
	Name    string
	Hits    []TermHit
	Present []string
	Missing []string
}

// Ratio is present / max(1, size), in [0, 1].
func (b BucketCoverage) Ratio() float64 {
	return float64(len(b.Present)) / float64(max(1, len(b.Hits)))
}

// Pct is the ratio as a rounded percentage.
func (b BucketCoverage) Pct() int {
	return int(math.Round(100 * b.Ratio()))
}

// Coverage checks each target against the haystack. A target is present
// when it matches a résumé skill at the canonical threshold or any haystack
// key at the fuzzy threshold.
func (s *Scorer) Coverage(bucket string, targets []string, h Haystack) BucketCoverage {
	out := BucketCoverage{Name: bucket, Hits: []TermHit{}, Present: []string{}, Missing: []string{}}
	for _, target := range targets {
		_, occurrences := fuzzy.Match(skills.MatchKey(target), h.keys, s.opts.FuzzyThreshold)
		present := occurrences > 0 || s.canon.FuzzyContainsCanonical(target, h.skills, s.opts.CanonicalThreshold)
		hit := TermHit{
			Term:        target,
			Bucket:      bucket,
			Present:     present,
			Occurrences: occurrences,
		}
		out.Hits = append(out.Hits, hit)
		if present {
			out.Present = append(out.Present, target)
		} else {
			out.Missing = append(out.Missing, target)
		}
	}
	return out
}
