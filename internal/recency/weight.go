package recency

import (
	"math"
	"sort"
	"time"

	"github.com/jonathan/resume-matcher/internal/fuzzy"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Params tunes the decay curve.
type Params struct {
	DecayMonths        float64 `json:"decay_months" validate:"gt=0"`
	MinWeight          float64 `json:"min_weight" validate:"gte=0,lte=1"`
	NeutralWeight      float64 `json:"neutral_weight" validate:"gte=0,lte=1"`
	ProjectWeight      float64 `json:"project_weight" validate:"gte=0,lte=1"`
	MaxDurationBoost   float64 `json:"max_duration_boost" validate:"gte=0,lte=1"`
	FullDurationMonths float64 `json:"full_duration_months" validate:"gt=0"`
	MatchThreshold     float64 `json:"match_threshold" validate:"gte=0,lte=100"`
}

// DefaultParams returns the standard curve: weight e^(-m/18) floored at
// 0.15, up to 20% extra for roles held two years or more.
func DefaultParams() Params {
	return Params{
		DecayMonths:        18,
		MinWeight:          0.15,
		NeutralWeight:      0.5,
		ProjectWeight:      0.7,
		MaxDurationBoost:   0.2,
		FullDurationMonths: 24,
		MatchThreshold:     85,
	}
}

// Matcher reports whether term is evidenced by any haystack entry.
type Matcher func(term string, haystack []string) bool

// Weighter computes recency weights. It is safe for concurrent use.
type Weighter struct {
	params Params
	match  Matcher
}

// New returns a Weighter. A nil match uses a token-set comparison at
// params.MatchThreshold over case-folded text.
func New(params Params, match Matcher) *Weighter {
	if match == nil {
		match = fuzzyMatcher(params.MatchThreshold)
	}
	return &Weighter{params: params, match: match}
}

func fuzzyMatcher(threshold float64) Matcher {
	return func(term string, haystack []string) bool {
		keys := make([]string, 0, len(haystack))
		for _, h := range haystack {
			if k := skills.MatchKey(h); k != "" {
				keys = append(keys, k)
			}
		}
		_, ok := fuzzy.Contains(skills.MatchKey(term), keys, threshold)
		return ok
	}
}

// RoleWeight returns the recency weight of one role as of now. Ongoing roles
// count zero months since their end. Roles without a parseable end date get
// the neutral weight. When both ends parse, longer roles get a boost; the
// boosted weight never exceeds 1.
func (w *Weighter) RoleWeight(role types.ExperienceRole, now time.Time) float64 {
	end, ok := endDate(role.End, now)
	if !ok {
		return w.params.NeutralWeight
	}
	weight := clamp(math.Exp(-MonthsBetween(end, now)/w.params.DecayMonths), w.params.MinWeight, 1)

	if start, ok := ParseDate(role.Start); ok {
		duration := MonthsBetween(start, end)
		weight *= 1 + w.params.MaxDurationBoost*math.Min(1, duration/w.params.FullDurationMonths)
	}
	return math.Min(1, weight)
}

// Score is the mean, over terms, of the weight of the most recent role that
// evidences each term. A term seen only in project bullets gets the project
// weight; a term seen nowhere counts 0.
func (w *Weighter) Score(terms []string, roles []types.ExperienceRole, projects []types.Project, now time.Time) float64 {
	if len(terms) == 0 {
		return 0
	}

	ordered := w.byRecency(roles, now)
	total := 0.0
	for _, term := range terms {
		total += w.termWeight(term, ordered, projects, now)
	}
	return total / float64(len(terms))
}

func (w *Weighter) termWeight(term string, roles []types.ExperienceRole, projects []types.Project, now time.Time) float64 {
	for _, role := range roles {
		haystack := append([]string{role.Role, role.Company}, role.Bullets...)
		if w.match(term, haystack) {
			return w.RoleWeight(role, now)
		}
	}
	for _, p := range projects {
		haystack := append([]string{p.Name}, p.Bullets...)
		if w.match(term, haystack) {
			return w.params.ProjectWeight
		}
	}
	return 0
}

// byRecency orders roles most recent first: ongoing roles, then by end date,
// then roles with no parseable end in their original order.
func (w *Weighter) byRecency(roles []types.ExperienceRole, now time.Time) []types.ExperienceRole {
	type dated struct {
		role types.ExperienceRole
		end  time.Time
		ok   bool
	}
	list := make([]dated, len(roles))
	for i, r := range roles {
		end, ok := endDate(r.End, now)
		list[i] = dated{role: r, end: end, ok: ok}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].ok != list[j].ok {
			return list[i].ok
		}
		return list[i].end.After(list[j].end)
	})

	out := make([]types.ExperienceRole, len(list))
	for i, d := range list {
		out[i] = d.role
	}
	return out
}

func endDate(s string, now time.Time) (time.Time, bool) {
	if IsPresent(s) {
		return now, true
	}
	return ParseDate(s)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
