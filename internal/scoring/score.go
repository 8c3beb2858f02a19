package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/jonathan/resume-matcher/internal/hygiene"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/recency"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Short-circuit messages reported in Missing.
const (
	MsgEmptyResume = "Resume has no skills or bullet points to analyze."
	MsgEmptyJD     = "Job description has no requirements, skills or responsibilities to match against."
)

// Scorer turns a profile and a job description into an AnalysisResult. It
// holds no per-call state and is safe for concurrent use.
type Scorer struct {
	parser  *parsing.Parser
	canon   *skills.Canonicalizer
	recency *recency.Weighter
	opts    Options
}

// New returns a Scorer. A nil weighter uses recency.DefaultParams.
func New(parser *parsing.Parser, weighter *recency.Weighter, opts Options) (*Scorer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring options: %w", err)
	}
	if parser == nil {
		parser = parsing.NewParser(nil)
	}
	if weighter == nil {
		weighter = recency.New(recency.DefaultParams(), nil)
	}
	return &Scorer{parser: parser, canon: parser.Canonicalizer(), recency: weighter, opts: opts}, nil
}

// Options returns the scorer's options.
func (s *Scorer) Options() Options {
	return s.opts
}

// Breakdown carries the intermediate results behind a score.
type Breakdown struct {
	Buckets   Buckets
	Core      BucketCoverage
	Preferred BucketCoverage
	Domain    BucketCoverage
	Verbs     float64
	Recency   float64
	Hygiene   hygiene.Report
	Bonus     float64
	Raw       float64
}

// Score compares profile with jd as of now. Empty inputs short-circuit to a
// zero score with an explanation in Missing.
func (s *Scorer) Score(profile *types.ResumeProfile, jd *types.JobDescription, now time.Time) types.AnalysisResult {
	result, _ := s.Explain(profile, jd, now)
	return result
}

// Explain is Score plus the breakdown. The breakdown is nil when the
// inputs short-circuit.
func (s *Scorer) Explain(profile *types.ResumeProfile, jd *types.JobDescription, now time.Time) (types.AnalysisResult, *Breakdown) {
	if profile.IsEmpty() {
		return shortCircuit(MsgEmptyResume), nil
	}
	if jd.IsEmpty() {
		return shortCircuit(MsgEmptyJD), nil
	}

	terms := s.parser.ExtractTerms(jd, s.opts.Enhanced)
	b := &Breakdown{Buckets: BuildBuckets(jd, terms)}
	hay := NewHaystack(profile)

	b.Core = s.Coverage(BucketCore, b.Buckets.Core, hay)
	b.Preferred = s.Coverage(BucketPreferred, b.Buckets.Preferred, hay)
	b.Domain = s.Coverage(BucketDomain, b.Buckets.Domain, hay)
	b.Verbs = VerbAlignment(JDVerbs(b.Buckets.VerbSource), profile.Bullets(), s.opts.VerbThreshold)
	b.Recency = s.recency.Score(b.Buckets.Core, profile.Experience, profile.Projects, now)
	b.Hygiene = hygiene.Analyze(profile)
	b.Bonus = DomainBonus(jd.Title, profile.Experience, s.opts.DomainBonusMax)

	w := s.opts.Weights
	b.Raw = w.Core*b.Core.Ratio() +
		w.Preferred*b.Preferred.Ratio() +
		w.Verbs*b.Verbs +
		w.Domain*b.Domain.Ratio() +
		w.Recency*b.Recency +
		w.Hygiene*b.Hygiene.Score +
		b.Bonus

	result := types.AnalysisResult{
		Score:   int(math.Round(math.Max(0, math.Min(100, b.Raw)))),
		Matched: []string(types.DedupeFold(append(append([]string{}, b.Core.Present...), b.Preferred.Present...))),
		Missing: []string(types.DedupeFold(append(append([]string{}, b.Core.Missing...), b.Preferred.Missing...))),
		Sections: types.SectionScores{
			SkillsCoveragePct:    b.Core.Pct(),
			PreferredCoveragePct: b.Preferred.Pct(),
			DomainCoveragePct:    b.Domain.Pct(),
			RecencyScorePct:      pct(b.Recency),
			HygieneScorePct:      pct(b.Hygiene.Score),
			VerbAlignmentPct:     pct(b.Verbs),
		},
		NormalizedJD: types.NormalizedJD{
			Skills:           append(append([]string{}, terms.Required...), terms.Preferred...),
			Responsibilities: append([]string{}, terms.Responsibilities...),
		},
		HygieneFlags: b.Hygiene.Flags,
		Heatmap:      heatmap(b.Core, b.Preferred, b.Domain),
		Suggestions:  suggest(b.Core.Missing, b.Preferred.Missing, b.Verbs),
		ATS:          b.Hygiene.Stats,
	}
	result.Normalize()
	return result, b
}

func shortCircuit(msg string) types.AnalysisResult {
	r := types.AnalysisResult{Missing: []string{msg}}
	r.Normalize()
	return r
}

func heatmap(buckets ...BucketCoverage) []types.HeatmapEntry {
	out := []types.HeatmapEntry{}
	for _, b := range buckets {
		for _, h := range b.Hits {
			out = append(out, types.HeatmapEntry{
				Term:        h.Term,
				Bucket:      h.Bucket,
				InResume:    h.Present,
				Occurrences: h.Occurrences,
			})
		}
	}
	return out
}

func pct(ratio float64) int {
	return int(math.Round(100 * math.Max(0, math.Min(1, ratio))))
}
