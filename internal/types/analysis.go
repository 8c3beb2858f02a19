package types

// SectionScores holds the per-component percentages of an analysis.
type SectionScores struct {
	SkillsCoveragePct    int `json:"skillsCoveragePct"`
	PreferredCoveragePct int `json:"preferredCoveragePct"`
	DomainCoveragePct    int `json:"domainCoveragePct"`
	RecencyScorePct      int `json:"recencyScorePct"`
	HygieneScorePct      int `json:"hygieneScorePct"`
	VerbAlignmentPct     int `json:"verbAlignmentPct"`
}

// NormalizedJD is the cleaned view of a job posting used for scoring.
type NormalizedJD struct {
	Skills           []string `json:"skills"`
	Responsibilities []string `json:"responsibilities"`
}

// HeatmapEntry records whether one JD term was found in the résumé.
type HeatmapEntry struct {
	Term        string `json:"term"`
	Bucket      string `json:"bucket"`
	InResume    bool   `json:"in_resume"`
	Occurrences int    `json:"occurrences"`
}

// Suggestions groups improvement hints by area.
type Suggestions struct {
	Skills     []string `json:"skills"`
	NiceToHave []string `json:"niceToHave"`
	Style      []string `json:"style"`
}

// BulletStats summarizes the résumé bullets.
type BulletStats struct {
	Count       int     `json:"count"`
	AvgWords    float64 `json:"avg_words"`
	WithNumbers int     `json:"with_numbers"`
}

// HygieneStats is the raw output of the hygiene analyzer.
type HygieneStats struct {
	Bullets            BulletStats `json:"bullets"`
	NumericRatio       float64     `json:"numeric_ratio"`
	PassiveRatio       float64     `json:"passive_ratio"`
	FirstPerson        bool        `json:"first_person"`
	WeakPhraseRatio    float64     `json:"weak_phrase_ratio"`
	NoActionVerbRatio  float64     `json:"no_action_verb_ratio"`
	ContactComplete    bool        `json:"contact_complete"`
	ContactFieldsFound []string    `json:"contact_fields_found"`
}

// AnalysisResult is the output of scoring a résumé against a job posting.
// Every slice is non-nil after Normalize.
type AnalysisResult struct {
	AnalysisID   string         `json:"analysis_id,omitempty"`
	Score        int            `json:"score"`
	Matched      []string       `json:"matched"`
	Missing      []string       `json:"missing"`
	Sections     SectionScores  `json:"sections"`
	NormalizedJD NormalizedJD   `json:"normalizedJD"`
	HygieneFlags []string       `json:"hygiene_flags"`
	Heatmap      []HeatmapEntry `json:"heatmap"`
	Suggestions  Suggestions    `json:"suggestions"`
	ATS          HygieneStats   `json:"ats"`
}

// Normalize replaces nil slices with empty ones so the result never
// serializes a null array.
func (r *AnalysisResult) Normalize() {
	r.Matched = orEmpty(r.Matched)
	r.Missing = orEmpty(r.Missing)
	r.HygieneFlags = orEmpty(r.HygieneFlags)
	r.NormalizedJD.Skills = orEmpty(r.NormalizedJD.Skills)
	r.NormalizedJD.Responsibilities = orEmpty(r.NormalizedJD.Responsibilities)
	r.Suggestions.Skills = orEmpty(r.Suggestions.Skills)
	r.Suggestions.NiceToHave = orEmpty(r.Suggestions.NiceToHave)
	r.Suggestions.Style = orEmpty(r.Suggestions.Style)
	r.ATS.ContactFieldsFound = orEmpty(r.ATS.ContactFieldsFound)
	if r.Heatmap == nil {
		r.Heatmap = []HeatmapEntry{}
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
