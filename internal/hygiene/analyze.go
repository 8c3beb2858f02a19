package hygiene

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Flag codes.
const (
	FlagNoBullets          = "no_bullets_detected"
	FlagBulletsTooShort    = "bullets_too_short"
	FlagBulletsTooLong     = "bullets_too_long"
	FlagMissingQuantified  = "missing_quantified_impact"
	FlagPassiveVoice       = "excessive_passive_voice"
	FlagFirstPerson        = "first_person_pronouns"
	FlagWeakPhrases        = "weak_action_phrases"
	FlagMissingActionVerbs = "missing_action_verbs"
	FlagMissingContact     = "missing_contact_info"
)

const (
	minGoodWords      = 8
	maxGoodWords      = 30
	maxPassiveRatio   = 0.3
	maxWeakRatio      = 0.2
	maxNoVerbRatio    = 0.5
	noBulletsScore    = 0.2
	lengthScoreWeight = 0.5
	numberScoreWeight = 0.5
)

// Report is the hygiene result for one résumé.
type Report struct {
	Flags []string
	Stats types.HygieneStats
	// Score is in [0, 1].
	Score float64
}

// Analyze inspects every experience and project bullet of profile.
func Analyze(profile *types.ResumeProfile) Report {
	var bullets []string
	contact := types.Contact{}
	if profile != nil {
		bullets = nonEmpty(profile.Bullets())
		contact = profile.Contact
	}

	stats := types.HygieneStats{
		ContactComplete:    contact.HasAny(),
		ContactFieldsFound: contactFields(contact),
	}
	report := Report{Flags: []string{}, Score: noBulletsScore}

	if len(bullets) == 0 {
		report.Flags = append(report.Flags, FlagNoBullets)
	} else {
		n := float64(len(bullets))
		var words, good, numeric, passive, weak, noVerb int
		for _, b := range bullets {
			wc := WordCount(b)
			words += wc
			if wc >= minGoodWords && wc <= maxGoodWords {
				good++
			}
			if IsQuantified(b) {
				numeric++
			}
			if IsPassive(b) {
				passive++
			}
			if _, ok := WeakPhrase(b); ok {
				weak++
			}
			if !HasActionVerb(b) {
				noVerb++
			}
			if HasFirstPerson(b) {
				stats.FirstPerson = true
			}
		}

		avg := float64(words) / n
		passiveRatio := float64(passive) / n
		weakRatio := float64(weak) / n
		noVerbRatio := float64(noVerb) / n

		stats.Bullets = types.BulletStats{Count: len(bullets), AvgWords: round2(avg), WithNumbers: numeric}
		stats.NumericRatio = round2(float64(numeric) / n)
		stats.PassiveRatio = round2(passiveRatio)
		stats.WeakPhraseRatio = round2(weakRatio)
		stats.NoActionVerbRatio = round2(noVerbRatio)

		if avg < minGoodWords {
			report.Flags = append(report.Flags, FlagBulletsTooShort)
		}
		if avg > maxGoodWords {
			report.Flags = append(report.Flags, FlagBulletsTooLong)
		}
		if numeric < max(1, len(bullets)/2) {
			report.Flags = append(report.Flags, FlagMissingQuantified)
		}
		if passiveRatio > maxPassiveRatio {
			report.Flags = append(report.Flags, FlagPassiveVoice)
		}
		if stats.FirstPerson {
			report.Flags = append(report.Flags, FlagFirstPerson)
		}
		if weakRatio > maxWeakRatio {
			report.Flags = append(report.Flags, FlagWeakPhrases)
		}
		if noVerbRatio > maxNoVerbRatio {
			report.Flags = append(report.Flags, FlagMissingActionVerbs)
		}

		score := lengthScoreWeight*float64(good)/n + numberScoreWeight*float64(numeric)/n
		report.Score = math.Max(0, math.Min(1, score))
	}

	if !stats.ContactComplete {
		report.Flags = append(report.Flags, FlagMissingContact)
	}
	report.Stats = stats
	return report
}

func contactFields(c types.Contact) []string {
	fields := []string{}
	if c.Email != "" {
		fields = append(fields, "email")
	}
	if c.Phone != "" {
		fields = append(fields, "phone")
	}
	if len(c.Links) > 0 {
		fields = append(fields, "links")
	}
	return fields
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if WordCount(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
