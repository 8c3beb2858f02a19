// Package scoring compares a parsed résumé with a parsed job description and
// aggregates coverage, verb alignment, recency and hygiene into one score.
package scoring

import (
	"fmt"
	"math"
)

// Weights are the points each component contributes to a perfect score.
// They must sum to 100.
type Weights struct {
	Core      float64 `json:"core" validate:"gte=0,lte=100"`
	Preferred float64 `json:"preferred" validate:"gte=0,lte=100"`
	Verbs     float64 `json:"verbs" validate:"gte=0,lte=100"`
	Domain    float64 `json:"domain" validate:"gte=0,lte=100"`
	Recency   float64 `json:"recency" validate:"gte=0,lte=100"`
	Hygiene   float64 `json:"hygiene" validate:"gte=0,lte=100"`
}

// DefaultWeights returns core 40, preferred 15, verbs 20, domain 10,
// recency 10, hygiene 5.
func DefaultWeights() Weights {
	return Weights{Core: 40, Preferred: 15, Verbs: 20, Domain: 10, Recency: 10, Hygiene: 5}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Core + w.Preferred + w.Verbs + w.Domain + w.Recency + w.Hygiene
}

// Validate checks that each weight lies in [0,100] and that they sum to 100.
func (w Weights) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"core", w.Core}, {"preferred", w.Preferred}, {"verbs", w.Verbs},
		{"domain", w.Domain}, {"recency", w.Recency}, {"hygiene", w.Hygiene},
	} {
		if c.value < 0 || c.value > 100 {
			return fmt.Errorf("weight %s must be within [0,100], got %g", c.name, c.value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-100) > 1e-6 {
		return fmt.Errorf("weights must sum to 100, got %g", sum)
	}
	return nil
}

// Options tunes matching.
type Options struct {
	Weights            Weights
	FuzzyThreshold     float64
	CanonicalThreshold float64
	VerbThreshold      float64
	DomainBonusMax     float64
	Enhanced           bool
}

// DefaultOptions returns the standard thresholds with enhanced JD
// normalization on.
func DefaultOptions() Options {
	return Options{
		Weights:            DefaultWeights(),
		FuzzyThreshold:     85,
		CanonicalThreshold: 90,
		VerbThreshold:      80,
		DomainBonusMax:     15,
		Enhanced:           true,
	}
}

// Validate checks the weights and that every threshold lies in [0,100].
// Zero thresholds are rejected because they make every term match.
func (o Options) Validate() error {
	if err := o.Weights.Validate(); err != nil {
		return err
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"fuzzy threshold", o.FuzzyThreshold},
		{"canonical threshold", o.CanonicalThreshold},
		{"verb threshold", o.VerbThreshold},
	} {
		if c.value <= 0 || c.value > 100 {
			return fmt.Errorf("%s must be within (0,100], got %g", c.name, c.value)
		}
	}
	if o.DomainBonusMax < 0 || o.DomainBonusMax > 15 {
		return fmt.Errorf("domain bonus max must be within [0,15], got %g", o.DomainBonusMax)
	}
	return nil
}
