package gain

import (
	"errors"

	"AthSentinel/internal/model"
)

// ErrInvalidBaseline means the caller supplied a non-positive baseline price,
// which makes a percentage gain meaningless.
var ErrInvalidBaseline = errors.New("baseline price must be positive")

// tierRule maps a strict lower bound on gain percent to a tier.
type tierRule struct {
	Above float64 // strict >; a gain exactly at the bound falls to the next rule
	Tier  model.GainTier
}

// Classifier grades a peak's percentage gain over a baseline. Pure and
// stateless; safe for concurrent use.
type Classifier struct {
	tiers []tierRule
}

// NewClassifier builds a classifier from the four tier thresholds, listed
// highest first. Gains at or below the fair threshold grade as Poor.
func NewClassifier(excellent, great, good, fair float64) *Classifier {
	return &Classifier{
		tiers: []tierRule{
			{excellent, model.TierExcellent},
			{great, model.TierGreat},
			{good, model.TierGood},
			{fair, model.TierFair},
		},
	}
}

// Classify computes the percentage gain of peak over baseline and maps it to
// a tier, first match wins top-down.
func (c *Classifier) Classify(peak, baseline float64) (model.GainAssessment, error) {
	if baseline <= 0 {
		return model.GainAssessment{}, ErrInvalidBaseline
	}
	percent := (peak - baseline) / baseline * 100

	tier := model.TierPoor
	for _, r := range c.tiers {
		if percent > r.Above {
			tier = r.Tier
			break
		}
	}
	return model.GainAssessment{GainPercent: percent, Tier: tier}, nil
}
