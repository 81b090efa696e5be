package model

// GainTier is a discrete quality grade for a token's gain off its baseline.
type GainTier string

const (
	TierPoor      GainTier = "POOR"
	TierFair      GainTier = "FAIR"
	TierGood      GainTier = "GOOD"
	TierGreat     GainTier = "GREAT"
	TierExcellent GainTier = "EXCELLENT"
)

// GainAssessment is the percentage gain of a peak over a baseline price and
// its tier. Derived and stateless; recomputed on demand, never cached.
type GainAssessment struct {
	GainPercent float64  `json:"gain_percent"`
	Tier        GainTier `json:"tier"`
}
