package model

// PeakCandidate is the best peak found at one resolution level. Candidates
// are replaced, never merged: at most one survives per resolution.
type PeakCandidate struct {
	Value      float64
	Time       int64 // unix seconds
	Resolution Resolution
}

// AthResult is the final all-time-high of a series. Precise is true only when
// a fine-resolution candidate contributed the value; a false flag means the
// refinement pass degraded and the coarse value was kept.
type AthResult struct {
	Value   float64 `json:"value"`
	Precise bool    `json:"precise"`
}

// Discovery bundles everything one ATH discovery produces.
type Discovery struct {
	Ath  AthResult      `json:"ath"`
	Gain GainAssessment `json:"gain"`
}
