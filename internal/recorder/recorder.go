package recorder

import "AthSentinel/internal/model"

// DiscoveryRecord holds everything one ATH discovery produced for a token.
type DiscoveryRecord struct {
	Symbol        string               `json:"symbol"`
	PoolID        string               `json:"pool_id"`
	BaselinePrice float64              `json:"baseline_price"`
	Ath           model.AthResult      `json:"ath"`
	Gain          model.GainAssessment `json:"gain"`
	DiscoveredAt  int64                `json:"discovered_at"` // unix seconds
}

// Recorder persists discovery results for later analysis.
type Recorder interface {
	RecordDiscovery(rec *DiscoveryRecord) error
	Close() error
}
