package gain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"AthSentinel/internal/model"
)

func TestClassify_TierBoundaries(t *testing.T) {
	c := NewClassifier(1000, 500, 100, 50)

	// Baseline 1 makes gainPercent = (peak-1)*100, so peak 11 → exactly 1000%.
	tests := []struct {
		peak    float64
		percent float64
		tier    model.GainTier
	}{
		{11.5, 1050, model.TierExcellent},
		{11.0, 1000, model.TierGreat}, // strict >, so exactly 1000 is not Excellent
		{6.5, 550, model.TierGreat},
		{6.0, 500, model.TierGood},
		{2.5, 150, model.TierGood},
		{2.0, 100, model.TierFair},
		{1.6, 60, model.TierFair},
		{1.5, 50, model.TierPoor}, // exactly 50 is Poor
		{1.0, 0, model.TierPoor},
		{0.5, -50, model.TierPoor},
	}
	for _, tt := range tests {
		got, err := c.Classify(tt.peak, 1.0)
		require.NoError(t, err)
		require.InDelta(t, tt.percent, got.GainPercent, 1e-9, "peak %v", tt.peak)
		require.Equal(t, tt.tier, got.Tier, "peak %v (%.1f%%)", tt.peak, got.GainPercent)
	}
}

func TestClassify_SmallDexPrices(t *testing.T) {
	c := NewClassifier(1000, 500, 100, 50)

	got, err := c.Classify(0.0011, 0.0001)
	require.NoError(t, err)
	require.InDelta(t, 1000.0, got.GainPercent, 1e-9)
	require.Equal(t, model.TierGreat, got.Tier)
}

func TestClassify_InvalidBaseline(t *testing.T) {
	c := NewClassifier(1000, 500, 100, 50)

	_, err := c.Classify(0.0001, 0)
	require.ErrorIs(t, err, ErrInvalidBaseline)

	_, err = c.Classify(0.0001, -1)
	require.ErrorIs(t, err, ErrInvalidBaseline)
}

func TestClassify_CustomThresholds(t *testing.T) {
	c := NewClassifier(400, 300, 200, 100)

	got, err := c.Classify(4.5, 1.0) // 350%
	require.NoError(t, err)
	require.Equal(t, model.TierGreat, got.Tier)
}
