package recorder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"AthSentinel/internal/model"
)

func sampleRecord() *DiscoveryRecord {
	return &DiscoveryRecord{
		Symbol:        "WIF",
		PoolID:        "pool-1",
		BaselinePrice: 0.0001,
		Ath:           model.AthResult{Value: 0.00052, Precise: true},
		Gain:          model.GainAssessment{GainPercent: 420, Tier: model.TierGood},
		DiscoveredAt:  1_700_000_000,
	}
}

func TestFileRecorder_RoundTrip(t *testing.T) {
	fr, err := NewFileRecorder(t.TempDir())
	require.NoError(t, err)
	defer fr.Close()

	rec := sampleRecord()
	require.NoError(t, fr.RecordDiscovery(rec))

	got, err := fr.LoadDiscovery("WIF")
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestFileRecorder_OverwritesLatest(t *testing.T) {
	fr, err := NewFileRecorder(t.TempDir())
	require.NoError(t, err)

	first := sampleRecord()
	require.NoError(t, fr.RecordDiscovery(first))

	second := sampleRecord()
	second.Ath = model.AthResult{Value: 0.0006, Precise: false}
	require.NoError(t, fr.RecordDiscovery(second))

	got, err := fr.LoadDiscovery("WIF")
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestFileRecorder_MissingRecordIsNil(t *testing.T) {
	fr, err := NewFileRecorder(t.TempDir())
	require.NoError(t, err)

	got, err := fr.LoadDiscovery("UNKNOWN")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRecorder_RecordDiscovery(t *testing.T) {
	sr, err := NewSQLiteRecorder(t.TempDir() + "/test.db")
	require.NoError(t, err)
	defer sr.Close()

	require.NoError(t, sr.RecordDiscovery(sampleRecord()))

	var count int
	require.NoError(t, sr.db.QueryRow(`SELECT COUNT(*) FROM discoveries WHERE symbol = 'WIF'`).Scan(&count))
	require.Equal(t, 1, count)
}
