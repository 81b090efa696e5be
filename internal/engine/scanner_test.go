package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"AthSentinel/internal/model"
	"AthSentinel/internal/source"
)

func fixedNow() time.Time {
	return time.Unix(1_700_000_000, 0)
}

func TestScan_FindsMaximumHigh(t *testing.T) {
	src := &source.MockSource{
		CoarseBars: []model.Bar{
			{Time: 1, High: 0.0001},
			{Time: 2, High: 0.0005},
			{Time: 3, High: 0.0002},
		},
	}
	s := NewCoarseScanner(src, 365*24*time.Hour)
	s.Now = fixedNow

	cand, err := s.Scan(context.Background(), "pool-1")
	require.NoError(t, err)
	require.Equal(t, 0.0005, cand.Value)
	require.Equal(t, int64(2), cand.Time)
	require.Equal(t, model.Coarse, cand.Resolution)
}

func TestScan_FirstOccurrenceWinsOnTies(t *testing.T) {
	// A naive >= scan would pick the last tie; strict > must keep the first.
	src := &source.MockSource{
		CoarseBars: []model.Bar{
			{Time: 10, High: 0.0003},
			{Time: 20, High: 0.0007},
			{Time: 30, High: 0.0007},
			{Time: 40, High: 0.0007},
			{Time: 50, High: 0.0001},
		},
	}
	s := NewCoarseScanner(src, 30*24*time.Hour)
	s.Now = fixedNow

	cand, err := s.Scan(context.Background(), "pool-1")
	require.NoError(t, err)
	require.Equal(t, int64(20), cand.Time)
}

func TestScan_EmptySequenceIsNoData(t *testing.T) {
	src := &source.MockSource{CoarseBars: []model.Bar{}}
	s := NewCoarseScanner(src, 24*time.Hour)
	s.Now = fixedNow

	_, err := s.Scan(context.Background(), "pool-1")
	require.ErrorIs(t, err, ErrNoData)
}

func TestScan_PropagatesQueryErrorVerbatim(t *testing.T) {
	qerr := &source.QueryError{Kind: source.KindTimeout, Op: "fetch bars"}
	src := &source.MockSource{CoarseErr: qerr}
	s := NewCoarseScanner(src, 24*time.Hour)
	s.Now = fixedNow

	_, err := s.Scan(context.Background(), "pool-1")
	var got *source.QueryError
	require.ErrorAs(t, err, &got)
	require.Equal(t, qerr, got)
}

func TestScan_WindowSpansLookbackEndingNow(t *testing.T) {
	src := &source.MockSource{CoarseBars: []model.Bar{{Time: 1, High: 1}}}
	s := NewCoarseScanner(src, 365*24*time.Hour)
	s.Now = fixedNow

	_, err := s.Scan(context.Background(), "pool-1")
	require.NoError(t, err)
	require.Len(t, src.Calls, 1)

	w := src.Calls[0]
	now := fixedNow().Unix()
	require.Equal(t, now, w.To)
	require.Equal(t, now-365*24*3600, w.From)
	require.Equal(t, model.Coarse, w.Resolution)
}

func TestScan_NegativeBarsStillScanned(t *testing.T) {
	// The coarse pass does not filter values; it only locates the maximum.
	src := &source.MockSource{
		CoarseBars: []model.Bar{
			{Time: 1, High: -1},
			{Time: 2, High: 0},
		},
	}
	s := NewCoarseScanner(src, 24*time.Hour)
	s.Now = fixedNow

	cand, err := s.Scan(context.Background(), "pool-1")
	require.NoError(t, err)
	require.Equal(t, float64(0), cand.Value)
	require.False(t, errors.Is(err, ErrNoData))
}
