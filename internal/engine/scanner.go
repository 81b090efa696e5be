package engine

import (
	"context"
	"errors"
	"time"

	"AthSentinel/internal/model"
	"AthSentinel/internal/source"
)

// ErrNoData means the coarse query succeeded but the source had no bars at
// all for the series. Fatal for a discovery: with no coarse pass there is no
// history to reason about.
var ErrNoData = errors.New("no historical bars for series")

// CoarseScanner locates the candidate peak across a series' full supported
// history in a single bounded query at coarse resolution.
type CoarseScanner struct {
	Source   source.BarSource
	Lookback time.Duration // full history span covered by the one coarse call
	Now      func() time.Time
}

// NewCoarseScanner creates a scanner over the given lookback span.
func NewCoarseScanner(src source.BarSource, lookback time.Duration) *CoarseScanner {
	return &CoarseScanner{Source: src, Lookback: lookback, Now: time.Now}
}

// Scan issues one coarse query ending now and returns the peak candidate.
// Transport errors propagate verbatim; an empty result is ErrNoData.
func (s *CoarseScanner) Scan(ctx context.Context, seriesID string) (model.PeakCandidate, error) {
	now := s.Now().Unix()
	w, err := model.NewRangeWindow(now-int64(s.Lookback.Seconds()), now, model.Coarse)
	if err != nil {
		return model.PeakCandidate{}, err
	}

	bars, err := s.Source.FetchBars(ctx, seriesID, w)
	if err != nil {
		return model.PeakCandidate{}, err
	}
	if len(bars) == 0 {
		return model.PeakCandidate{}, ErrNoData
	}

	// Strict > keeps the first occurrence on ties; bars arrive in ascending
	// time order, so the earliest tied bar wins deterministically.
	best := bars[0]
	for _, b := range bars[1:] {
		if b.High > best.High {
			best = b
		}
	}
	return model.PeakCandidate{Value: best.High, Time: best.Time, Resolution: model.Coarse}, nil
}
