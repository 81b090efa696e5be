package engine

import (
	"context"
	"log"
	"time"

	"github.com/samber/lo"

	"AthSentinel/internal/model"
	"AthSentinel/internal/source"
)

// PrecisionRefiner sharpens a coarse peak by querying a short fine-resolution
// window around the candidate's timestamp. It never produces a hard error:
// every failure degrades to "no refinement available".
type PrecisionRefiner struct {
	Source source.BarSource
	Buffer time.Duration // symmetric half-window around the anchor
}

// NewPrecisionRefiner creates a refiner with the given symmetric buffer.
func NewPrecisionRefiner(src source.BarSource, buffer time.Duration) *PrecisionRefiner {
	return &PrecisionRefiner{Source: src, Buffer: buffer}
}

// Refine issues one fine query centered on anchor and returns the refined
// candidate, or nil when no usable fine data came back.
func (r *PrecisionRefiner) Refine(ctx context.Context, seriesID string, anchor int64) *model.PeakCandidate {
	buf := int64(r.Buffer.Seconds())
	w, err := model.NewRangeWindow(anchor-buf, anchor+buf, model.Fine)
	if err != nil {
		log.Printf("[WARN] refine %s: %v, keeping coarse value", seriesID, err)
		return nil
	}

	bars, err := r.Source.FetchBars(ctx, seriesID, w)
	if err != nil {
		log.Printf("[WARN] refine %s: %v, keeping coarse value", seriesID, err)
		return nil
	}

	// Guard against malformed zero/negative entries.
	positive := lo.Filter(bars, func(b model.Bar, _ int) bool { return b.High > 0 })
	if len(positive) == 0 {
		return nil
	}

	best := lo.MaxBy(positive, func(a, b model.Bar) bool { return a.High > b.High })
	return &model.PeakCandidate{Value: best.High, Time: best.Time, Resolution: model.Fine}
}
