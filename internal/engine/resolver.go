package engine

import (
	"context"

	"AthSentinel/internal/gain"
	"AthSentinel/internal/model"
)

// PeakResolver orchestrates the two-pass discovery: a coarse scan over the
// full history followed by a fine refinement around the coarse peak. The
// coarse pass trades precision for coverage, the fine pass coverage for
// precision; together they respect the source's per-call point ceiling while
// bounding the error of the located peak to one fine sampling interval.
//
// Stateless across invocations; safe to reuse concurrently for different
// series. Each stage runs exactly once per call, with no retries.
type PeakResolver struct {
	Scanner    *CoarseScanner
	Refiner    *PrecisionRefiner
	Classifier *gain.Classifier
}

// NewPeakResolver wires the two passes and the gain classifier together.
func NewPeakResolver(scanner *CoarseScanner, refiner *PrecisionRefiner, classifier *gain.Classifier) *PeakResolver {
	return &PeakResolver{Scanner: scanner, Refiner: refiner, Classifier: classifier}
}

// Discover finds the series' all-time high and classifies its gain over a
// baseline price. Coarse-stage failures (including ErrNoData) are fatal and
// returned verbatim; fine-stage failures only clear the Precise flag.
func (r *PeakResolver) Discover(ctx context.Context, seriesID string, baseline float64) (model.Discovery, error) {
	coarse, err := r.Scanner.Scan(ctx, seriesID)
	if err != nil {
		return model.Discovery{}, err
	}

	ath := model.AthResult{Value: coarse.Value, Precise: false}
	if refined := r.Refiner.Refine(ctx, seriesID, coarse.Time); refined != nil {
		ath = model.AthResult{Value: refined.Value, Precise: true}
	}

	assessment, err := r.Classifier.Classify(ath.Value, baseline)
	if err != nil {
		return model.Discovery{}, err
	}
	return model.Discovery{Ath: ath, Gain: assessment}, nil
}
