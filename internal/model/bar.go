package model

import "fmt"

// Resolution selects the sampling granularity of a chart query.
type Resolution int

const (
	// Coarse is the widest granularity, used to cover the full history in one call.
	Coarse Resolution = iota
	// Fine is the narrowest granularity, used only inside a short refinement window.
	Fine
)

func (r Resolution) String() string {
	switch r {
	case Coarse:
		return "coarse"
	case Fine:
		return "fine"
	default:
		return "unknown"
	}
}

// Bar is a single time-stamped high-value sample from a price history.
type Bar struct {
	Time int64   // unix seconds
	High float64 // >= 0
}

// RangeWindow is a half-open time interval [From, To) at a given resolution.
// Window sizing against the source's point ceiling is the caller's job;
// only the interval ordering is validated here.
type RangeWindow struct {
	From       int64 // unix seconds, inclusive
	To         int64 // unix seconds, exclusive
	Resolution Resolution
}

// NewRangeWindow builds a RangeWindow, rejecting empty or inverted intervals.
func NewRangeWindow(from, to int64, res Resolution) (RangeWindow, error) {
	if from >= to {
		return RangeWindow{}, fmt.Errorf("range window: from (%d) must be before to (%d)", from, to)
	}
	return RangeWindow{From: from, To: to, Resolution: res}, nil
}
