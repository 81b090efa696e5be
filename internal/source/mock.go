package source

import (
	"context"

	"AthSentinel/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
// Per-resolution bars and errors let tests fail one pass while the other
// succeeds.
type MockSource struct {
	CoarseBars []model.Bar
	FineBars   []model.Bar
	CoarseErr  error
	FineErr    error

	// Calls records the windows of every FetchBars invocation, in order.
	Calls []model.RangeWindow
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchBars(_ context.Context, _ string, w model.RangeWindow) ([]model.Bar, error) {
	m.Calls = append(m.Calls, w)
	if w.Resolution == model.Fine {
		if m.FineErr != nil {
			return nil, m.FineErr
		}
		return m.FineBars, nil
	}
	if m.CoarseErr != nil {
		return nil, m.CoarseErr
	}
	return m.CoarseBars, nil
}
