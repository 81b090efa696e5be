package source

import (
	"context"
	"fmt"

	"AthSentinel/internal/model"
)

// BarSource defines the interface for querying bounded slices of a token's
// price history. Implementations issue exactly one remote call per FetchBars
// and never retry; retry policy belongs to the caller.
type BarSource interface {
	// FetchBars returns the bars inside the window in ascending time order.
	// An empty slice with a nil error means the source had no data there,
	// which is a distinct outcome from a failed query.
	FetchBars(ctx context.Context, seriesID string, w model.RangeWindow) ([]model.Bar, error)
	Name() string
}

// QueryErrorKind classifies a transport-level query failure.
type QueryErrorKind int

const (
	// KindTimeout covers network timeouts and exceeded deadlines.
	KindTimeout QueryErrorKind = iota
	// KindRejected covers non-2xx statuses and error envelopes returned
	// inside an otherwise successful response.
	KindRejected
	// KindMalformed covers undecodable payloads and inconsistent data,
	// such as parallel arrays of differing lengths.
	KindMalformed
)

func (k QueryErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// QueryError is a typed transport failure from a BarSource.
type QueryError struct {
	Kind QueryErrorKind
	Op   string // short description of the failed operation
	Err  error  // underlying cause, may be nil
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("query %s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("query %s: %s", e.Kind, e.Op)
}

func (e *QueryError) Unwrap() error { return e.Err }
