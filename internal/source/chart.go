package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"AthSentinel/internal/model"
)

// ChartSource implements BarSource against a DEX chart REST API.
type ChartSource struct {
	BaseURL   string
	APIKey    string
	CoarseTag string // API resolution tag for model.Coarse, e.g. "1d"
	FineTag   string // API resolution tag for model.Fine, e.g. "1m"
	Client    *http.Client
}

// NewChartSource creates a chart client with optional proxy support.
func NewChartSource(baseURL, apiKey, coarseTag, fineTag string, timeout time.Duration, proxyURL string) *ChartSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ChartSource{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		CoarseTag: coarseTag,
		FineTag:   fineTag,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *ChartSource) Name() string { return "chart" }

func (s *ChartSource) resolutionTag(r model.Resolution) string {
	if r == model.Fine {
		return s.FineTag
	}
	return s.CoarseTag
}

// chartResponse is the expected JSON shape: parallel timestamp/high arrays,
// with an optional error envelope even on HTTP 200.
type chartResponse struct {
	Data struct {
		Timestamps []int64   `json:"timestamps"`
		Highs      []float64 `json:"highs"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FetchBars issues a single bounded query. Window sizing against the point
// ceiling is the caller's responsibility; only transport correctness is
// checked here.
func (s *ChartSource) FetchBars(ctx context.Context, seriesID string, w model.RangeWindow) ([]model.Bar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/chart/%s?res=%s&from=%d&to=%d",
		s.BaseURL, url.PathEscape(seriesID), s.resolutionTag(w.Resolution), w.From, w.To)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, &QueryError{Kind: KindRejected, Op: "build request", Err: err}
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &QueryError{Kind: KindTimeout, Op: "fetch bars", Err: err}
		}
		return nil, &QueryError{Kind: KindRejected, Op: "fetch bars", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &QueryError{Kind: KindTimeout, Op: "read body", Err: err}
		}
		return nil, &QueryError{Kind: KindMalformed, Op: "read body", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{
			Kind: KindRejected,
			Op:   fmt.Sprintf("status %d, body: %s", resp.StatusCode, truncate(body, 200)),
		}
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &QueryError{Kind: KindMalformed, Op: "decode response", Err: err}
	}
	if chart.Error != nil {
		return nil, &QueryError{
			Kind: KindRejected,
			Op:   fmt.Sprintf("api error %s: %s", chart.Error.Code, chart.Error.Message),
		}
	}
	if len(chart.Data.Timestamps) != len(chart.Data.Highs) {
		return nil, &QueryError{
			Kind: KindMalformed,
			Op:   fmt.Sprintf("parallel arrays mismatch: %d timestamps vs %d highs", len(chart.Data.Timestamps), len(chart.Data.Highs)),
		}
	}

	bars := make([]model.Bar, 0, len(chart.Data.Timestamps))
	for i, ts := range chart.Data.Timestamps {
		bars = append(bars, model.Bar{Time: ts, High: chart.Data.Highs[i]})
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })
	return bars, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
