// Package pricefeed ingests the upstream price feed into an immutable
// per-fetch price table.
package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrFeedUnavailable is returned when the upstream feed cannot be
// fetched. Callers keep the previous table and carry on; the
// condition is recoverable and never fatal to the widget.
var ErrFeedUnavailable = errors.New("price feed unavailable")

// RawEntry is one observation as delivered by the feed. Date stays a
// string on the wire; parsing happens during ingestion so that a
// malformed date degrades a single entry, not the whole fetch.
type RawEntry struct {
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
}

// Source provides raw price observations from an external feed.
type Source interface {
	// Fetch returns all observations currently published by the feed.
	// Entries may repeat per currency; Ingest keeps the latest.
	Fetch(ctx context.Context) ([]RawEntry, error)
}

// HTTPSourceConfig configures HTTPSource behavior.
type HTTPSourceConfig struct {
	// Timeout bounds a single fetch request.
	Timeout time.Duration
}

// DefaultHTTPSourceConfig returns the default HTTP source configuration.
func DefaultHTTPSourceConfig() HTTPSourceConfig {
	return HTTPSourceConfig{Timeout: 10 * time.Second}
}

// HTTPSource fetches the feed as a JSON array over HTTP.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP feed source for the given URL.
func NewHTTPSource(url string, config *HTTPSourceConfig) *HTTPSource {
	cfg := DefaultHTTPSourceConfig()
	if config != nil {
		cfg = *config
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch performs a single GET of the feed. Any transport, status or
// decode failure is reported as ErrFeedUnavailable.
func (s *HTTPSource) Fetch(ctx context.Context) ([]RawEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFeedUnavailable, err)
	}

	var entries []RawEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrFeedUnavailable, err)
	}
	return entries, nil
}

var _ Source = (*HTTPSource)(nil)
