package stub

import (
	"context"

	"currency-swap/internal/pricefeed"
)

// Source returns fixed in-memory feed entries for testing, or a fixed
// error to exercise the feed-unavailable path.
// Implements pricefeed.Source.
type Source struct {
	entries []pricefeed.RawEntry
	err     error
}

// NewSource creates a stub source serving the given entries.
func NewSource(entries []pricefeed.RawEntry) *Source {
	return &Source{entries: entries}
}

// NewFailingSource creates a stub source whose Fetch always fails.
func NewFailingSource(err error) *Source {
	return &Source{err: err}
}

// SetEntries replaces the served entries.
func (s *Source) SetEntries(entries []pricefeed.RawEntry) {
	s.entries = entries
	s.err = nil
}

// SetError makes every subsequent Fetch fail.
func (s *Source) SetError(err error) {
	s.err = err
}

// Fetch returns copies of the configured entries.
func (s *Source) Fetch(_ context.Context) ([]pricefeed.RawEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]pricefeed.RawEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

var _ pricefeed.Source = (*Source)(nil)
