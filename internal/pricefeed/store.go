package pricefeed

import "sync"

// Store holds the current price table. The table itself is never
// mutated after ingestion; a successful refresh replaces it wholesale
// and a failed refresh leaves the previous one in place.
type Store struct {
	mu    sync.RWMutex
	table *Table
}

// NewStore creates a store holding an empty table.
func NewStore() *Store {
	return &Store{table: Ingest(nil)}
}

// Snapshot returns the current table. Callers treat it as read-only.
func (s *Store) Snapshot() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Replace installs a freshly ingested table.
func (s *Store) Replace(t *Table) {
	if t == nil {
		return
	}
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}
