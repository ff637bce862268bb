// Package corpus holds the in-memory document store. The store is
// read-mostly: queries read an immutable snapshot while Replace swaps in a
// fully built one, so readers in flight never observe a partial refresh.
package corpus

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/document"
)

// Store is a copy-on-write snapshot of ingested documents keyed by ID.
type Store struct {
	mu   sync.RWMutex
	byID map[string]document.Document
	ids  []string // sorted, for deterministic iteration
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{byID: make(map[string]document.Document)}
}

// Replace swaps the full document set atomically. Duplicate IDs are an
// error: the ID is the corpus-wide identity of a record.
func (s *Store) Replace(docs []document.Document) error {
	byID := make(map[string]document.Document, len(docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if _, dup := byID[d.ID()]; dup {
			return fmt.Errorf("duplicate document ID %q", d.ID())
		}
		byID[d.ID()] = d
		ids = append(ids, d.ID())
	}
	sort.Strings(ids)

	s.mu.Lock()
	s.byID = byID
	s.ids = ids
	s.mu.Unlock()
	return nil
}

// Get returns the document with the given ID.
func (s *Store) Get(id string) (document.Document, error) {
	s.mu.RLock()
	d, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return document.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// All returns the current snapshot in ID order.
func (s *Store) All() []document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]document.Document, 0, len(s.ids))
	for _, id := range s.ids {
		docs = append(docs, s.byID[id])
	}
	return docs
}

// Len returns the number of documents in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
