package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/tango/pkg/tango/vocab"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot CLI runs.
type Store struct {
	mu    sync.RWMutex
	known map[string]struct{}
	cache []vocab.Entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{known: make(map[string]struct{})}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// KnownWords returns a copy of the known-words set.
func (s *Store) KnownWords(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.known))
	for w := range s.known {
		out[w] = struct{}{}
	}
	return out, nil
}

// AddKnownWords inserts words into the known set.
func (s *Store) AddKnownWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range words {
		if w == "" {
			continue
		}
		s.known[w] = struct{}{}
	}
	return nil
}

// RemoveKnownWords deletes words from the known set.
func (s *Store) RemoveKnownWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range words {
		delete(s.known, w)
	}
	return nil
}

// ClearKnownWords empties the known set.
func (s *Store) ClearKnownWords(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.known = make(map[string]struct{})
	return nil
}

// SaveVocab replaces the vocabulary cache.
func (s *Store) SaveVocab(ctx context.Context, entries []vocab.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make([]vocab.Entry, len(entries))
	copy(s.cache, entries)
	return nil
}

// LoadVocab returns the cached entries in saved order.
func (s *Store) LoadVocab(ctx context.Context) ([]vocab.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cache == nil {
		return nil, nil
	}
	out := make([]vocab.Entry, len(s.cache))
	copy(out, s.cache)
	return out, nil
}
