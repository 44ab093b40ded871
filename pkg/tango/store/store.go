package store

import (
	"context"

	"github.com/cognicore/tango/pkg/tango/vocab"
)

// Store is the main interface for persisting known words and the
// latest vocabulary extraction result.
type Store interface {
	Close() error

	// Known words
	KnownWords(ctx context.Context) (map[string]struct{}, error)
	AddKnownWords(ctx context.Context, words []string) error
	RemoveKnownWords(ctx context.Context, words []string) error
	ClearKnownWords(ctx context.Context) error

	// Vocabulary cache. SaveVocab replaces the whole cache; LoadVocab
	// returns entries in the order they were saved.
	SaveVocab(ctx context.Context, entries []vocab.Entry) error
	LoadVocab(ctx context.Context) ([]vocab.Entry, error)
}
