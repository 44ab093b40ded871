// Package tango extracts learnable Japanese vocabulary from EPUB books
// and manages the reader's known-words set and Anki deck exports.
package tango

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/cognicore/tango/pkg/tango/ankitxt"
	"github.com/cognicore/tango/pkg/tango/deck"
	"github.com/cognicore/tango/pkg/tango/extract"
	"github.com/cognicore/tango/pkg/tango/glossary"
	"github.com/cognicore/tango/pkg/tango/internalerr"
	"github.com/cognicore/tango/pkg/tango/morph"
	"github.com/cognicore/tango/pkg/tango/segment"
	"github.com/cognicore/tango/pkg/tango/stoplist"
	"github.com/cognicore/tango/pkg/tango/store"
	"github.com/cognicore/tango/pkg/tango/vocab"
)

// Tango is the main vocabulary engine facade
type Tango struct {
	store     store.Store
	analyzer  morph.Analyzer
	stops     *stoplist.Manager
	segmenter *segment.Segmenter
	decks     *deck.Generator
	limit     int
	log       *slog.Logger
}

// Options configures a Tango instance
type Options struct {
	Store    store.Store
	Analyzer morph.Analyzer
	Stoplist *stoplist.Manager
	Glossary glossary.Glossary
	// Limit caps ranked results when a call does not pass its own
	// limit. Zero means the package default.
	Limit int
	// MinSentenceLen drops shorter sentences, in runes. Zero means the
	// package default.
	MinSentenceLen int
	Logger         *slog.Logger
}

// New creates a Tango instance with the given dependencies
func New(opts Options) *Tango {
	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.Default()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = vocab.DefaultLimit
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Tango{
		store:     opts.Store,
		analyzer:  opts.Analyzer,
		stops:     stops,
		segmenter: segment.New(opts.MinSentenceLen),
		decks:     deck.NewGenerator(opts.Glossary),
		limit:     limit,
		log:       log,
	}
}

// Close cleanly shuts down the Tango instance
func (t *Tango) Close() error {
	return t.store.Close()
}

// AnalyzeBook runs the full extraction pipeline over an EPUB file and
// caches the ranked result. A limit of zero means the configured
// default; negative limits are rejected before any work starts.
// Sentences the analyzer fails on are skipped, not fatal.
func (t *Tango) AnalyzeBook(ctx context.Context, epubPath string, limit int) ([]vocab.Entry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", internalerr.ErrInvalidInput, limit)
	}
	if limit == 0 {
		limit = t.limit
	}

	chapters, err := extract.FromEPUB(epubPath)
	if err != nil {
		return nil, fmt.Errorf("extract epub: %w", err)
	}

	known, err := t.store.KnownWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load known words: %w", err)
	}

	agg := vocab.NewAggregator(t.stops, known)
	sentences, skipped := 0, 0
	for _, ch := range chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, sentence := range t.segmenter.Split(ch.Text) {
			morphemes, err := t.analyzer.Analyze(sentence)
			if err != nil {
				skipped++
				continue
			}
			agg.AddSentence(sentence, morphemes)
			sentences++
		}
	}
	if skipped > 0 {
		t.log.Warn("analyzer skipped sentences", "skipped", skipped, "analyzed", sentences)
	}

	ranked, err := vocab.Rank(agg.Entries(), limit)
	if err != nil {
		return nil, err
	}
	if err := t.store.SaveVocab(ctx, ranked); err != nil {
		return nil, fmt.Errorf("cache vocab: %w", err)
	}

	t.log.Info("book analyzed",
		"chapters", len(chapters),
		"sentences", sentences,
		"distinct", agg.Len(),
		"returned", len(ranked))
	return ranked, nil
}

// CachedVocab returns the result of the most recent extraction, or
// ErrNotFound when no extraction has run.
func (t *Tango) CachedVocab(ctx context.Context) ([]vocab.Entry, error) {
	entries, err := t.store.LoadVocab(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: vocabulary cache is empty", internalerr.ErrNotFound)
	}
	return entries, nil
}

// ImportAnkiExport reads a tab-separated Anki export and adds its words
// to the known set. It returns the number of distinct words found in
// the export.
func (t *Tango) ImportAnkiExport(ctx context.Context, r io.Reader) (int, error) {
	words, err := ankitxt.Words(r)
	if err != nil {
		return 0, fmt.Errorf("parse export: %w", err)
	}
	if len(words) == 0 {
		return 0, fmt.Errorf("%w: no japanese words in export", internalerr.ErrInvalidInput)
	}
	if err := t.store.AddKnownWords(ctx, words); err != nil {
		return 0, fmt.Errorf("store known words: %w", err)
	}
	t.log.Info("anki export imported", "words", len(words))
	return len(words), nil
}

// KnownWords returns the known set in lexicographic order.
func (t *Tango) KnownWords(ctx context.Context) ([]string, error) {
	known, err := t.store.KnownWords(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(known))
	for w := range known {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

// Known-words update actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// UpdateKnownWords adds or removes words from the known set.
func (t *Tango) UpdateKnownWords(ctx context.Context, words []string, action string) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: no words given", internalerr.ErrInvalidInput)
	}
	switch action {
	case ActionAdd:
		return t.store.AddKnownWords(ctx, words)
	case ActionRemove:
		return t.store.RemoveKnownWords(ctx, words)
	}
	return fmt.Errorf("%w: unknown action %q", internalerr.ErrInvalidInput, action)
}

// ResetKnownWords empties the known set.
func (t *Tango) ResetKnownWords(ctx context.Context) error {
	return t.store.ClearKnownWords(ctx)
}

// BuildDeck packages the cached vocabulary into an .apkg archive.
func (t *Tango) BuildDeck(ctx context.Context, deckName string) ([]byte, error) {
	entries, err := t.CachedVocab(ctx)
	if err != nil {
		return nil, err
	}
	return t.decks.Build(entries, deckName)
}

// BuildKnownWordsDeck packages the known-words set into an .apkg
// archive, for reviewing words already marked as learned.
func (t *Tango) BuildKnownWordsDeck(ctx context.Context, deckName string) ([]byte, error) {
	words, err := t.KnownWords(ctx)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: known-words set is empty", internalerr.ErrNotFound)
	}
	entries := make([]vocab.Entry, len(words))
	for i, w := range words {
		entries[i] = vocab.Entry{Word: w, Frequency: 1, Context: w}
	}
	return t.decks.Build(entries, deckName)
}
