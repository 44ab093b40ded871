// Package vocab aggregates filtered morphemes into frequency-ranked
// vocabulary entries.
package vocab

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/cognicore/tango/pkg/tango/internalerr"
	"github.com/cognicore/tango/pkg/tango/morph"
	"github.com/cognicore/tango/pkg/tango/stoplist"
)

// DefaultLimit caps the ranked result list when the caller does not ask
// for a specific size.
const DefaultLimit = 2000

// Entry is one aggregated vocabulary item. Context is the first sentence
// in which the word was accepted and never changes afterwards.
type Entry struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
	Context   string `json:"context"`
}

// Aggregator accumulates per-base-form frequency counts across the
// sentences of a single extraction run. It is not safe for concurrent
// use; each run owns its own instance.
type Aggregator struct {
	stops   *stoplist.Manager
	known   map[string]struct{}
	index   map[string]int
	entries []Entry
}

// NewAggregator creates an aggregator. A nil stops falls back to the
// default stop-list; known may be nil.
func NewAggregator(stops *stoplist.Manager, known map[string]struct{}) *Aggregator {
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Aggregator{
		stops: stops,
		known: known,
		index: make(map[string]int),
	}
}

// AddSentence folds one analyzed sentence into the aggregate. The
// sentence text becomes the context of every word first accepted here.
func (a *Aggregator) AddSentence(sentence string, morphemes []morph.Morpheme) {
	for _, m := range morphemes {
		if !a.accept(m) {
			continue
		}
		if i, ok := a.index[m.Base]; ok {
			a.entries[i].Frequency++
			continue
		}
		a.index[m.Base] = len(a.entries)
		a.entries = append(a.entries, Entry{Word: m.Base, Frequency: 1, Context: sentence})
	}
}

// accept applies the extraction filters in order: single characters,
// stop-list, known words, then the grammatical gate (independent nouns,
// verbs and adjectives only).
func (a *Aggregator) accept(m morph.Morpheme) bool {
	if utf8.RuneCountInString(m.Base) <= 1 {
		return false
	}
	if a.stops.IsStop(m.Base) {
		return false
	}
	if _, known := a.known[m.Base]; known {
		return false
	}
	if !m.Independent {
		return false
	}
	switch m.Category {
	case morph.Noun, morph.Verb, morph.Adjective:
		return true
	}
	return false
}

// Entries returns the aggregate in first-seen order.
func (a *Aggregator) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of distinct words seen so far.
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// Rank sorts entries by descending frequency and truncates to limit.
// The sort is stable so equal frequencies keep their first-seen order,
// making repeated runs reproducible. A negative limit is rejected;
// limit zero yields an empty list.
func Rank(entries []Entry, limit int) ([]Entry, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: negative limit %d", internalerr.ErrInvalidInput, limit)
	}

	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
