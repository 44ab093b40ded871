// Package deck generates Anki .apkg packages from extracted vocabulary.
// The output matches the collection format Anki desktop imports: a zip
// holding a collection.anki2 SQLite database and a media manifest.
package deck

import (
	"archive/zip"
	"bytes"
	"crypto/rand"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/tango/pkg/tango/glossary"
	"github.com/cognicore/tango/pkg/tango/internalerr"
	"github.com/cognicore/tango/pkg/tango/vocab"
)

// Model and deck identifiers. Fixed so repeated imports of regenerated
// decks update notes in place instead of duplicating them.
const (
	ModelID = 1607392319
	DeckID  = 2059400110
)

// missingGloss is the card back for words absent from the glossary.
const missingGloss = "Definition not found"

// maxContextRunes drops entries whose captured context is too long to
// make a readable card back.
const maxContextRunes = 300

// Generator builds .apkg packages for a fixed glossary.
type Generator struct {
	gloss   glossary.Glossary
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a generator. A nil glossary behaves like an
// empty one.
func NewGenerator(gloss glossary.Glossary) *Generator {
	if gloss == nil {
		gloss = glossary.Null{}
	}
	return &Generator{
		gloss:   gloss,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Includable reports whether an entry makes a usable card. Entries
// whose context is navigation boilerplate, overlong, or whose word
// carries no kanji are skipped.
func Includable(e vocab.Entry) bool {
	if e.Word == "" {
		return false
	}
	if strings.Contains(e.Context, "Navigation") {
		return false
	}
	if utf8.RuneCountInString(e.Context) > maxContextRunes {
		return false
	}
	return hasHan(e.Word)
}

func hasHan(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

// Build packages the includable entries into an .apkg archive named
// deckName inside Anki. It fails with ErrNotFound when no entry
// survives the filter.
func (g *Generator) Build(entries []vocab.Entry, deckName string) ([]byte, error) {
	var notes []note
	for _, e := range entries {
		if !Includable(e) {
			continue
		}
		gloss, ok := g.gloss.Lookup(e.Word)
		if !ok {
			gloss = missingGloss
		}
		notes = append(notes, note{
			guid:    ulid.MustNew(ulid.Now(), g.entropy).String(),
			word:    e.Word,
			gloss:   gloss,
			context: e.Context,
		})
	}
	if len(notes) == 0 {
		return nil, fmt.Errorf("%w: no vocabulary suitable for a deck", internalerr.ErrNotFound)
	}

	collection, err := buildCollection(notes, deckName)
	if err != nil {
		return nil, fmt.Errorf("build collection: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("collection.anki2")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(collection); err != nil {
		return nil, err
	}
	w, err = zw.Create("media")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte("{}")); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
