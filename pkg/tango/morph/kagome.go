package morph

import (
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// IPA dictionary feature values. The scheme matches MeCab's, so the
// mapping below also holds for corpora lemmatized with other IPA-based
// analyzers.
const (
	posNoun       = "名詞"
	posVerb       = "動詞"
	posAdjective  = "形容詞"
	featDependent = "非自立"
)

// KagomeAnalyzer is the production Analyzer backed by kagome and the IPA
// dictionary.
type KagomeAnalyzer struct {
	t *tokenizer.Tokenizer
}

// NewKagomeAnalyzer builds the analyzer. The dictionary is embedded in
// the binary, so this only fails on tokenizer misconfiguration.
func NewKagomeAnalyzer() (*KagomeAnalyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeAnalyzer{t: t}, nil
}

// Analyze implements Analyzer.
func (a *KagomeAnalyzer) Analyze(text string) ([]Morpheme, error) {
	if text == "" {
		return nil, nil
	}
	tokens := a.t.Tokenize(text)
	morphemes := make([]Morpheme, 0, len(tokens))
	for _, tok := range tokens {
		base, ok := tok.BaseForm()
		if !ok || base == "" || base == "*" {
			base = tok.Surface
		}
		morphemes = append(morphemes, FromFeatures(tok.Surface, base, tok.POS()))
	}
	return morphemes, nil
}

// FromFeatures maps a surface/base pair plus raw POS features onto the
// core Morpheme type.
func FromFeatures(surface, base string, pos []string) Morpheme {
	m := Morpheme{
		Surface:     surface,
		Base:        base,
		Category:    Other,
		Independent: true,
	}
	if len(pos) > 0 {
		switch pos[0] {
		case posNoun:
			m.Category = Noun
		case posVerb:
			m.Category = Verb
		case posAdjective:
			m.Category = Adjective
		}
	}
	for _, f := range pos {
		if f == featDependent {
			m.Independent = false
			break
		}
	}
	return m
}
