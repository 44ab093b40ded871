package segment

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinLen is the minimum sentence length in runes. Shorter
// candidates are almost always headers or stray punctuation.
const DefaultMinLen = 5

// Segmenter splits chapter text into sentence candidates on Japanese
// sentence-final punctuation.
type Segmenter struct {
	minLen int
}

// New creates a segmenter. minLen <= 0 selects DefaultMinLen.
func New(minLen int) *Segmenter {
	if minLen <= 0 {
		minLen = DefaultMinLen
	}
	return &Segmenter{minLen: minLen}
}

// Split returns the sentences of text in order. The boundary falls after
// 。, ！ or ？; a closing 」 directly following one of them stays attached
// to the preceding sentence. Candidates shorter than minLen runes after
// trimming are dropped.
func (s *Segmenter) Split(text string) []string {
	var out []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '」' {
			cur.WriteRune('」')
			i++
		}
		out = s.flush(out, &cur)
	}
	return s.flush(out, &cur)
}

func (s *Segmenter) flush(out []string, cur *strings.Builder) []string {
	sent := strings.TrimSpace(cur.String())
	cur.Reset()
	if utf8.RuneCountInString(sent) < s.minLen {
		return out
	}
	return append(out, sent)
}

func isTerminal(r rune) bool {
	return r == '。' || r == '！' || r == '？'
}
