// Package ankitxt extracts Japanese vocabulary from Anki tab-separated
// text exports, used to seed the known-words set.
package ankitxt

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// particles are common single-purpose function words that slip through
// an export's first field but are useless as known-word entries.
var particles = map[string]struct{}{
	"の": {}, "に": {}, "は": {}, "を": {}, "が": {}, "で": {}, "と": {},
	"も": {}, "から": {}, "まで": {}, "より": {}, "へ": {}, "か": {},
	"ね": {}, "よ": {}, "さ": {},
}

// Words reads a tab-separated Anki export and returns the Japanese words
// found in the first field of each line, in encounter order and without
// duplicates. Header lines (#separator etc.) and blank lines are
// skipped.
func Words(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seen := make(map[string]struct{})
	var words []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		first := line
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			first = line[:i]
		}
		first = strings.TrimSpace(first)
		if first == "" {
			continue
		}

		for _, w := range japaneseRuns(stripHTML(first)) {
			if !keep(w) {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words, scanner.Err()
}

// stripHTML removes markup and decodes entities from a card field.
// Fields exported from Anki routinely carry <b>, <ruby> and furigana
// spans.
func stripHTML(field string) string {
	if !strings.ContainsAny(field, "<&") {
		return field
	}
	doc, err := html.Parse(bytes.NewReader([]byte(field)))
	if err != nil {
		return field
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "rt" || n.Data == "rp") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

// japaneseRuns returns the maximal runs of Japanese characters in text.
func japaneseRuns(text string) []string {
	var runs []string
	var cur []rune
	for _, r := range text {
		if isJapanese(r) {
			cur = append(cur, r)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, string(cur))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		runs = append(runs, string(cur))
	}
	return runs
}

func isJapanese(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0x4E00 && r <= 0x9FAF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	}
	return false
}

func keep(w string) bool {
	if utf8.RuneCountInString(w) <= 1 {
		return false
	}
	_, particle := particles[w]
	return !particle
}
