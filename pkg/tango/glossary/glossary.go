// Package glossary resolves words to short definitions for card backs.
package glossary

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Glossary looks up a definition for a base form. The deck generator
// treats a miss as "Definition not found" rather than an error.
type Glossary interface {
	Lookup(word string) (string, bool)
}

// Null is a glossary with no entries, for deployments without a
// dictionary file.
type Null struct{}

// Lookup implements Glossary.
func (Null) Lookup(string) (string, bool) { return "", false }

// File is a glossary backed by a word<TAB>gloss file, one entry per
// line. Lines starting with # are comments. The first entry for a word
// wins.
type File struct {
	defs map[string]string
}

// LoadFile reads a glossary file into memory.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glossary: %w", err)
	}
	defer f.Close()

	g := &File{defs: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, gloss, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		word = strings.TrimSpace(word)
		gloss = strings.TrimSpace(gloss)
		if word == "" || gloss == "" {
			continue
		}
		if _, dup := g.defs[word]; dup {
			continue
		}
		g.defs[word] = gloss
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	return g, nil
}

// Lookup implements Glossary.
func (g *File) Lookup(word string) (string, bool) {
	gloss, ok := g.defs[word]
	return gloss, ok
}

// Len returns the number of loaded entries.
func (g *File) Len() int {
	return len(g.defs)
}
