// Package extract turns an EPUB archive into deduplicated plain-text
// chapters ready for segmentation.
package extract

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/tango/pkg/tango/epub"
)

// Chapter is the plain text of one document item.
type Chapter struct {
	Text        string
	Fingerprint [sha256.Size]byte
}

// FromEPUB opens the archive at path and returns its chapters in spine
// order. Items that fail to read or parse are skipped; only an unusable
// archive aborts the run.
func FromEPUB(path string) ([]Chapter, error) {
	book, err := epub.Open(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()
	return FromBook(book), nil
}

// FromBook extracts chapters from an already-open book.
//
// Duplicate chapters are detected by a fingerprint of the trimmed text:
// some archives bundle the same front matter or navigation page under
// several spine entries, and feeding those twice would double every
// frequency count.
func FromBook(book *epub.Book) []Chapter {
	seen := make(map[[sha256.Size]byte]struct{})
	var chapters []Chapter

	for _, it := range book.Items() {
		content, err := book.ReadItem(it)
		if err != nil {
			continue
		}
		text, err := TextContent(content)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		fp := sha256.Sum256([]byte(text))
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		chapters = append(chapters, Chapter{Text: text, Fingerprint: fp})
	}
	return chapters
}

// TextContent extracts the concatenated text of an XHTML document.
// Ruby reading glosses (rt) and their fallback parentheses (rp) are
// dropped so furigana does not pollute token boundaries; script and
// style bodies are dropped for the same reason.
func TextContent(raw []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "rt", "rp", "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}
