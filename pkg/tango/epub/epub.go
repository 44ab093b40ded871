// Package epub reads the document items of an EPUB archive.
//
// An EPUB is a ZIP file whose META-INF/container.xml names an OPF
// package document; the OPF manifest lists every content item and the
// spine fixes their reading order. Only that much of the format is
// needed here.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

const containerPath = "META-INF/container.xml"

// Item is one document-type content entry from the OPF spine.
type Item struct {
	ID        string
	Href      string
	MediaType string

	path string // archive path, resolved against the OPF directory
}

// Book provides ordered access to the document items of an EPUB archive.
type Book struct {
	items  []Item
	files  map[string]*zip.File
	closer io.Closer
}

type container struct {
	RootFiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type pkg struct {
	Manifest struct {
		Items []struct {
			ID        string `xml:"id,attr"`
			Href      string `xml:"href,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Open opens the EPUB at the given path. Callers must Close the book.
func Open(p string) (*Book, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat epub: %w", err)
	}
	b, err := NewReader(f, st.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	b.closer = f
	return b, nil
}

// NewReader reads an EPUB from an in-memory or already-open archive.
func NewReader(r io.ReaderAt, size int64) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read epub archive: %w", err)
	}

	b := &Book{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		b.files[f.Name] = f
	}

	opfPath, err := b.rootFilePath()
	if err != nil {
		return nil, err
	}
	if err := b.loadPackage(opfPath); err != nil {
		return nil, err
	}
	return b, nil
}

// Close releases the underlying file, if any.
func (b *Book) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Items returns the document-type content items in spine order.
func (b *Book) Items() []Item {
	return b.items
}

// ReadItem returns the raw content of one item.
func (b *Book) ReadItem(it Item) ([]byte, error) {
	f, ok := b.files[it.path]
	if !ok {
		return nil, fmt.Errorf("epub item %s: file %s missing from archive", it.ID, it.path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("epub item %s: %w", it.ID, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (b *Book) rootFilePath() (string, error) {
	f, ok := b.files[containerPath]
	if !ok {
		return "", fmt.Errorf("epub: %s not found", containerPath)
	}
	var c container
	if err := decodeXML(f, &c); err != nil {
		return "", fmt.Errorf("parse container.xml: %w", err)
	}
	if len(c.RootFiles) == 0 || c.RootFiles[0].FullPath == "" {
		return "", fmt.Errorf("epub: container.xml names no rootfile")
	}
	return c.RootFiles[0].FullPath, nil
}

func (b *Book) loadPackage(opfPath string) error {
	f, ok := b.files[opfPath]
	if !ok {
		return fmt.Errorf("epub: package document %s missing from archive", opfPath)
	}
	var p pkg
	if err := decodeXML(f, &p); err != nil {
		return fmt.Errorf("parse package document: %w", err)
	}

	manifest := make(map[string]Item, len(p.Manifest.Items))
	for _, mi := range p.Manifest.Items {
		manifest[mi.ID] = Item{ID: mi.ID, Href: mi.Href, MediaType: mi.MediaType}
	}

	opfDir := path.Dir(opfPath)
	for _, ref := range p.Spine.ItemRefs {
		it, ok := manifest[ref.IDRef]
		if !ok || !isDocument(it.MediaType) {
			continue
		}
		it.path = resolveHref(opfDir, it.Href)
		b.items = append(b.items, it)
	}
	return nil
}

func isDocument(mediaType string) bool {
	return mediaType == "application/xhtml+xml" || mediaType == "text/html"
}

func resolveHref(dir, href string) string {
	if dir == "." || dir == "" {
		return href
	}
	return path.Join(dir, strings.TrimPrefix(href, "/"))
}

func decodeXML(f *zip.File, v interface{}) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}
