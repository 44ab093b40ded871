package epub

import (
	"archive/zip"
	"bytes"
	"testing"
)

const testContainer = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const testOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="text/ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="cover" href="cover.jpg" media-type="image/jpeg"/>
    <item id="css" href="style.css" media-type="text/css"/>
  </manifest>
  <spine>
    <itemref idref="ch2"/>
    <itemref idref="ch1"/>
    <itemref idref="cover"/>
    <itemref idref="missing"/>
  </spine>
</package>`

func buildArchive(t *testing.T, files map[string]string) *Book {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	b, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return b
}

func TestItemsSpineOrderAndFiltering(t *testing.T) {
	b := buildArchive(t, map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/ch1.xhtml":        "<html><body>one</body></html>",
		"OEBPS/text/ch2.xhtml":   "<html><body>two</body></html>",
		"OEBPS/cover.jpg":        "binary",
	})

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 document items, got %d", len(items))
	}
	// Spine order, not manifest order: ch2 before ch1. Non-document
	// media types and dangling idrefs are dropped.
	if items[0].ID != "ch2" || items[1].ID != "ch1" {
		t.Errorf("wrong spine order: %v", items)
	}
}

func TestReadItemResolvesOPFDir(t *testing.T) {
	b := buildArchive(t, map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/ch1.xhtml":        "<html><body>一章</body></html>",
		"OEBPS/text/ch2.xhtml":   "<html><body>二章</body></html>",
	})

	for _, it := range b.Items() {
		content, err := b.ReadItem(it)
		if err != nil {
			t.Fatalf("ReadItem(%s): %v", it.ID, err)
		}
		if len(content) == 0 {
			t.Errorf("ReadItem(%s) returned empty content", it.ID)
		}
	}
}

func TestReadItemMissingFile(t *testing.T) {
	b := buildArchive(t, map[string]string{
		"META-INF/container.xml": testContainer,
		"OEBPS/content.opf":      testOPF,
		// ch1.xhtml deliberately absent from the archive.
		"OEBPS/text/ch2.xhtml": "<html><body>二章</body></html>",
	})

	for _, it := range b.Items() {
		if it.ID != "ch1" {
			continue
		}
		if _, err := b.ReadItem(it); err == nil {
			t.Error("expected error reading a missing item file")
		}
	}
}

func TestNewReaderMissingContainer(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("mimetype")
	f.Write([]byte("application/epub+zip"))
	w.Close()

	if _, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err == nil {
		t.Error("expected error for archive without container.xml")
	}
}

func TestNewReaderNotAZip(t *testing.T) {
	data := []byte("this is not a zip archive")
	if _, err := NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("expected error for non-zip input")
	}
}
