package glossary

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGlossary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glossary.tsv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write glossary: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeGlossary(t, "# JMdict extract\n勉強\tstudy; diligence\n図書館\tlibrary\n\nmalformed line without tab\n")

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", g.Len())
	}

	gloss, ok := g.Lookup("勉強")
	if !ok || gloss != "study; diligence" {
		t.Errorf("Lookup(勉強) = %q, %v", gloss, ok)
	}
	if _, ok := g.Lookup("malformed"); ok {
		t.Error("malformed line should not produce an entry")
	}
}

func TestLoadFileFirstEntryWins(t *testing.T) {
	path := writeGlossary(t, "猫\tcat\n猫\tfeline\n")

	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if gloss, _ := g.Lookup("猫"); gloss != "cat" {
		t.Errorf("Lookup(猫) = %q, want cat", gloss)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNullLookup(t *testing.T) {
	if _, ok := (Null{}).Lookup("勉強"); ok {
		t.Error("Null glossary must never resolve")
	}
}
