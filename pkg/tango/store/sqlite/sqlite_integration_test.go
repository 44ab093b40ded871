package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/tango/pkg/tango/vocab"
)

// TestSQLiteKnownWords tests the known-words CRUD operations
func TestSQLiteKnownWords(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	if err := st.AddKnownWords(ctx, []string{"勉強", "図書館"}); err != nil {
		t.Fatalf("AddKnownWords: %v", err)
	}
	// Re-adding must not fail or duplicate
	if err := st.AddKnownWords(ctx, []string{"勉強", "先生"}); err != nil {
		t.Fatalf("AddKnownWords again: %v", err)
	}

	known, err := st.KnownWords(ctx)
	if err != nil {
		t.Fatalf("KnownWords: %v", err)
	}
	if len(known) != 3 {
		t.Errorf("Expected 3 known words, got %d", len(known))
	}
	if _, ok := known["図書館"]; !ok {
		t.Error("図書館 should be known")
	}

	if err := st.RemoveKnownWords(ctx, []string{"図書館"}); err != nil {
		t.Fatalf("RemoveKnownWords: %v", err)
	}
	known, err = st.KnownWords(ctx)
	if err != nil {
		t.Fatalf("KnownWords after remove: %v", err)
	}
	if _, ok := known["図書館"]; ok {
		t.Error("図書館 should have been removed")
	}

	if err := st.ClearKnownWords(ctx); err != nil {
		t.Fatalf("ClearKnownWords: %v", err)
	}
	known, err = st.KnownWords(ctx)
	if err != nil {
		t.Fatalf("KnownWords after clear: %v", err)
	}
	if len(known) != 0 {
		t.Errorf("Expected empty set, got %d words", len(known))
	}
}

// TestSQLiteVocabCache tests save/load round-trips and cache replacement
func TestSQLiteVocabCache(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	first := []vocab.Entry{
		{Word: "冒険", Frequency: 12, Context: "少年は冒険に出た。"},
		{Word: "物語", Frequency: 7, Context: "これは長い物語です。"},
	}
	if err := st.SaveVocab(ctx, first); err != nil {
		t.Fatalf("SaveVocab: %v", err)
	}

	loaded, err := st.LoadVocab(ctx)
	if err != nil {
		t.Fatalf("LoadVocab: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(loaded))
	}
	// Save order is rank order and must survive the round-trip
	if loaded[0].Word != "冒険" || loaded[1].Word != "物語" {
		t.Errorf("Order not preserved: %v", loaded)
	}
	if loaded[0].Frequency != 12 || loaded[0].Context != "少年は冒険に出た。" {
		t.Errorf("Entry mismatch: %+v", loaded[0])
	}

	// A new save replaces the cache entirely
	second := []vocab.Entry{{Word: "旅行", Frequency: 3, Context: "旅行の計画を立てる。"}}
	if err := st.SaveVocab(ctx, second); err != nil {
		t.Fatalf("SaveVocab replace: %v", err)
	}
	loaded, err = st.LoadVocab(ctx)
	if err != nil {
		t.Fatalf("LoadVocab after replace: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Word != "旅行" {
		t.Errorf("Cache not replaced: %v", loaded)
	}
}

// TestSQLitePersistence verifies data survives a close/reopen cycle
func TestSQLitePersistence(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.AddKnownWords(ctx, []string{"勉強"}); err != nil {
		t.Fatalf("AddKnownWords: %v", err)
	}
	if err := st.SaveVocab(ctx, []vocab.Entry{{Word: "物語", Frequency: 1, Context: "短い物語。"}}); err != nil {
		t.Fatalf("SaveVocab: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st.Close()

	known, err := st.KnownWords(ctx)
	if err != nil {
		t.Fatalf("KnownWords: %v", err)
	}
	if _, ok := known["勉強"]; !ok {
		t.Error("known word lost across reopen")
	}
	loaded, err := st.LoadVocab(ctx)
	if err != nil {
		t.Fatalf("LoadVocab: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Word != "物語" {
		t.Errorf("vocab cache lost across reopen: %v", loaded)
	}
}
