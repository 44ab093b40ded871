package stoplist

import "testing"

func TestDefaultContainsLightVerbs(t *testing.T) {
	m := Default()

	for _, w := range []string{"いる", "する", "こと", "よう"} {
		if !m.IsStop(w) {
			t.Errorf("Default stop-list should contain %q", w)
		}
	}

	if m.IsStop("読む") {
		t.Error("読む should not be a stopword")
	}
}

func TestAddRemove(t *testing.T) {
	m := New(nil)

	if m.IsStop("犬") {
		t.Error("empty manager should not match anything")
	}

	m.Add("犬")
	if !m.IsStop("犬") {
		t.Error("added word should be a stopword")
	}

	m.Remove("犬")
	if m.IsStop("犬") {
		t.Error("removed word should not be a stopword")
	}
}

func TestNewSkipsEmptyTerms(t *testing.T) {
	m := New([]string{"", "猫", ""})

	if m.IsStop("") {
		t.Error("empty string should never be a stopword")
	}
	if got := len(m.All()); got != 1 {
		t.Errorf("expected 1 term, got %d", got)
	}
}
