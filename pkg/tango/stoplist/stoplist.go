package stoplist

// Manager holds the set of base forms excluded from vocabulary
// extraction.
type Manager struct {
	stops map[string]struct{}
}

// defaultTerms are common light verbs and formal nouns that dominate
// frequency counts in any Japanese text without being useful vocabulary.
var defaultTerms = []string{
	"いる", "する", "ある", "なる", "れる", "られる", "いう",
	"もの", "こと", "とき", "そう", "よう", "くる", "いく",
}

// New creates a manager with the given terms.
func New(terms []string) *Manager {
	stops := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		stops[t] = struct{}{}
	}
	return &Manager{stops: stops}
}

// Default returns the stop-list used by the extraction pipeline.
func Default() *Manager {
	return New(defaultTerms)
}

// IsStop checks if a base form is a stopword.
func (m *Manager) IsStop(word string) bool {
	_, ok := m.stops[word]
	return ok
}

// Add adds a base form to the stop-list.
func (m *Manager) Add(word string) {
	if word == "" {
		return
	}
	m.stops[word] = struct{}{}
}

// Remove removes a base form from the stop-list.
func (m *Manager) Remove(word string) {
	delete(m.stops, word)
}

// All returns all stopwords.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	return result
}
