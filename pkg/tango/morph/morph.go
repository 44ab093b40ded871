package morph

// Category is the grammatical class of a morpheme, derived once from the
// analyzer's part-of-speech features so filter sites never re-parse POS
// strings.
type Category int

const (
	Other Category = iota
	Noun
	Verb
	Adjective
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	default:
		return "other"
	}
}

// Morpheme is the atomic unit of analyzed text.
type Morpheme struct {
	Surface     string   // form as it appears in the sentence
	Base        string   // dictionary (lemma) form
	Category    Category // grammatical class
	Independent bool     // false for bound/auxiliary forms (非自立)
}

// Analyzer produces ordered morphemes for a piece of Japanese text.
// Implementations must be safe for reuse across calls; the pipeline holds
// a single instance for the whole run.
type Analyzer interface {
	Analyze(text string) ([]Morpheme, error)
}
