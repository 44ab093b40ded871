package deck

import (
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// note is one vocabulary card before serialization.
type note struct {
	guid    string
	word    string
	gloss   string
	context string
}

// fieldSep joins note fields inside the flds column.
const fieldSep = "\x1f"

// collectionSchema is the anki2 schema version 11 as written by Anki
// desktop and genanki.
const collectionSchema = `
CREATE TABLE col (
	id INTEGER PRIMARY KEY,
	crt INTEGER NOT NULL,
	mod INTEGER NOT NULL,
	scm INTEGER NOT NULL,
	ver INTEGER NOT NULL,
	dty INTEGER NOT NULL,
	usn INTEGER NOT NULL,
	ls INTEGER NOT NULL,
	conf TEXT NOT NULL,
	models TEXT NOT NULL,
	decks TEXT NOT NULL,
	dconf TEXT NOT NULL,
	tags TEXT NOT NULL
);

CREATE TABLE notes (
	id INTEGER PRIMARY KEY,
	guid TEXT NOT NULL,
	mid INTEGER NOT NULL,
	mod INTEGER NOT NULL,
	usn INTEGER NOT NULL,
	tags TEXT NOT NULL,
	flds TEXT NOT NULL,
	sfld TEXT NOT NULL,
	csum INTEGER NOT NULL,
	flags INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE TABLE cards (
	id INTEGER PRIMARY KEY,
	nid INTEGER NOT NULL,
	did INTEGER NOT NULL,
	ord INTEGER NOT NULL,
	mod INTEGER NOT NULL,
	usn INTEGER NOT NULL,
	type INTEGER NOT NULL,
	queue INTEGER NOT NULL,
	due INTEGER NOT NULL,
	ivl INTEGER NOT NULL,
	factor INTEGER NOT NULL,
	reps INTEGER NOT NULL,
	lapses INTEGER NOT NULL,
	left INTEGER NOT NULL,
	odue INTEGER NOT NULL,
	odid INTEGER NOT NULL,
	flags INTEGER NOT NULL,
	data TEXT NOT NULL
);

CREATE TABLE revlog (
	id INTEGER PRIMARY KEY,
	cid INTEGER NOT NULL,
	usn INTEGER NOT NULL,
	ease INTEGER NOT NULL,
	ivl INTEGER NOT NULL,
	lastIvl INTEGER NOT NULL,
	factor INTEGER NOT NULL,
	time INTEGER NOT NULL,
	type INTEGER NOT NULL
);

CREATE TABLE graves (
	usn INTEGER NOT NULL,
	oid INTEGER NOT NULL,
	type INTEGER NOT NULL
);

CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_cid ON revlog (cid);
CREATE INDEX ix_notes_csum ON notes (csum);
`

type modelField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type modelTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type model struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	SortF     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Tmpls     []modelTemplate `json:"tmpls"`
	Flds      []modelField    `json:"flds"`
	CSS       string          `json:"css"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	Req       [][]any         `json:"req"`
	Tags      []string        `json:"tags"`
	Vers      []string        `json:"vers"`
}

type deckEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Mod       int64  `json:"mod"`
	Usn       int    `json:"usn"`
	Collapsed bool   `json:"collapsed"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	LrnToday  [2]int `json:"lrnToday"`
	TimeToday [2]int `json:"timeToday"`
	Dyn       int    `json:"dyn"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
	Conf      int    `json:"conf"`
}

const modelCSS = `.card {
 font-family: arial;
 font-size: 20px;
 text-align: center;
 color: black;
 background-color: white;
}
.context {
 font-size: 16px;
 color: #555;
 margin-top: 12px;
}`

const (
	defaultConf = `{"nextPos":1,"estTimes":true,"activeDecks":[1],"sortType":"noteFld","timeLim":0,"sortBackwards":false,"addToCur":true,"curDeck":1,"newBury":true,"newSpread":0,"dueCounts":true,"curModel":"1607392319","collapseTime":1200}`

	defaultDconf = `{"1":{"id":1,"name":"Default","replayq":true,"lapse":{"leechFails":8,"minInt":1,"delays":[10],"leechAction":0,"mult":0},"rev":{"perDay":200,"ivlFct":1,"maxIvl":36500,"ease4":1.3,"bury":true,"minSpace":1,"fuzz":0.05},"timer":0,"maxTaken":60,"usn":-1,"new":{"perDay":20,"delays":[1,10],"separate":true,"ints":[1,4,7],"initialFactor":2500,"bury":true,"order":1},"mod":0,"autoplay":true,"dyn":0}}`
)

func modelsJSON(now int64) (string, error) {
	latexPre := "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n\\setlength{\\parindent}{0in}\n\\begin{document}\n"

	m := model{
		ID:    ModelID,
		Name:  "Japanese Vocabulary",
		Mod:   now,
		Usn:   -1,
		Did:   DeckID,
		Tmpls: []modelTemplate{{
			Name: "Card 1",
			Qfmt: "{{Word}}",
			Afmt: "{{FrontSide}}<hr id=\"answer\">{{Definition}}<div class=\"context\">{{Context}}</div>",
		}},
		Flds: []modelField{
			{Name: "Word", Ord: 0, Font: "Arial", Size: 20, Media: []string{}},
			{Name: "Definition", Ord: 1, Font: "Arial", Size: 20, Media: []string{}},
			{Name: "Context", Ord: 2, Font: "Arial", Size: 20, Media: []string{}},
		},
		CSS:       modelCSS,
		LatexPre:  latexPre,
		LatexPost: "\\end{document}",
		Req:       [][]any{{0, "all", []int{0}}},
		Tags:      []string{},
		Vers:      []string{},
	}
	b, err := json.Marshal(map[string]model{strconv.Itoa(ModelID): m})
	return string(b), err
}

func decksJSON(deckName string, now int64) (string, error) {
	mk := func(id int64, name string) deckEntry {
		return deckEntry{ID: id, Name: name, Mod: now, Usn: -1, ExtendNew: 10, ExtendRev: 50, Conf: 1}
	}
	decks := map[string]deckEntry{
		"1": mk(1, "Default"),
		strconv.Itoa(DeckID): mk(DeckID, deckName),
	}
	b, err := json.Marshal(decks)
	return string(b), err
}

// fieldChecksum is the first 8 hex digits of the sha1 of the sort field,
// as an integer. Anki uses it to detect duplicate notes.
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	n, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return n
}

// buildCollection writes a collection.anki2 database for the notes and
// returns its bytes. The database is built in a temp file because the
// driver needs a real path.
func buildCollection(notes []note, deckName string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tango-deck-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := writeCollection(db, notes, deckName); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func writeCollection(db *sql.DB, notes []note, deckName string) error {
	if _, err := db.Exec(collectionSchema); err != nil {
		return err
	}

	now := time.Now()
	sec := now.Unix()
	ms := now.UnixMilli()

	models, err := modelsJSON(sec)
	if err != nil {
		return err
	}
	decks, err := decksJSON(deckName, sec)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		sec, ms, ms, defaultConf, models, decks, defaultDconf,
	)
	if err != nil {
		return err
	}

	noteStmt, err := db.Prepare(
		`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
		 VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`)
	if err != nil {
		return err
	}
	defer noteStmt.Close()

	cardStmt, err := db.Prepare(
		`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data)
		 VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	for i, n := range notes {
		noteID := ms + int64(i)
		flds := strings.Join([]string{n.word, n.gloss, n.context}, fieldSep)
		if _, err := noteStmt.Exec(noteID, n.guid, ModelID, sec, flds, n.word, fieldChecksum(n.word)); err != nil {
			return err
		}
		cardID := noteID + int64(len(notes))
		if _, err := cardStmt.Exec(cardID, noteID, DeckID, sec, i+1); err != nil {
			return err
		}
	}
	return nil
}
