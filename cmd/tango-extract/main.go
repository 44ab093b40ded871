package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/tango/pkg/tango"
	"github.com/cognicore/tango/pkg/tango/morph"
	"github.com/cognicore/tango/pkg/tango/store/memstore"
)

// tango-extract runs the extraction pipeline once over an EPUB and
// prints the ranked vocabulary, without a server or database.
func main() {
	var (
		bookPath  = flag.String("book", "", "EPUB file to analyze (required)")
		limit     = flag.Int("limit", 0, "Maximum entries to print (0 = default)")
		knownPath = flag.String("known", "", "Anki export of known words to exclude (optional)")
		format    = flag.String("format", "tsv", "Output format: tsv or json")
	)
	flag.Parse()

	if *bookPath == "" {
		log.Fatal("--book required")
	}
	if *format != "tsv" && *format != "json" {
		log.Fatal("--format must be tsv or json")
	}

	ctx := context.Background()

	analyzer, err := morph.NewKagomeAnalyzer()
	if err != nil {
		log.Fatal("Failed to initialize analyzer:", err)
	}

	engine := tango.New(tango.Options{
		Store:    memstore.New(),
		Analyzer: analyzer,
	})
	defer engine.Close()

	if *knownPath != "" {
		f, err := os.Open(*knownPath)
		if err != nil {
			log.Fatal("Failed to open known-words export:", err)
		}
		n, err := engine.ImportAnkiExport(ctx, f)
		f.Close()
		if err != nil {
			log.Fatal("Failed to import known words:", err)
		}
		log.Printf("Excluding %d known words", n)
	}

	entries, err := engine.AnalyzeBook(ctx, *bookPath, *limit)
	if err != nil {
		log.Fatal("Analysis failed:", err)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			log.Fatal("Failed to encode output:", err)
		}
	default:
		for _, e := range entries {
			fmt.Printf("%s\t%d\t%s\n", e.Word, e.Frequency, e.Context)
		}
	}
}
