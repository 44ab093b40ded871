package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cognicore/tango/internal/server"
	"github.com/cognicore/tango/pkg/tango"
	"github.com/cognicore/tango/pkg/tango/config"
	"github.com/cognicore/tango/pkg/tango/glossary"
	"github.com/cognicore/tango/pkg/tango/morph"
	"github.com/cognicore/tango/pkg/tango/stoplist"
	"github.com/cognicore/tango/pkg/tango/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := context.Background()

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal("Failed to create data directory:", err)
		}
	}
	st, err := sqlite.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	analyzer, err := morph.NewKagomeAnalyzer()
	if err != nil {
		log.Fatal("Failed to initialize analyzer:", err)
	}

	var gloss glossary.Glossary = glossary.Null{}
	if cfg.GlossaryPath != "" {
		g, err := glossary.LoadFile(cfg.GlossaryPath)
		if err != nil {
			log.Fatal("Failed to load glossary:", err)
		}
		logger.Info("glossary loaded", "path", cfg.GlossaryPath, "entries", g.Len())
		gloss = g
	}

	stops := stoplist.Default()
	if len(cfg.Stoplist) > 0 {
		stops = stoplist.New(cfg.Stoplist)
	}

	engine := tango.New(tango.Options{
		Store:          st,
		Analyzer:       analyzer,
		Stoplist:       stops,
		Glossary:       gloss,
		Limit:          cfg.Limit,
		MinSentenceLen: cfg.MinSentenceLen,
		Logger:         logger,
	})
	defer engine.Close()

	srv := server.New(engine, logger, cfg.AllowedOrigin)

	logger.Info("server listening", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.Fatal("Server error:", err)
	}
}
