// Package config loads server and pipeline settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/tango/pkg/tango/internalerr"
)

// Config holds the full server configuration.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`
	// GlossaryPath is an optional word-to-definition TSV file for deck
	// generation. Empty disables definitions.
	GlossaryPath string `yaml:"glossary_path"`
	// AllowedOrigin is the origin granted CORS access.
	AllowedOrigin string `yaml:"allowed_origin"`
	// Limit caps the ranked vocabulary list per extraction.
	Limit int `yaml:"limit"`
	// MinSentenceLen drops shorter sentences during segmentation,
	// measured in runes.
	MinSentenceLen int `yaml:"min_sentence_len"`
	// Stoplist overrides the built-in stop words when non-empty.
	Stoplist []string `yaml:"stoplist"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:           ":8000",
		DBPath:         "data/vocab.db",
		AllowedOrigin:  "http://localhost:3000",
		Limit:          2000,
		MinSentenceLen: 5,
	}
}

// Load reads a YAML config file over the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run
// with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", internalerr.ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path must not be empty", internalerr.ErrInvalidConfig)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.MinSentenceLen < 0 {
		return fmt.Errorf("%w: min_sentence_len must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
