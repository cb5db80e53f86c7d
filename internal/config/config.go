// Package config loads pdfextbook settings from a YAML file, a .env file and
// PDFEXTBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/itsmostafa/pdfextbook/internal/bookmarks"
	"github.com/itsmostafa/pdfextbook/internal/engine"
	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/itsmostafa/pdfextbook/internal/selector"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is returned for a bookmark level below 1.
var ErrInvalidLevel = errors.New("bookmark levels start from 1")

// Config holds the settings a run starts from before flags are applied.
type Config struct {
	Engine         string `yaml:"engine"`
	EndPageMode    string `yaml:"end_page_mode"`
	BookmarkSource string `yaml:"bookmark_source"`
	Selector       string `yaml:"selector"`
	LogLevel       string `yaml:"log_level"`

	// MaxFilenameLen bounds the title part of suggested output filenames
	MaxFilenameLen int `yaml:"max_filename_length"`

	Binaries struct {
		Pdftk  string `yaml:"pdftk"`
		Qpdf   string `yaml:"qpdf"`
		Pdfjam string `yaml:"pdfjam"`
		Fzf    string `yaml:"fzf"`
	} `yaml:"binaries"`

	FzfArgs []string `yaml:"fzf_args"`
}

// Default returns the configuration used when no file or environment
// variable says otherwise.
func Default() *Config {
	return &Config{
		Engine:         string(engine.DefaultName),
		EndPageMode:    string(outline.PolicyLessOrEqual),
		BookmarkSource: bookmarks.SourcePdftk,
		Selector:       selector.NameFzf,
		LogLevel:       "warn",
		MaxFilenameLen: outline.MaxFilenameLen,
		FzfArgs:        []string{"--reverse"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pdfextbook/config.yaml, falling back
// to the OS user config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "pdfextbook", "config.yaml")
}

// Load reads the YAML file at path on top of Default, then applies
// PDFEXTBOOK_* environment overrides. A .env file in the working directory
// is loaded first if present. A missing config file is not an error; an
// explicitly requested one that cannot be read is.
func Load(path string, explicit bool) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Override with Environment Variables if present
	envOverride(&cfg.Engine, "PDFEXTBOOK_ENGINE")
	envOverride(&cfg.EndPageMode, "PDFEXTBOOK_END_PAGE_MODE")
	envOverride(&cfg.BookmarkSource, "PDFEXTBOOK_BOOKMARK_SOURCE")
	envOverride(&cfg.Selector, "PDFEXTBOOK_SELECTOR")
	envOverride(&cfg.LogLevel, "PDFEXTBOOK_LOG_LEVEL")
	envOverride(&cfg.Binaries.Pdftk, "PDFEXTBOOK_PDFTK")
	envOverride(&cfg.Binaries.Qpdf, "PDFEXTBOOK_QPDF")
	envOverride(&cfg.Binaries.Pdfjam, "PDFEXTBOOK_PDFJAM")
	envOverride(&cfg.Binaries.Fzf, "PDFEXTBOOK_FZF")
	if v := os.Getenv("PDFEXTBOOK_FZF_ARGS"); v != "" {
		cfg.FzfArgs = strings.Fields(v)
	}
	if v := os.Getenv("PDFEXTBOOK_MAX_FILENAME_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxFilenameLen = n
		}
	}

	if cfg.MaxFilenameLen <= 0 {
		cfg.MaxFilenameLen = outline.MaxFilenameLen
	}

	return cfg, nil
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ValidateLevel checks a level given on the command line.
func ValidateLevel(flag string, level int) error {
	if level < 1 {
		return fmt.Errorf("--%s %d: %w", flag, level, ErrInvalidLevel)
	}
	return nil
}
