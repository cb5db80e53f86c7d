// Package extract drives a bookmark extraction run: dump the outline,
// resolve page ranges, then extract one chosen range or every match.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/itsmostafa/pdfextbook/internal/bookmarks"
	"github.com/itsmostafa/pdfextbook/internal/engine"
	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/itsmostafa/pdfextbook/internal/selector"
	"github.com/sirupsen/logrus"
)

// Config holds the run configuration
type Config struct {
	Input     string
	Selection outline.Selection
	Policy    outline.Policy

	Source   bookmarks.Source
	Engine   engine.Engine
	Selector selector.Selector
	Prompter selector.Prompter

	// Prefix is the output path prefix for batch extraction
	Prefix string
	// KeepGoing continues a batch past failed extractions
	KeepGoing bool
	// MaxFilenameLen bounds suggested output filenames (0 = default)
	MaxFilenameLen int

	// Output receives the JSON bookmark listing. Status receives the header,
	// progress and notices so the listing stays machine-readable.
	Output io.Writer
	Status io.Writer
	Log    *logrus.Logger
}

func (cfg *Config) defaults() {
	// Default output to stdout
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Status == nil {
		cfg.Status = os.Stderr
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.Policy == "" {
		cfg.Policy = outline.PolicyLessOrEqual
	}
}

// Ranges dumps the bookmarks of cfg.Input and resolves the ones the
// selection keeps.
func Ranges(ctx context.Context, cfg Config) ([]outline.Range, error) {
	cfg.defaults()

	records, err := cfg.Source.Bookmarks(ctx, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("extracting bookmarks: %w", err)
	}

	ranges := outline.ResolveAll(records, cfg.Selection, cfg.Policy)
	cfg.Log.WithFields(logrus.Fields{
		"bookmarks": len(records),
		"matching":  len(ranges),
		"policy":    cfg.Policy,
	}).Debug("resolved bookmark ranges")
	return ranges, nil
}

// Run executes one extraction run
func Run(ctx context.Context, cfg Config) error {
	cfg.defaults()

	FormatHeader(cfg.Status, cfg)
	FormatStatus(cfg.Status, "Extracting bookmarks...")

	ranges, err := Ranges(ctx, cfg)
	if err != nil {
		return err
	}

	labels := outline.Labels(ranges)
	if err := WriteLabels(cfg.Output, labels); err != nil {
		return fmt.Errorf("writing bookmark list: %w", err)
	}

	if len(ranges) == 0 {
		FormatNotice(cfg.Status, "No bookmarks match the selected level")
		return nil
	}

	if cfg.Selection.Batch() {
		return runBatch(ctx, cfg, ranges)
	}
	return runInteractive(ctx, cfg, labels)
}

// runInteractive lets the user pick one bookmark and an output path.
func runInteractive(ctx context.Context, cfg Config, labels []string) error {
	choice, err := cfg.Selector.Select(ctx, labels)
	if err != nil {
		return fmt.Errorf("selecting bookmark: %w", err)
	}
	if choice == "" {
		FormatNotice(cfg.Status, "No bookmark selected")
		return nil
	}

	r, err := outline.ParseLabel(choice)
	if err != nil {
		return err
	}

	def := outline.DefaultFilename(r.Title, cfg.MaxFilenameLen)
	answer, err := cfg.Prompter.Prompt(ctx, "Output file: ", def)
	if err != nil {
		if errors.Is(err, selector.ErrAborted) {
			FormatNotice(cfg.Status, "Extraction cancelled")
			return nil
		}
		return fmt.Errorf("asking for output file: %w", err)
	}

	dst, err := filepath.Abs(answer)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}

	return extractOne(ctx, cfg, r, dst)
}

// runBatch extracts every range to prefix+ordinal. It stops at the first
// failure unless KeepGoing is set, in which case all failures are joined.
func runBatch(ctx context.Context, cfg Config, ranges []outline.Range) error {
	FormatStatus(cfg.Status, "Extracting all levels")

	var errs []error
	for i, r := range ranges {
		FormatBatchItem(cfg.Status, i, len(ranges), outline.FormatLabel(r))

		dst := outline.BatchFilename(cfg.Prefix, i)
		if err := extractOne(ctx, cfg, r, dst); err != nil {
			if !cfg.KeepGoing {
				return err
			}
			cfg.Log.WithError(err).WithField("bookmark", r.Title).Warn("extraction failed, continuing")
			errs = append(errs, err)
		}
	}

	FormatBatchSummary(cfg.Status, len(ranges)-len(errs), len(errs))
	return errors.Join(errs...)
}

func extractOne(ctx context.Context, cfg Config, r outline.Range, dst string) error {
	FormatSaving(cfg.Status, dst, cfg.Engine.Name())
	if err := cfg.Engine.Extract(ctx, cfg.Input, r, dst); err != nil {
		FormatFailure(cfg.Status, err)
		return fmt.Errorf("extracting %q: %w", r.Title, err)
	}
	return nil
}

// Tree resolves the selected bookmarks and nests them by level.
func Tree(ctx context.Context, cfg Config) ([]*outline.Node, error) {
	ranges, err := Ranges(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return outline.BuildTree(ranges), nil
}
