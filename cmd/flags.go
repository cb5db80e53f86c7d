package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsmostafa/pdfextbook/internal/bookmarks"
	"github.com/itsmostafa/pdfextbook/internal/config"
	"github.com/itsmostafa/pdfextbook/internal/engine"
	"github.com/itsmostafa/pdfextbook/internal/extract"
	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/itsmostafa/pdfextbook/internal/selector"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("196"))

var allLevels int
var maxLevel int
var exactLevel int
var prefix string
var engineName string
var endPageMode string
var bookmarkSource string
var selectorName string
var keepGoing bool
var configPath string
var verbose bool

// registerFlags defines the flags shared by every command as persistent
// flags on the root.
func registerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	// Level selection (mutually exclusive)
	flags.IntVarP(&allLevels, "all-levels", "a", 0, "Extract all bookmarks of a given level (requires --prefix)")
	flags.IntVarP(&maxLevel, "max-level", "m", 0, "Max bookmark level the user can choose from (levels start from 1)")
	flags.IntVarP(&exactLevel, "exact-level", "e", 0, "Exact bookmark level the user can choose from (levels start from 1)")
	flags.StringVar(&prefix, "prefix", "", "Output path prefix for --all-levels; files are named PREFIX0.pdf, PREFIX1.pdf, ...")
	cmd.MarkFlagsMutuallyExclusive("all-levels", "max-level", "exact-level")
	cmd.MarkFlagsRequiredTogether("all-levels", "prefix")

	defaults := config.Default()
	flags.StringVarP(&engineName, "extraction-engine", "E", defaults.Engine, "Engine used to extract pages (pdftk, qpdf, pdfjam, pdfcpu)")
	flags.StringVarP(&endPageMode, "end-page-mode", "p", defaults.EndPageMode,
		"How to find the end page of a bookmark: exact ends at the next bookmark of the same level, "+
			"less-or-equal at the next bookmark of the same or a higher level")
	flags.StringVar(&bookmarkSource, "bookmark-source", defaults.BookmarkSource, "How bookmarks are read (pdftk, pdfcpu)")
	flags.StringVar(&selectorName, "selector", defaults.Selector, "Interactive selector (fzf, builtin)")
	flags.BoolVar(&keepGoing, "keep-going", false, "With --all-levels, continue past failed extractions and report them at the end")
	flags.StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/pdfextbook/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log external commands and resolution details to stderr")
}

// loadConfig merges the config file and environment with any flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("extraction-engine") {
		cfg.Engine = engineName
	}
	if flags.Changed("end-page-mode") {
		cfg.EndPageMode = endPageMode
	}
	if flags.Changed("bookmark-source") {
		cfg.BookmarkSource = bookmarkSource
	}
	if flags.Changed("selector") {
		cfg.Selector = selectorName
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// selection builds the level filter from whichever level flag was given.
func selection(cmd *cobra.Command) (outline.Selection, error) {
	flags := cmd.Flags()
	for _, f := range []struct {
		name  string
		mode  outline.SelectMode
		level int
	}{
		{"all-levels", outline.SelectAll, allLevels},
		{"max-level", outline.SelectMax, maxLevel},
		{"exact-level", outline.SelectExact, exactLevel},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		if err := config.ValidateLevel(f.name, f.level); err != nil {
			return outline.Selection{}, err
		}
		return outline.Selection{Mode: f.mode, Level: f.level}, nil
	}
	return outline.Selection{}, nil
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)
	return log
}

// newRun validates every option and builds the collaborators for a run.
// Configuration errors surface here, before any bookmark is read.
func newRun(cmd *cobra.Command, input string) (extract.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return extract.Config{}, err
	}
	log := newLogger(cfg.LogLevel)

	sel, err := selection(cmd)
	if err != nil {
		return extract.Config{}, err
	}

	policy, err := outline.ValidatePolicy(cfg.EndPageMode)
	if err != nil {
		return extract.Config{}, err
	}

	eng, err := engine.New(cfg.Engine, engine.Binaries{
		engine.NamePdftk:  cfg.Binaries.Pdftk,
		engine.NameQpdf:   cfg.Binaries.Qpdf,
		engine.NamePdfjam: cfg.Binaries.Pdfjam,
	}, log)
	if err != nil {
		return extract.Config{}, err
	}

	src, err := bookmarks.New(cfg.BookmarkSource, cfg.Binaries.Pdftk, log)
	if err != nil {
		return extract.Config{}, err
	}

	picker, err := selector.New(cfg.Selector, selector.Options{
		FzfBin:  cfg.Binaries.Fzf,
		FzfArgs: cfg.FzfArgs,
		Log:     log,
	})
	if err != nil {
		return extract.Config{}, err
	}

	log.WithFields(logrus.Fields{
		"engine":   eng.Name(),
		"source":   src.Name(),
		"selector": cfg.Selector,
		"policy":   policy,
	}).Debug("configured run")

	return extract.Config{
		Input:          input,
		Selection:      sel,
		Policy:         policy,
		Source:         src,
		Engine:         eng,
		Selector:       picker,
		Prompter:       &selector.TextPrompter{},
		Prefix:         prefix,
		KeepGoing:      keepGoing,
		MaxFilenameLen: cfg.MaxFilenameLen,
		Output:         cmd.OutOrStdout(),
		Status:         cmd.ErrOrStderr(),
		Log:            log,
	}, nil
}
