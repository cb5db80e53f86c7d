package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsmostafa/pdfextbook/internal/config"
	"github.com/itsmostafa/pdfextbook/internal/engine"
	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/spf13/cobra"
)

// testCommand returns a command with the shared flags that records its
// selection instead of running an extraction.
func testCommand(got *outline.Selection) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "test",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selection(cmd)
			*got = sel
			return err
		},
	}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	registerFlags(cmd)
	return cmd
}

func TestSelection(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    outline.Selection
		wantErr error
	}{
		{"no level flag", []string{"book.pdf"}, outline.Selection{}, nil},
		{"max level", []string{"-m", "2", "book.pdf"}, outline.Selection{Mode: outline.SelectMax, Level: 2}, nil},
		{"exact level", []string{"--exact-level", "3", "book.pdf"}, outline.Selection{Mode: outline.SelectExact, Level: 3}, nil},
		{"all levels", []string{"-a", "1", "--prefix", "out/ch", "book.pdf"}, outline.Selection{Mode: outline.SelectAll, Level: 1}, nil},
		{"explicit zero level", []string{"-m", "0", "book.pdf"}, outline.Selection{}, config.ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got outline.Selection
			cmd := testCommand(&got)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("selection = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlagGroups(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"max and exact", []string{"-m", "1", "-e", "2", "book.pdf"}},
		{"all and max", []string{"-a", "1", "--prefix", "x", "-m", "1", "book.pdf"}},
		{"all without prefix", []string{"-a", "1", "book.pdf"}},
		{"prefix without all", []string{"--prefix", "x", "book.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got outline.Selection
			cmd := testCommand(&got)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Errorf("Execute(%v) expected flag group error, got nil", tt.args)
			}
		})
	}
}

func TestNewRun(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PDFEXTBOOK_ENGINE", "")
	chdir(t, t.TempDir())

	run := func(args ...string) error {
		cmd := &cobra.Command{
			Use:  "test",
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := newRun(cmd, args[0])
				if err != nil {
					return err
				}
				if cfg.Input != args[0] {
					t.Errorf("Input = %q, want %q", cfg.Input, args[0])
				}
				if cfg.Output != cmd.OutOrStdout() || cfg.Status != cmd.ErrOrStderr() {
					t.Error("listing should go to stdout and status to stderr")
				}
				return nil
			},
		}
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		registerFlags(cmd)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	if err := run("book.pdf"); err != nil {
		t.Errorf("default options: unexpected error: %v", err)
	}
	if err := run("-E", "pdfcpu", "-p", "exact", "--selector", "builtin", "book.pdf"); err != nil {
		t.Errorf("valid options: unexpected error: %v", err)
	}
	if err := run("-E", "ghostscript", "book.pdf"); !errors.Is(err, engine.ErrUnknownEngine) {
		t.Errorf("unknown engine: error = %v, want ErrUnknownEngine", err)
	}
	if err := run("-p", "greater", "book.pdf"); err == nil {
		t.Error("unknown end page mode: expected error")
	}
	if err := run("--config", filepath.Join(t.TempDir(), "missing.yaml"), "book.pdf"); err == nil {
		t.Error("missing explicit config: expected error")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
