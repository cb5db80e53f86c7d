// Package engine extracts inclusive page ranges from a document into a new
// file, either by driving an external tool or in-process with pdfcpu.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/sirupsen/logrus"
)

// ErrUnknownEngine is returned by New for an unrecognized engine name.
var ErrUnknownEngine = errors.New("unknown extraction engine")

// Name identifies an extraction engine.
type Name string

const (
	NamePdftk  Name = "pdftk"
	NameQpdf   Name = "qpdf"
	NamePdfjam Name = "pdfjam"
	NamePdfcpu Name = "pdfcpu"
)

// DefaultName is the engine used when none is configured.
const DefaultName = NameQpdf

// Engine defines the interface for page-extraction backends
type Engine interface {
	// Name returns the engine name for display purposes
	Name() string

	// Extract writes pages r.Start..r.End of src to dst. An open range runs
	// through the last page of src.
	Extract(ctx context.Context, src string, r outline.Range, dst string) error
}

// Binaries maps an engine name to the executable to run. Missing entries
// fall back to the engine name itself.
type Binaries map[Name]string

func (b Binaries) lookup(n Name) string {
	if bin := b[n]; bin != "" {
		return bin
	}
	return string(n)
}

// New creates an Engine for the given name.
func New(name string, bins Binaries, log *logrus.Logger) (Engine, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch Name(name) {
	case NamePdftk:
		return &CommandEngine{name: NamePdftk, bin: bins.lookup(NamePdftk), args: pdftkArgs, log: log}, nil
	case NameQpdf:
		return &CommandEngine{name: NameQpdf, bin: bins.lookup(NameQpdf), args: qpdfArgs, log: log}, nil
	case NamePdfjam:
		return &CommandEngine{name: NamePdfjam, bin: bins.lookup(NamePdfjam), args: pdfjamArgs, log: log}, nil
	case NamePdfcpu:
		return NewPdfcpuEngine(log), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid options: pdftk, qpdf, pdfjam, pdfcpu)", ErrUnknownEngine, name)
	}
}

// argsFunc builds the command line for one extraction.
type argsFunc func(src string, r outline.Range, dst string) []string

// CommandEngine runs an external tool once per extraction.
type CommandEngine struct {
	name Name
	bin  string
	args argsFunc
	log  *logrus.Logger
}

// Name returns the engine name
func (e *CommandEngine) Name() string {
	return string(e.name)
}

// Args returns the arguments passed to the tool for one extraction.
func (e *CommandEngine) Args(src string, r outline.Range, dst string) []string {
	return e.args(src, r, dst)
}

// Extract runs the tool and waits for it. A non-zero exit is an error
// carrying the tool's output.
func (e *CommandEngine) Extract(ctx context.Context, src string, r outline.Range, dst string) error {
	args := e.Args(src, r, dst)
	e.log.WithFields(logrus.Fields{
		"engine": e.name,
		"cmd":    e.bin + " " + strings.Join(args, " "),
	}).Debug("running extraction")

	cmd := exec.CommandContext(ctx, e.bin, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg != "" {
			return fmt.Errorf("%s failed on pages %s: %w: %s", e.name, r.Pages(), err, msg)
		}
		return fmt.Errorf("%s failed on pages %s: %w", e.name, r.Pages(), err)
	}

	return nil
}

// pdftkArgs: pages counted from the end are prefixed with r, so r1 is the last page.
func pdftkArgs(src string, r outline.Range, dst string) []string {
	return []string{src, "cat", pageSpec(r, "r1"), "output", dst}
}

// qpdfArgs: qpdf also uses r1 for the last page.
func qpdfArgs(src string, r outline.Range, dst string) []string {
	return []string{"--empty", "--pages", src, pageSpec(r, "r1"), "--", dst}
}

// pdfjamArgs: pdfjam reads an empty end as the last page.
func pdfjamArgs(src string, r outline.Range, dst string) []string {
	return []string{src, pageSpec(r, ""), "-o", dst}
}

// pageSpec formats r as "S-E", writing last in place of an open end.
func pageSpec(r outline.Range, last string) string {
	if r.IsOpen() {
		return fmt.Sprintf("%d-%s", r.Start, last)
	}
	return r.Pages()
}
