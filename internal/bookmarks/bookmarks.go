// Package bookmarks dumps a document's outline as ordered records.
package bookmarks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// ErrUnknownSource is returned by New for an unrecognized source name.
var ErrUnknownSource = errors.New("unknown bookmark source")

// Source name constants
const (
	SourcePdftk  = "pdftk"
	SourcePdfcpu = "pdfcpu"
)

// Source returns the outline records of a document in document order.
type Source interface {
	Name() string
	Bookmarks(ctx context.Context, path string) ([]outline.Record, error)
}

// New creates a Source by name. bin overrides the pdftk executable.
func New(name, bin string, log *logrus.Logger) (Source, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	switch name {
	case SourcePdftk:
		if bin == "" {
			bin = "pdftk"
		}
		return &PdftkSource{Bin: bin, log: log}, nil
	case SourcePdfcpu:
		return &PdfcpuSource{log: log}, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid options: pdftk, pdfcpu)", ErrUnknownSource, name)
	}
}

// PdftkSource runs "pdftk FILE dump_data_utf8" and parses its output.
type PdftkSource struct {
	Bin string
	log *logrus.Logger
}

// Name returns the source name
func (s *PdftkSource) Name() string {
	return SourcePdftk
}

// Bookmarks runs pdftk once and parses the Bookmark* fields of its dump.
func (s *PdftkSource) Bookmarks(ctx context.Context, path string) ([]outline.Record, error) {
	s.log.WithField("cmd", s.Bin+" "+path+" dump_data_utf8").Debug("dumping bookmarks")

	cmd := exec.CommandContext(ctx, s.Bin, path, "dump_data_utf8")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftk dump_data_utf8: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdftk dump_data_utf8: %w", err)
	}

	records, err := outline.ParseDump(&stdout)
	if err != nil {
		return nil, err
	}
	s.log.WithField("count", len(records)).Debug("parsed bookmarks")
	return records, nil
}

// PdfcpuSource reads the outline in-process with pdfcpu.
type PdfcpuSource struct {
	log *logrus.Logger
}

// Name returns the source name
func (s *PdfcpuSource) Name() string {
	return SourcePdfcpu
}

// Bookmarks reads the outline tree and flattens it depth-first.
func (s *PdfcpuSource) Bookmarks(ctx context.Context, path string) ([]outline.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// A document without an outline yields no bookmarks and no error.
	bms, err := api.Bookmarks(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks: %w", err)
	}

	records := Flatten(bms)
	s.log.WithField("count", len(records)).Debug("read bookmarks")
	return records, nil
}

// Flatten linearizes a bookmark tree in document order. Top-level bookmarks
// get level 1. Pages are kept as pdfcpu reports them, so a bookmark without
// a page destination keeps page 0 just as the pdftk dump reports it.
func Flatten(bms []pdfcpu.Bookmark) []outline.Record {
	var records []outline.Record
	var walk func([]pdfcpu.Bookmark, int)
	walk = func(children []pdfcpu.Bookmark, level int) {
		for _, bm := range children {
			records = append(records, outline.Record{
				Title:     bm.Title,
				Level:     level,
				StartPage: bm.PageFrom,
			})
			if len(bm.Kids) > 0 {
				walk(bm.Kids, level+1)
			}
		}
	}
	walk(bms, 1)
	return records
}
