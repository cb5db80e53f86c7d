package engine

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/itsmostafa/pdfextbook/internal/outline"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		engine    string
		wantName  string
		wantError bool
	}{
		{"pdftk engine", "pdftk", "pdftk", false},
		{"qpdf engine", "qpdf", "qpdf", false},
		{"pdfjam engine", "pdfjam", "pdfjam", false},
		{"pdfcpu engine", "pdfcpu", "pdfcpu", false},
		{"unknown engine", "ghostscript", "", true},
		{"empty name", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.engine, nil, nil)

			if tt.wantError {
				if !errors.Is(err, ErrUnknownEngine) {
					t.Errorf("New() error = %v, want ErrUnknownEngine", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}

			if e.Name() != tt.wantName {
				t.Errorf("Engine.Name() = %q, want %q", e.Name(), tt.wantName)
			}
		})
	}
}

func TestCommandEngineArgs(t *testing.T) {
	closed := outline.Range{Title: "Ch", Start: 3, End: 7}
	open := outline.Range{Title: "Ch", Start: 3, End: outline.Open}

	tests := []struct {
		engine string
		r      outline.Range
		want   []string
	}{
		{"pdftk", closed, []string{"in.pdf", "cat", "3-7", "output", "out.pdf"}},
		{"pdftk", open, []string{"in.pdf", "cat", "3-r1", "output", "out.pdf"}},
		{"qpdf", closed, []string{"--empty", "--pages", "in.pdf", "3-7", "--", "out.pdf"}},
		{"qpdf", open, []string{"--empty", "--pages", "in.pdf", "3-r1", "--", "out.pdf"}},
		{"pdfjam", closed, []string{"in.pdf", "3-7", "-o", "out.pdf"}},
		{"pdfjam", open, []string{"in.pdf", "3-", "-o", "out.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.engine+" "+tt.r.Pages(), func(t *testing.T) {
			e, err := New(tt.engine, nil, nil)
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			got := e.(*CommandEngine).Args("in.pdf", tt.r, "out.pdf")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinariesOverride(t *testing.T) {
	e, err := New("qpdf", Binaries{NameQpdf: "/opt/qpdf/bin/qpdf"}, nil)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if got := e.(*CommandEngine).bin; got != "/opt/qpdf/bin/qpdf" {
		t.Errorf("bin = %q, want override", got)
	}

	e, _ = New("pdftk", Binaries{NameQpdf: "/opt/qpdf/bin/qpdf"}, nil)
	if got := e.(*CommandEngine).bin; got != "pdftk" {
		t.Errorf("bin = %q, want default pdftk", got)
	}
}

func TestCommandEngineExtract(t *testing.T) {
	r := outline.Range{Start: 1, End: 2}

	t.Run("success", func(t *testing.T) {
		bin, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true not available")
		}
		e, _ := New("qpdf", Binaries{NameQpdf: bin}, nil)
		if err := e.Extract(context.Background(), "in.pdf", r, "out.pdf"); err != nil {
			t.Errorf("Extract() unexpected error: %v", err)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		bin, err := exec.LookPath("false")
		if err != nil {
			t.Skip("false not available")
		}
		e, _ := New("pdftk", Binaries{NamePdftk: bin}, nil)
		err = e.Extract(context.Background(), "in.pdf", r, "out.pdf")
		if err == nil {
			t.Fatal("Extract() expected error, got nil")
		}
		if !strings.Contains(err.Error(), "pdftk failed on pages 1-2") {
			t.Errorf("error %q should name the engine and pages", err)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		e, _ := New("pdfjam", Binaries{NamePdfjam: "pdfextbook-no-such-binary"}, nil)
		if err := e.Extract(context.Background(), "in.pdf", r, "out.pdf"); err == nil {
			t.Error("Extract() expected error for missing binary")
		}
	})
}

func TestPdfcpuSelection(t *testing.T) {
	e := NewPdfcpuEngine(nil)
	if got := e.Selection(outline.Range{Start: 4, End: 9}); !reflect.DeepEqual(got, []string{"4-9"}) {
		t.Errorf("Selection() = %q, want [4-9]", got)
	}
	if got := e.Selection(outline.Range{Start: 4}); !reflect.DeepEqual(got, []string{"4-"}) {
		t.Errorf("Selection() = %q, want [4-]", got)
	}
}

func TestPdfcpuExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewPdfcpuEngine(nil)
	if err := e.Extract(ctx, "in.pdf", outline.Range{Start: 1}, "out.pdf"); !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}
