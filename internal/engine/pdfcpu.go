package engine

import (
	"context"
	"fmt"

	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// PdfcpuEngine extracts pages in-process with pdfcpu.
type PdfcpuEngine struct {
	conf *model.Configuration
	log  *logrus.Logger
}

// NewPdfcpuEngine creates a PdfcpuEngine with pdfcpu's default configuration.
func NewPdfcpuEngine(log *logrus.Logger) *PdfcpuEngine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	conf := model.NewDefaultConfiguration()
	// Page trimming does not need full PDF validation.
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuEngine{conf: conf, log: log}
}

// Name returns the engine name
func (e *PdfcpuEngine) Name() string {
	return string(NamePdfcpu)
}

// Selection returns the pdfcpu page selection for r. pdfcpu reads "S-" as
// page S through the last page.
func (e *PdfcpuEngine) Selection(r outline.Range) []string {
	return []string{r.Pages()}
}

// Extract trims src down to the selected pages and writes the result to dst.
func (e *PdfcpuEngine) Extract(ctx context.Context, src string, r outline.Range, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"engine": NamePdfcpu,
		"pages":  r.Pages(),
		"dst":    dst,
	}).Debug("running extraction")

	if err := api.TrimFile(src, dst, e.Selection(r), e.conf); err != nil {
		return fmt.Errorf("pdfcpu failed on pages %s: %w", r.Pages(), err)
	}
	return nil
}
