package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/docsorter/internal/common"
	"github.com/joseph-ayodele/docsorter/internal/core/extract"
	"github.com/joseph-ayodele/docsorter/internal/core/ocr"
	"github.com/joseph-ayodele/docsorter/internal/core/textnorm"
	"github.com/joseph-ayodele/docsorter/internal/rules"
)

// TextSource reads a PDF's text layer. Failures are soft: it returns "".
type TextSource interface {
	Text(ctx context.Context, path string, maxPages int) string
}

// OCRSource recognizes the leading pages of a PDF. A non-nil error means the
// OCR tools are not configured; recognition failures return "" and nil.
type OCRSource interface {
	FirstPages(ctx context.Context, path string, maxPages int) (string, error)
}

// Analysis is the merged extraction outcome for one PDF.
type Analysis struct {
	extract.Result
	UsedOCR  bool  // the OCR fallback ran
	OCRError error // tool configuration failure reported by the OCR source, if any
}

// Processor coordinates native text extraction and the OCR fallback.
type Processor struct {
	logger   *slog.Logger
	native   TextSource
	ocr      OCRSource
	maxPages int
}

func NewProcessor(native TextSource, ocrSrc OCRSource, maxPages int, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPages <= 0 {
		maxPages = 2
	}
	return &Processor{logger: logger, native: native, ocr: ocrSrc, maxPages: maxPages}
}

// Analyze extracts type, date and number from the PDF at path. The native
// result is accepted when complete; otherwise OCR text is analyzed and merged.
func (p *Processor) Analyze(ctx context.Context, path string, groups []rules.Group) Analysis {
	native := extract.Analyze(textnorm.Normalize(p.native.Text(ctx, path, p.maxPages)), groups)
	if native.Complete() || p.ocr == nil {
		return Analysis{Result: native}
	}

	logger := p.logger.With("run_id", common.RunIDFromContext(ctx), "file", common.FileFromContext(ctx))
	logger.Debug("native extraction inconclusive, trying ocr",
		"path", path,
		"doc_type", native.DocType,
		"has_date", native.DateToken != "",
		"has_number", native.NumberToken != "",
	)

	text, err := p.ocr.FirstPages(ctx, path, p.maxPages)
	if err != nil {
		if !errors.Is(err, ocr.ErrEngineNotFound) && !errors.Is(err, ocr.ErrRasterizerNotFound) {
			logger.Warn("ocr returned unexpected error", "path", path, "error", err)
		}
		return Analysis{Result: native, UsedOCR: true, OCRError: err}
	}

	ocrRes := extract.Analyze(textnorm.Normalize(text), groups)
	merged := extract.Merge(native, ocrRes)
	logger.Debug("ocr merged",
		"path", path,
		"doc_type", merged.DocType,
		"date", merged.DateToken,
		"number", merged.NumberToken,
	)
	return Analysis{Result: merged, UsedOCR: true}
}
