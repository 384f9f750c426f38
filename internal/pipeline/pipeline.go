package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/ocr"
	"github.com/ledgerline/gst-helper/internal/parse"
)

const defaultTimeout = 30 * time.Second

// TextExtractor turns a raw document into recognized text. *ocr.Extractor is
// the production implementation.
type TextExtractor interface {
	Extract(ctx context.Context, doc entity.RawDocument) (ocr.Result, error)
}

// Pipeline coordinates text extraction and field parsing for one document.
// It keeps no state between requests and is safe for concurrent use.
type Pipeline struct {
	text    TextExtractor
	parser  *parse.Parser
	timeout time.Duration
	logger  *slog.Logger
}

func NewPipeline(text TextExtractor, parser *parse.Parser, timeout time.Duration, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Pipeline{text: text, parser: parser, timeout: timeout, logger: logger}
}

// Process extracts a complete invoice record from one document, bounded by
// the pipeline timeout. On failure it reports exactly one failure kind and no
// partial record; a failed document is never retried internally.
func (p *Pipeline) Process(ctx context.Context, doc entity.RawDocument) (*entity.ExtractedInvoice, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	res, err := p.text.Extract(ctx, doc)
	if err != nil {
		err = classify(err)
		p.logger.Error("pipeline.ocr.failed", "filename", doc.Filename, "error", err)
		return nil, err
	}
	p.logger.Info("pipeline.ocr.ok",
		"filename", doc.Filename,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
	)

	inv := p.parser.ParseInvoice(res.Text)
	if err := parse.ValidateInvoice(inv); err != nil {
		p.logger.Error("pipeline.validate.failed", "filename", doc.Filename, "error", err)
		return nil, fmt.Errorf("%w: invoice record: %v", common.ErrInternal, err)
	}

	p.logger.Info("pipeline.parse.ok",
		"filename", doc.Filename,
		"supplier", inv.Supplier,
		"invoice_number", inv.InvoiceNumber,
		"invoice_date", inv.InvoiceDate,
		"is_system_date", inv.IsSystemDate,
		"total", inv.TotalAmount,
		"gst", inv.GSTAmount,
		"gst_derived", inv.GSTDerived,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &inv, nil
}

// classify maps context expiry to the timeout failure kind; other errors
// already carry theirs.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrExtractionTimeout, err)
	}
	return err
}
