package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
)

const (
	defaultDPI = 300
	minDPI     = 200

	// pageBreak separates page texts in a multi-page result.
	pageBreak = "\n\f\n"
)

type Config struct {
	DPI          int  // rasterization DPI for PDF pages, default 300, clamped to minDPI
	MaxPages     int  // 0 = no limit
	PageWorkers  int  // concurrent page recognitions, default 1
	Enhance      bool // preprocess pages before recognition
	UseTextLayer bool // prefer embedded PDF text when present
}

type Result struct {
	Text         string
	Pages        int
	SourceFormat constants.DocumentFormat
	Method       string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Duration     time.Duration
	Warnings     []string
}

type Extractor struct {
	cfg    Config
	engine Engine
	logger *slog.Logger
}

func NewExtractor(cfg Config, engine Engine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DPI <= 0 {
		cfg.DPI = defaultDPI
	}
	if cfg.DPI < minDPI {
		logger.Warn("configured DPI below quality floor, clamping", "dpi", cfg.DPI, "min_dpi", minDPI)
		cfg.DPI = minDPI
	}
	if cfg.PageWorkers < 1 {
		cfg.PageWorkers = 1
	}
	return &Extractor{cfg: cfg, engine: engine, logger: logger}
}

// Extract picks a strategy based on the declared content type. Recognized
// text may be empty on success; a document that produces no text is not an
// error.
func (e *Extractor) Extract(ctx context.Context, doc entity.RawDocument) (Result, error) {
	start := time.Now()

	format, ok := doc.Format()
	if !ok {
		e.logger.Error("unsupported document type", "content_type", doc.ContentType, "filename", doc.Filename)
		return Result{}, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, doc.ContentType)
	}
	if len(doc.Data) == 0 {
		return Result{}, fmt.Errorf("%w: empty document", common.ErrDocumentUnreadable)
	}

	e.logger.Debug("starting text extraction",
		"filename", doc.Filename, "format", format, "bytes", len(doc.Data))

	var res Result
	var err error
	switch format {
	case constants.FormatPDF:
		res, err = e.extractPDF(ctx, doc.Data)
	default:
		res, err = e.extractImage(ctx, doc.Data)
	}
	res.SourceFormat = format
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	res.Text = Normalize(res.Text)
	e.logger.Info("text extraction ok",
		"filename", doc.Filename,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
