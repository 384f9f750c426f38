// Command runocr recognizes the text of one invoice document and prints it to
// stdout. It is the debugging tool for the recognition stage: no field
// extraction, no persistence.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/ocr"
)

func main() {
	_ = godotenv.Load()

	// recognized text goes to stdout, logs to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <file>")
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("reading file", "path", path, "error", err)
		os.Exit(1)
	}
	contentType, ok := constants.ContentTypeForExt(filepath.Ext(path))
	if !ok {
		logger.Error("unsupported file extension", "path", path)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	engine := ocr.NewTesseractEngine(ocr.TesseractConfig{
		Bin:         cfg.OCR.TesseractBin,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PageSegMode,
	}, ocr.NewExecRunner(logger), logger)
	extractor := ocr.NewExtractor(ocr.Config{
		DPI:          cfg.OCR.DPI,
		MaxPages:     cfg.OCR.MaxPages,
		PageWorkers:  cfg.OCR.PageWorkers,
		Enhance:      cfg.OCR.Enhance,
		UseTextLayer: cfg.OCR.UseTextLayer,
	}, engine, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := extractor.Extract(ctx, entity.RawDocument{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		logger.Error("text extraction failed",
			"error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(res.Text)
}
