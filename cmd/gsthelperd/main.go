package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/export"
	"github.com/ledgerline/gst-helper/internal/ocr"
	"github.com/ledgerline/gst-helper/internal/parse"
	"github.com/ledgerline/gst-helper/internal/pipeline"
	"github.com/ledgerline/gst-helper/internal/repository"
	"github.com/ledgerline/gst-helper/internal/server"
	"github.com/ledgerline/gst-helper/internal/storage"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	invoices, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer invoices.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = invoices.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewLocalStorage(cfg.Storage.Dir, logger)
	if err != nil {
		logger.Error("failed to init storage", "dir", cfg.Storage.Dir, "error", err)
		os.Exit(1)
	}

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
	parser := parse.NewParser(parse.Config{GSTRate: cfg.Extract.GSTRate}, logger)
	proc := pipeline.NewPipeline(extractor, parser, cfg.Extract.Timeout, logger)

	exporter := export.NewService(invoices, logger)
	srv := server.NewServer(cfg.Server, proc, invoices, files, exporter, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Handler(),
	}

	logger.Info("gst-helper listening", "addr", cfg.Server.Addr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func newLogger(cfg common.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
