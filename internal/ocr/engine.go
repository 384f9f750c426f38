package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ledgerline/gst-helper/internal/common"
)

// Engine recognizes the text on a single page image. Implementations must be
// safe for concurrent use: pages of one document may be recognized in
// parallel.
type Engine interface {
	RecognizePage(ctx context.Context, img image.Image) (string, error)
}

// TesseractConfig configures the tesseract-backed engine.
type TesseractConfig struct {
	Bin         string // binary name or absolute path; if empty -> "tesseract"
	Language    string // default "eng"
	TessdataDir string
	PSM         int // e.g. 6 is good for a uniform block of text; 0 = tesseract default
	OEM         int // 1 = LSTM; 0 = tesseract default
}

// TesseractEngine shells out to the tesseract CLI for page recognition.
type TesseractEngine struct {
	cfg    TesseractConfig
	runner Runner
	logger *slog.Logger
}

func NewTesseractEngine(cfg TesseractConfig, runner Runner, logger *slog.Logger) *TesseractEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = NewExecRunner(logger)
	}
	if cfg.Bin == "" {
		cfg.Bin = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractEngine{cfg: cfg, runner: runner, logger: logger}
}

// RecognizePage renders the page to a temporary PNG and runs
// tesseract <file> stdout -l <lang>. Empty output is a valid result.
func (t *TesseractEngine) RecognizePage(ctx context.Context, img image.Image) (string, error) {
	tmpDir, err := os.MkdirTemp("", "gst-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			t.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	pagePath := filepath.Join(tmpDir, "page.png")
	f, err := os.Create(pagePath)
	if err != nil {
		return "", fmt.Errorf("creating page file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encoding page: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing page file: %w", err)
	}

	args := []string{pagePath, "stdout", "-l", t.cfg.Language}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	if t.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(t.cfg.OEM))
	}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}

	out, errb, err := t.runner.Run(ctx, t.cfg.Bin, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("tesseract: %w", ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %q not found in PATH", common.ErrEngineUnavailable, t.cfg.Bin)
		}
		return "", fmt.Errorf("%w: tesseract: %v: %s", common.ErrEngineUnavailable, err, truncate(string(errb), 512))
	}
	return string(out), nil
}
