// scaninvoice extracts invoice fields from files on disk and prints one JSON
// record per document to stdout. Nothing is persisted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/ocr"
	"github.com/ledgerline/gst-helper/internal/parse"
	"github.com/ledgerline/gst-helper/internal/pipeline"
)

type record struct {
	File        string                   `json:"file"`
	InvoiceType string                   `json:"invoice_type,omitempty"`
	Result      *entity.ExtractedInvoice `json:"result,omitempty"`
	Error       string                   `json:"error,omitempty"`
}

func main() {
	fs := ff.NewFlagSet("scaninvoice")
	var (
		typeFlag  = fs.StringLong("type", "expense", "invoice type tag: expense or income")
		gstRate   = fs.Float64Long("gst-rate", 0.10, "GST rate used when deriving GST from the total")
		dpi       = fs.IntLong("dpi", 300, "render resolution for PDF pages")
		lang      = fs.StringLong("lang", "eng", "tesseract language")
		tessBin   = fs.StringLong("tesseract", "tesseract", "tesseract binary")
		workers   = fs.IntLong("workers", 1, "parallel page recognition workers")
		maxPages  = fs.IntLong("max-pages", 10, "maximum PDF pages to process")
		timeout   = fs.DurationLong("timeout", 30*time.Second, "per-document extraction deadline")
		noEnhance = fs.BoolLong("no-enhance", "disable image preprocessing before recognition")
		pretty    = fs.BoolLong("pretty", "indent JSON output")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("GST_HELPER"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := fs.GetArgs()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "usage: scaninvoice [flags] <file-or-directory>")
		os.Exit(2)
	}
	invoiceType, ok := entity.ParseInvoiceType(*typeFlag)
	if !ok {
		fmt.Fprintln(os.Stderr, "error: --type must be expense or income")
		os.Exit(2)
	}

	// Results go to stdout, so keep logging on stderr and quiet.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := ocr.NewTesseractEngine(ocr.TesseractConfig{
		Bin:      *tessBin,
		Language: *lang,
	}, ocr.NewExecRunner(logger), logger)
	extractor := ocr.NewExtractor(ocr.Config{
		DPI:          *dpi,
		MaxPages:     *maxPages,
		PageWorkers:  *workers,
		Enhance:      !*noEnhance,
		UseTextLayer: true,
	}, engine, logger)
	parser := parse.NewParser(parse.Config{GSTRate: *gstRate}, logger)
	proc := pipeline.NewPipeline(extractor, parser, *timeout, logger)

	paths, err := collectPaths(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no supported files found")
		os.Exit(1)
	}

	failed := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		rec := processFile(ctx, proc, path, string(invoiceType))
		if rec.Error != "" {
			failed++
		}
		printRecord(rec, *pretty)
	}

	if len(paths) > 1 {
		fmt.Fprintf(os.Stderr, "processed %d files, %d ok, %d failed\n",
			len(paths), len(paths)-failed, failed)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func processFile(ctx context.Context, proc *pipeline.Pipeline, path, invoiceType string) record {
	rec := record{File: path, InvoiceType: invoiceType}
	data, err := os.ReadFile(path)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	contentType, _ := constants.ContentTypeForExt(filepath.Ext(path))
	result, err := proc.Process(ctx, entity.RawDocument{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Result = result
	return rec
}

// collectPaths resolves the argument to the list of documents to process:
// the file itself, or every supported non-hidden file under a directory.
func collectPaths(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}
	return paths, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

func printRecord(rec record, pretty bool) {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(rec, "", "  ")
	} else {
		out, err = json.Marshal(rec)
	}
	if err != nil {
		slog.Error("encode record", "file", rec.File, "error", err)
		return
	}
	fmt.Println(string(out))
}
