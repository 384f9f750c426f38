package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ledgerline/gst-helper/internal/common"
)

// minTextLayerChars is the least amount of embedded text across all pages
// that lets us skip rasterization entirely.
const minTextLayerChars = 64

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (Result, error) {
	// structural preflight before handing the bytes to the renderer
	pageCount, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return Result{}, fmt.Errorf("%w: pdf preflight: %v", common.ErrDocumentUnreadable, err)
	}
	if pageCount == 0 {
		return Result{}, fmt.Errorf("%w: pdf has no pages", common.ErrDocumentUnreadable)
	}

	var warns []string
	if e.cfg.MaxPages > 0 && pageCount > e.cfg.MaxPages {
		warns = append(warns, fmt.Sprintf("pdf truncated from %d to %d pages", pageCount, e.cfg.MaxPages))
		e.logger.Warn("pdf exceeds page limit, truncating", "pages", pageCount, "max_pages", e.cfg.MaxPages)
		pageCount = e.cfg.MaxPages
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: opening pdf: %v", common.ErrDocumentUnreadable, err)
	}
	defer doc.Close()

	if e.cfg.UseTextLayer {
		if text, ok := e.pdfTextLayer(doc, pageCount); ok {
			return Result{Text: text, Pages: pageCount, Method: "pdf-text", Warnings: warns}, nil
		}
	}

	// rendering shares one mupdf context, so pages come out sequentially;
	// recognition is the slow part and runs in parallel
	pages := make([]image.Image, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImageDPI(i, float64(e.cfg.DPI))
		if err != nil {
			return Result{}, fmt.Errorf("%w: rendering page %d: %v", common.ErrDocumentUnreadable, i+1, err)
		}
		pages[i] = img
	}

	texts, err := e.recognizeAll(ctx, pages)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Text:     strings.Join(texts, pageBreak),
		Pages:    pageCount,
		Method:   "pdf-ocr",
		Warnings: warns,
	}, nil
}

// pdfTextLayer collects the embedded text of the first pageCount pages and
// reports whether there is enough of it to trust.
func (e *Extractor) pdfTextLayer(doc *fitz.Document, pageCount int) (string, bool) {
	parts := make([]string, 0, pageCount)
	total := 0
	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			e.logger.Debug("pdf text layer unavailable", "page", i+1, "error", err)
			return "", false
		}
		total += len(strings.TrimSpace(text))
		parts = append(parts, text)
	}
	if total < minTextLayerChars {
		return "", false
	}
	return strings.Join(parts, pageBreak), true
}
