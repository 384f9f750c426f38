package ocr

import (
	"context"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"
)

// recognizeAll runs the engine over every page and returns the texts in page
// order regardless of completion order. A single page failure fails the
// whole document.
func (e *Extractor) recognizeAll(ctx context.Context, pages []image.Image) ([]string, error) {
	texts := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.PageWorkers)
	for i, page := range pages {
		g.Go(func() error {
			img := page
			if e.cfg.Enhance {
				img = enhanceForOCR(img)
			}
			text, err := e.engine.RecognizePage(gctx, img)
			if err != nil {
				return fmt.Errorf("recognizing page %d: %w", i+1, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
