package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/tiff" // register TIFF decoder

	"github.com/ledgerline/gst-helper/internal/common"
)

func (e *Extractor) extractImage(ctx context.Context, data []byte) (Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: decoding image: %v", common.ErrDocumentUnreadable, err)
	}

	texts, err := e.recognizeAll(ctx, []image.Image{img})
	if err != nil {
		return Result{}, err
	}
	return Result{Text: texts[0], Pages: 1, Method: "image-ocr"}, nil
}
