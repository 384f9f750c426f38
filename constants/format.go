package constants

import "strings"

// DocumentFormat classifies an uploaded document for the OCR adapter.
type DocumentFormat string

const (
	FormatPDF   DocumentFormat = "PDF"
	FormatImage DocumentFormat = "IMAGE"
)

// AllowedExtensions holds the accepted file extensions for invoice uploads.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"tif":  {},
	"tiff": {},
}

// allowedContentTypes maps accepted MIME types to their document format.
var allowedContentTypes = map[string]DocumentFormat{
	"application/pdf": FormatPDF,
	"image/jpeg":      FormatImage,
	"image/png":       FormatImage,
	"image/tiff":      FormatImage,
}

// extContentTypes maps normalized extensions to the MIME type reported for them.
var extContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// NormalizeContentType lowercases a MIME type and strips any parameters.
func NormalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// FormatForContentType resolves a MIME type to a document format.
func FormatForContentType(ct string) (DocumentFormat, bool) {
	format, ok := allowedContentTypes[NormalizeContentType(ct)]
	return format, ok
}

// ContentTypeForExt resolves a file extension to its MIME type.
func ContentTypeForExt(ext string) (string, bool) {
	ct, ok := extContentTypes[NormalizeExt(ext)]
	return ct, ok
}
