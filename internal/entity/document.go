package entity

import (
	"github.com/ledgerline/gst-helper/constants"
)

// RawDocument is an uploaded invoice document for data transfer between
// layers. The bytes live in memory for the duration of one request and are
// never persisted in this form.
type RawDocument struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Format resolves the declared content type to a document format.
func (d RawDocument) Format() (constants.DocumentFormat, bool) {
	return constants.FormatForContentType(d.ContentType)
}
