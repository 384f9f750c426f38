package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/gst-helper/constants"
)

// InvoiceType classifies an invoice as money out or money in.
type InvoiceType string

const (
	InvoiceTypeExpense InvoiceType = "expense"
	InvoiceTypeIncome  InvoiceType = "income"
)

// ParseInvoiceType resolves a caller-supplied type string. Empty input means
// expense. The boolean reports whether the input was recognized.
func ParseInvoiceType(s string) (InvoiceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(InvoiceTypeExpense):
		return InvoiceTypeExpense, true
	case string(InvoiceTypeIncome):
		return InvoiceTypeIncome, true
	}
	return InvoiceTypeExpense, false
}

// ExtractedInvoice is the result of one extraction run, for data transfer
// between layers. Every field is always present: fields the heuristics could
// not resolve hold their documented defaults rather than being omitted.
type ExtractedInvoice struct {
	Supplier      string  `json:"supplier"`
	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"` // YYYY-MM-DD
	IsSystemDate  bool    `json:"is_system_date"`
	TotalAmount   float64 `json:"total_amount"`
	GSTAmount     float64 `json:"gst_amount"`
	NetAmount     float64 `json:"net_amount"`
	GSTDerived    bool    `json:"gst_derived"`
	RawText       string  `json:"raw_text"`
}

// Invoice represents a stored invoice for data transfer between layers.
type Invoice struct {
	ID            uuid.UUID               `json:"id"`
	Supplier      string                  `json:"supplier"`
	InvoiceNumber string                  `json:"invoice_number"`
	InvoiceDate   time.Time               `json:"invoice_date"`
	IsSystemDate  bool                    `json:"is_system_date"`
	TotalAmount   float64                 `json:"total_amount"`
	GSTAmount     float64                 `json:"gst_amount"`
	NetAmount     float64                 `json:"net_amount"`
	InvoiceType   InvoiceType             `json:"invoice_type"`
	Category      constants.Category      `json:"category"`
	GSTEligible   bool                    `json:"gst_eligible"`
	Status        constants.InvoiceStatus `json:"status"`
	FilePath      string                  `json:"file_path"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
