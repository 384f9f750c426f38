package parse

import (
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/ledgerline/gst-helper/internal/entity"
)

const defaultGSTRate = 0.10

// Config controls the field heuristics.
type Config struct {
	// GSTRate is the assumed GST fraction of the net amount, used when the
	// document does not state a GST figure: gst = total * rate / (1 + rate).
	// Default 0.10 (total / 11).
	GSTRate float64
	// Now supplies the processing date used when no document date is found.
	Now func() time.Time
}

// Parser turns recognized invoice text into an ExtractedInvoice. It holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

func NewParser(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GSTRate <= 0 || cfg.GSTRate >= 1 {
		cfg.GSTRate = defaultGSTRate
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Parser{cfg: cfg, logger: logger}
}

// ParseInvoice runs the per-field matcher chains over the text and returns a
// complete record. It never fails: a field no matcher resolves holds its
// default. The same text and clock always produce the same record.
func (p *Parser) ParseInvoice(text string) entity.ExtractedInvoice {
	inv := entity.ExtractedInvoice{RawText: text}

	if total, matcher, ok := findTotal(text); ok {
		inv.TotalAmount = total
		p.logger.Debug("total matched", "matcher", matcher, "value", total)
	}

	if gst, ok := findGST(text, inv.TotalAmount); ok {
		inv.GSTAmount = gst
		p.logger.Debug("gst matched", "value", gst)
	} else {
		inv.GSTDerived = true
		if inv.TotalAmount > 0 {
			inv.GSTAmount = inv.TotalAmount * p.cfg.GSTRate / (1 + p.cfg.GSTRate)
			p.logger.Debug("gst derived from total", "rate", p.cfg.GSTRate, "value", inv.GSTAmount)
		}
	}

	if date, matcher, ok := findDate(text); ok {
		inv.InvoiceDate = date.Format("2006-01-02")
		p.logger.Debug("date matched", "matcher", matcher, "value", inv.InvoiceDate)
	} else {
		inv.InvoiceDate = p.cfg.Now().Format("2006-01-02")
		inv.IsSystemDate = true
		p.logger.Debug("no document date, using processing date", "value", inv.InvoiceDate)
	}

	if num, matcher, ok := findInvoiceNumber(text); ok {
		inv.InvoiceNumber = num
		p.logger.Debug("invoice number matched", "matcher", matcher, "value", num)
	}

	if supplier, matcher := findSupplier(text); supplier != "" {
		inv.Supplier = supplier
		p.logger.Debug("supplier matched", "matcher", matcher, "value", supplier)
	}

	return finalize(inv)
}

var reSpaces = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// finalize applies the output contract: trimmed single-spaced strings, cents
// precision, GST never exceeding the total, net always total minus GST. The
// rejection rules get the last word on supplier and invoice number.
func finalize(inv entity.ExtractedInvoice) entity.ExtractedInvoice {
	inv.Supplier = collapseSpace(inv.Supplier)
	if inv.Supplier != "" && rejectSupplier(inv.Supplier) {
		inv.Supplier = ""
	}
	inv.InvoiceNumber = collapseSpace(inv.InvoiceNumber)
	if inv.InvoiceNumber != "" && !plausibleInvoiceNumber(inv.InvoiceNumber) {
		inv.InvoiceNumber = ""
	}

	if inv.TotalAmount < 0 || math.IsNaN(inv.TotalAmount) || math.IsInf(inv.TotalAmount, 0) {
		inv.TotalAmount = 0
	}
	inv.TotalAmount = roundCents(inv.TotalAmount)
	inv.GSTAmount = roundCents(inv.GSTAmount)
	if inv.GSTAmount < 0 || inv.GSTAmount > inv.TotalAmount {
		inv.GSTAmount = 0
	}
	inv.NetAmount = roundCents(inv.TotalAmount - inv.GSTAmount)
	return inv
}
