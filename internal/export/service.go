package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/repository"
)

// Service is a tiny façade over the invoice repository that produces XLSX
// bytes for exports.
type Service struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

func NewService(repo repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: repo, logger: logger}
}

// ExportInvoicesXLSX returns an XLSX workbook (as bytes) for the given date
// window and optional invoice type.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all invoices.
func (s *Service) ExportInvoicesXLSX(ctx context.Context, from, to *time.Time, invoiceType *entity.InvoiceType) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}

	invs, err := s.invoices.ListInvoices(ctx, repository.InvoiceFilter{
		From: fromDate,
		To:   toDate,
		Type: invoiceType,
	})
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Invoice Date",
		"Supplier",
		"Invoice Number",
		"Category",
		"Type",
		"Net Amount",
		"GST Amount",
		"Total Amount",
		"GST Eligible",
		"Status",
		"File Path",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, inv := range invs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !inv.InvoiceDate.IsZero() {
			write(1, inv.InvoiceDate.Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, inv.Supplier)
		write(3, inv.InvoiceNumber)
		write(4, string(inv.Category))
		write(5, string(inv.InvoiceType))
		write(6, inv.NetAmount)
		write(7, inv.GSTAmount)
		write(8, inv.TotalAmount)
		write(9, yesNo(inv.GSTEligible))
		write(10, string(inv.Status))
		write(11, inv.FilePath)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 32) // supplier
	_ = f.SetColWidth(sheet, "C", "C", 18) // invoice number
	_ = f.SetColWidth(sheet, "D", "E", 18) // category, type
	_ = f.SetColWidth(sheet, "F", "H", 14) // amounts
	_ = f.SetColWidth(sheet, "K", "K", 60) // path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(invs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
