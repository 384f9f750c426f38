package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/utils"
)

type invoiceResponse struct {
	ID            string  `json:"id"`
	Supplier      string  `json:"supplier"`
	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"`
	IsSystemDate  bool    `json:"is_system_date"`
	TotalAmount   float64 `json:"total_amount"`
	GSTAmount     float64 `json:"gst_amount"`
	NetAmount     float64 `json:"net_amount"`
	GSTDerived    bool    `json:"gst_derived"`
	InvoiceType   string  `json:"invoice_type"`
	Category      string  `json:"category"`
	GSTEligible   bool    `json:"gst_eligible"`
	Status        string  `json:"status"`
	FilePath      string  `json:"file_path,omitempty"`
	CreatedAt     string  `json:"created_at"`
	RawText       string  `json:"raw_text"`
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.invoices.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
}

func (s *Server) handleProcessInvoice(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.badRequest(c, "no file provided")
		return
	}
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	if maxBytes > 0 && fh.Size > maxBytes {
		s.badRequest(c, fmt.Sprintf("file exceeds %dMB limit", s.cfg.MaxUploadMB))
		return
	}

	invoiceType, ok := entity.ParseInvoiceType(c.PostForm("invoice_type"))
	if !ok {
		s.badRequest(c, "invoice_type must be expense or income")
		return
	}
	category := constants.Other
	if v := c.PostForm("category"); v != "" {
		cat, ok := constants.Canonicalize(v)
		if !ok {
			s.badRequest(c, "unknown category, expected one of: "+strings.Join(constants.AsStringSlice(), ", "))
			return
		}
		category = cat
	}
	gstEligible := true
	if v := c.PostForm("gst_eligible"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.badRequest(c, "gst_eligible must be a boolean")
			return
		}
		gstEligible = b
	}

	f, err := fh.Open()
	if err != nil {
		s.writeError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		s.writeError(c, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(data) == 0 {
		s.badRequest(c, "empty file received")
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		if ct, ok := constants.ContentTypeForExt(filepath.Ext(fh.Filename)); ok {
			contentType = ct
		}
	}

	ctx := c.Request.Context()
	result, err := s.processor.Process(ctx, entity.RawDocument{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	// Keep the original document for audit. Extraction already succeeded,
	// so a failed write only costs us the stored copy.
	storedPath, err := s.files.Save(fh.Filename, data)
	if err != nil {
		s.logger.Warn("failed to store document", "filename", fh.Filename, "error", err)
		storedPath = ""
	}

	invoiceDate, err := utils.ParseYMD(result.InvoiceDate)
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: bad invoice date %q", common.ErrInternal, result.InvoiceDate))
		return
	}

	rec := &entity.Invoice{
		Supplier:      result.Supplier,
		InvoiceNumber: result.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		IsSystemDate:  result.IsSystemDate,
		TotalAmount:   result.TotalAmount,
		GSTAmount:     result.GSTAmount,
		NetAmount:     result.NetAmount,
		InvoiceType:   invoiceType,
		Category:      category,
		GSTEligible:   gstEligible,
		Status:        constants.StatusProcessed,
		FilePath:      storedPath,
	}
	if err := s.invoices.CreateInvoice(ctx, rec); err != nil {
		if storedPath != "" {
			_ = s.files.Delete(storedPath)
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceResponse{
		ID:            rec.ID.String(),
		Supplier:      result.Supplier,
		InvoiceNumber: result.InvoiceNumber,
		InvoiceDate:   result.InvoiceDate,
		IsSystemDate:  result.IsSystemDate,
		TotalAmount:   result.TotalAmount,
		GSTAmount:     result.GSTAmount,
		NetAmount:     result.NetAmount,
		GSTDerived:    result.GSTDerived,
		InvoiceType:   string(rec.InvoiceType),
		Category:      string(rec.Category),
		GSTEligible:   rec.GSTEligible,
		Status:        string(rec.Status),
		FilePath:      rec.FilePath,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		RawText:       result.RawText,
	})
}

func (s *Server) handleExport(c *gin.Context) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := utils.ParseYMD(v)
		if err != nil {
			s.badRequest(c, "from must be YYYY-MM-DD")
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := utils.ParseYMD(v)
		if err != nil {
			s.badRequest(c, "to must be YYYY-MM-DD")
			return
		}
		to = &t
	}
	var invoiceType *entity.InvoiceType
	if v := c.Query("type"); v != "" {
		t, ok := entity.ParseInvoiceType(v)
		if !ok {
			s.badRequest(c, "type must be expense or income")
			return
		}
		invoiceType = &t
	}

	data, err := s.exporter.ExportInvoicesXLSX(c.Request.Context(), from, to, invoiceType)
	if err != nil {
		s.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": detail})
}

// writeError maps extraction failures onto stable error kinds so callers can
// branch without string matching.
func (s *Server) writeError(c *gin.Context, err error) {
	status, kind := classifyError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "kind", kind, "error", err)
	}
	c.JSON(status, gin.H{"error": kind, "detail": err.Error()})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrUnsupportedFormat):
		return http.StatusBadRequest, "unsupported_format"
	case errors.Is(err, common.ErrDocumentUnreadable):
		return http.StatusBadRequest, "document_unreadable"
	case errors.Is(err, common.ErrEngineUnavailable):
		return http.StatusServiceUnavailable, "engine_unavailable"
	case errors.Is(err, common.ErrExtractionTimeout):
		return http.StatusGatewayTimeout, "extraction_timeout"
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
