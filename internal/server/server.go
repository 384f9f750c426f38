// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/export"
	"github.com/ledgerline/gst-helper/internal/repository"
	"github.com/ledgerline/gst-helper/internal/storage"
)

// InvoiceProcessor runs a document through extraction and parsing.
// *pipeline.Pipeline is the production implementation.
type InvoiceProcessor interface {
	Process(ctx context.Context, doc entity.RawDocument) (*entity.ExtractedInvoice, error)
}

type Server struct {
	cfg       common.ServerConfig
	processor InvoiceProcessor
	invoices  repository.InvoiceRepository
	files     storage.Storage
	exporter  *export.Service
	logger    *slog.Logger
}

func NewServer(
	cfg common.ServerConfig,
	processor InvoiceProcessor,
	invoices repository.InvoiceRepository,
	files storage.Storage,
	exporter *export.Service,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		processor: processor,
		invoices:  invoices,
		files:     files,
		exporter:  exporter,
		logger:    logger,
	}
}

// Handler builds the gin engine with all routes and middleware attached.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.requestLogger(), corsMiddleware())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	api.POST("/process-invoice", s.handleProcessInvoice)
	api.GET("/invoices/export", s.handleExport)

	return r
}
