package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
)

// InvoiceFilter narrows ListInvoices results. Nil fields mean no constraint.
type InvoiceFilter struct {
	From *time.Time
	To   *time.Time
	Type *entity.InvoiceType
}

// InvoiceRepository persists extraction results. CreateInvoice assigns the
// record identifier and storage timestamps on the way in.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, inv *entity.Invoice) error
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open selects a store by DSN: postgres:// URLs get the pgx pool store,
// anything else is treated as a SQLite database path.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (InvoiceRepository, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return OpenPostgres(ctx, cfg, logger)
	}
	return OpenSQLite(ctx, cfg.DSN, logger)
}
