package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
	"github.com/ledgerline/gst-helper/internal/utils"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id TEXT PRIMARY KEY,
	supplier TEXT NOT NULL DEFAULT '',
	invoice_number TEXT NOT NULL DEFAULT '',
	invoice_date DATE NOT NULL,
	is_system_date BOOLEAN NOT NULL DEFAULT FALSE,
	total_amount REAL NOT NULL DEFAULT 0,
	gst_amount REAL NOT NULL DEFAULT 0,
	net_amount REAL NOT NULL DEFAULT 0,
	invoice_type TEXT NOT NULL DEFAULT 'expense',
	category TEXT NOT NULL DEFAULT 'Other',
	gst_eligible BOOLEAN NOT NULL DEFAULT TRUE,
	status TEXT NOT NULL DEFAULT 'pending',
	file_path TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_invoice_date ON invoices (invoice_date);
CREATE INDEX IF NOT EXISTS idx_invoices_invoice_type ON invoices (invoice_type);
`

type sqliteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens the SQLite store at path, creating the schema on first
// use.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (InvoiceRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening sqlite store", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", common.ErrDatabase, err)
	}
	// one writer connection keeps SQLITE_BUSY out of the request path
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", common.ErrDatabase, err)
	}
	return &sqliteRepository{db: db, logger: logger}, nil
}

func (r *sqliteRepository) CreateInvoice(ctx context.Context, inv *entity.Invoice) error {
	inv.ID = uuid.New()
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = constants.StatusPending
	}
	if inv.Category == "" {
		inv.Category = constants.Other
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (
			id, supplier, invoice_number, invoice_date, is_system_date,
			total_amount, gst_amount, net_amount, invoice_type, category,
			gst_eligible, status, file_path, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID.String(),
		inv.Supplier,
		inv.InvoiceNumber,
		utils.FormatYMD(inv.InvoiceDate),
		inv.IsSystemDate,
		inv.TotalAmount,
		inv.GSTAmount,
		inv.NetAmount,
		string(inv.InvoiceType),
		string(inv.Category),
		inv.GSTEligible,
		string(inv.Status),
		inv.FilePath,
		inv.CreatedAt.Format(time.RFC3339Nano),
		inv.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("failed to insert invoice", "id", inv.ID, "error", err)
		return fmt.Errorf("%w: insert invoice: %v", common.ErrDatabase, err)
	}
	return nil
}

func (r *sqliteRepository) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT id, supplier, invoice_number, invoice_date, is_system_date,
			total_amount, gst_amount, net_amount, invoice_type, category,
			gst_eligible, status, file_path, created_at, updated_at
		FROM invoices`
	var conds []string
	var args []any
	if filter.From != nil {
		conds = append(conds, "invoice_date >= ?")
		args = append(args, utils.FormatYMD(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "invoice_date <= ?")
		args = append(args, utils.FormatYMD(*filter.To))
	}
	if filter.Type != nil {
		conds = append(conds, "invoice_type = ?")
		args = append(args, string(*filter.Type))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY invoice_date, created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanSQLiteInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan invoice: %v", common.ErrDatabase, err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func scanSQLiteInvoice(rows *sql.Rows) (*entity.Invoice, error) {
	var inv entity.Invoice
	var idStr, dateStr, typeStr, categoryStr, stStr, createdStr, updatedStr string
	if err := rows.Scan(
		&idStr, &inv.Supplier, &inv.InvoiceNumber, &dateStr, &inv.IsSystemDate,
		&inv.TotalAmount, &inv.GSTAmount, &inv.NetAmount, &typeStr, &categoryStr,
		&inv.GSTEligible, &stStr, &inv.FilePath, &createdStr, &updatedStr,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	if inv.InvoiceDate, err = utils.ParseYMD(dateStr); err != nil {
		return nil, err
	}
	if inv.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, err
	}
	if inv.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedStr); err != nil {
		return nil, err
	}
	inv.InvoiceType = entity.InvoiceType(typeStr)
	inv.Category = constants.Category(categoryStr)
	inv.Status = constants.InvoiceStatus(stStr)
	return &inv, nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
