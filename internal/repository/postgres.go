package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/gst-helper/constants"
	"github.com/ledgerline/gst-helper/internal/common"
	"github.com/ledgerline/gst-helper/internal/entity"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS invoices (
	id UUID PRIMARY KEY,
	supplier TEXT NOT NULL DEFAULT '',
	invoice_number TEXT NOT NULL DEFAULT '',
	invoice_date DATE NOT NULL,
	is_system_date BOOLEAN NOT NULL DEFAULT FALSE,
	total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	gst_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	net_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	invoice_type TEXT NOT NULL DEFAULT 'expense',
	category TEXT NOT NULL DEFAULT 'Other',
	gst_eligible BOOLEAN NOT NULL DEFAULT TRUE,
	status TEXT NOT NULL DEFAULT 'pending',
	file_path TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoices_invoice_date ON invoices (invoice_date);
CREATE INDEX IF NOT EXISTS idx_invoices_invoice_type ON invoices (invoice_type);
`

type postgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a pgx pool, ensures the schema, and returns the store.
func OpenPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (InvoiceRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, fmt.Errorf("%w: parse dsn: %v", common.ErrDatabase, err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "gst-helper"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("%w: connect: %v", common.ErrDatabase, err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: init schema: %v", common.ErrDatabase, err)
	}

	logger.Info("successfully connected to database")
	return &postgresRepository{pool: pool, logger: logger}, nil
}

func (r *postgresRepository) CreateInvoice(ctx context.Context, inv *entity.Invoice) error {
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

	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (
			id, supplier, invoice_number, invoice_date, is_system_date,
			total_amount, gst_amount, net_amount, invoice_type, category,
			gst_eligible, status, file_path, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		inv.ID.String(),
		inv.Supplier,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.IsSystemDate,
		inv.TotalAmount,
		inv.GSTAmount,
		inv.NetAmount,
		string(inv.InvoiceType),
		string(inv.Category),
		inv.GSTEligible,
		string(inv.Status),
		inv.FilePath,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert invoice", "id", inv.ID, "error", err)
		return fmt.Errorf("%w: insert invoice: %v", common.ErrDatabase, err)
	}
	return nil
}

func (r *postgresRepository) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT id::text, supplier, invoice_number, invoice_date, is_system_date,
			total_amount, gst_amount, net_amount, invoice_type, category,
			gst_eligible, status, file_path, created_at, updated_at
		FROM invoices`
	var conds []string
	var args []any
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("invoice_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("invoice_date <= $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, fmt.Sprintf("invoice_type = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY invoice_date, created_at"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, fmt.Errorf("%w: list invoices: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanPostgresInvoice(rows)
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

func scanPostgresInvoice(rows pgx.Rows) (*entity.Invoice, error) {
	var inv entity.Invoice
	var idStr, typeStr, categoryStr, stStr string
	if err := rows.Scan(
		&idStr, &inv.Supplier, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.IsSystemDate,
		&inv.TotalAmount, &inv.GSTAmount, &inv.NetAmount, &typeStr, &categoryStr,
		&inv.GSTEligible, &stStr, &inv.FilePath, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	inv.InvoiceType = entity.InvoiceType(typeStr)
	inv.Category = constants.Category(categoryStr)
	inv.Status = constants.InvoiceStatus(stStr)
	return &inv, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *postgresRepository) Close() error {
	r.pool.Close()
	return nil
}
