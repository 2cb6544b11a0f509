// Package postgres provides a PostgreSQL-backed InvoiceRepository. The
// store keeps the key-value shape of the persistence contract: the whole
// invoice list is one JSONB value in the invoice_store table, and every
// write is a read-modify-write of that value.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type invoiceRepo struct {
	db  *sqlx.DB
	key string
}

// NewInvoiceRepo creates a PostgreSQL-backed InvoiceRepository storing the
// invoice list under the given key.
func NewInvoiceRepo(db *sqlx.DB, key string) port.InvoiceRepository {
	return &invoiceRepo{db: db, key: key}
}

func (r *invoiceRepo) load(ctx context.Context) ([]domain.SavedInvoice, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		"SELECT value FROM invoice_store WHERE key = $1", r.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.load: %w", err)
	}

	var invoices []domain.SavedInvoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, fmt.Errorf("invoiceRepo.load: decoding stored list: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) store(ctx context.Context, invoices []domain.SavedInvoice) error {
	raw, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("invoiceRepo.store: encoding list: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO invoice_store (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3`,
		r.key, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("invoiceRepo.store: %w", err)
	}
	return nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]domain.SavedInvoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortInvoicesByNumberDesc(invoices)
	return invoices, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.SavedInvoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	invoices = append(invoices, *inv)
	return r.store(ctx, invoices)
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.SavedInvoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range invoices {
		if invoices[i].ID == inv.ID {
			inv.CreatedAt = invoices[i].CreatedAt
			inv.UpdatedAt = time.Now().UTC()
			invoices[i] = *inv
			return r.store(ctx, invoices)
		}
	}
	return domain.ErrNotFound
}
