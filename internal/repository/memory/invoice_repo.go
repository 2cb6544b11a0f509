// Package memory provides an in-memory InvoiceRepository, used in tests
// and as the default store backend for local development.
package memory

import (
	"context"
	"sync"
	"time"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type invoiceRepo struct {
	mu       sync.Mutex
	invoices []domain.SavedInvoice
}

// NewInvoiceRepo creates an empty in-memory InvoiceRepository.
func NewInvoiceRepo() port.InvoiceRepository {
	return &invoiceRepo{}
}

func (r *invoiceRepo) List(_ context.Context) ([]domain.SavedInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.SavedInvoice, len(r.invoices))
	copy(out, r.invoices)
	domain.SortInvoicesByNumberDesc(out)
	return out, nil
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*domain.SavedInvoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.invoices {
		if r.invoices[i].ID == id {
			inv := r.invoices[i]
			return &inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *invoiceRepo) Create(_ context.Context, inv *domain.SavedInvoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	r.invoices = append(r.invoices, *inv)
	return nil
}

func (r *invoiceRepo) Update(_ context.Context, inv *domain.SavedInvoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.invoices {
		if r.invoices[i].ID == inv.ID {
			inv.CreatedAt = r.invoices[i].CreatedAt
			inv.UpdatedAt = time.Now().UTC()
			r.invoices[i] = *inv
			return nil
		}
	}
	return domain.ErrNotFound
}
