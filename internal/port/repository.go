package port

import (
	"context"

	"billforge/internal/domain"
)

// InvoiceRepository defines the contract for the saved-invoice store: a
// key-value collaborator holding one list of invoices. Every write is a
// read-modify-write of the whole list, so the contract is atomic only for
// a single active session; concurrent writers race with last-write-wins.
type InvoiceRepository interface {
	// List returns all saved invoices sorted by invoice number descending
	// (string comparison), so the first element is the latest.
	List(ctx context.Context) ([]domain.SavedInvoice, error)
	GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error)
	// Create stores a new invoice; the caller assigns the ID and the
	// repository stamps CreatedAt = UpdatedAt = now.
	Create(ctx context.Context, inv *domain.SavedInvoice) error
	// Update replaces the record with the same ID, preserving ID and
	// CreatedAt and refreshing UpdatedAt. Returns domain.ErrNotFound when
	// the ID is absent.
	Update(ctx context.Context, inv *domain.SavedInvoice) error
}
