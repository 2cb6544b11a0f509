package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/repository/memory"
)

func saved(id, number string) *domain.SavedInvoice {
	return &domain.SavedInvoice{
		ID:      id,
		Invoice: domain.Invoice{InvoiceNumber: number},
	}
}

func TestInvoiceRepo_CreateAndGet(t *testing.T) {
	repo := memory.NewInvoiceRepo()
	ctx := context.Background()

	inv := saved("a", "0001-25-26")
	require.NoError(t, repo.Create(ctx, inv))
	assert.False(t, inv.CreatedAt.IsZero())
	assert.Equal(t, inv.CreatedAt, inv.UpdatedAt)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "0001-25-26", got.Invoice.InvoiceNumber)
}

func TestInvoiceRepo_GetMissing(t *testing.T) {
	repo := memory.NewInvoiceRepo()

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceRepo_ListSortsDescByNumber(t *testing.T) {
	repo := memory.NewInvoiceRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, saved("a", "0001-25-26")))
	require.NoError(t, repo.Create(ctx, saved("c", "0003-25-26")))
	require.NoError(t, repo.Create(ctx, saved("b", "0002-25-26")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "0003-25-26", list[0].Invoice.InvoiceNumber)
	assert.Equal(t, "0002-25-26", list[1].Invoice.InvoiceNumber)
	assert.Equal(t, "0001-25-26", list[2].Invoice.InvoiceNumber)
}

func TestInvoiceRepo_Update(t *testing.T) {
	repo := memory.NewInvoiceRepo()
	ctx := context.Background()

	inv := saved("a", "0001-25-26")
	require.NoError(t, repo.Create(ctx, inv))
	created := inv.CreatedAt

	inv.Invoice.PlaceOfDelivery = "Bengaluru"
	require.NoError(t, repo.Update(ctx, inv))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru", got.Invoice.PlaceOfDelivery)
	assert.Equal(t, created, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(created))
}

func TestInvoiceRepo_UpdateMissing(t *testing.T) {
	repo := memory.NewInvoiceRepo()

	err := repo.Update(context.Background(), saved("ghost", "0009-25-26"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
