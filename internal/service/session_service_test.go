package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/service"
	"billforge/mocks"
)

var testSeller = config.SellerConfig{
	Name:  "Gift Plus",
	State: "Karnataka",
	GSTIN: "29BXCPT1687G1ZZ",
}

func newSession(t *testing.T, repo *mocks.MockInvoiceRepo) service.SessionService {
	t.Helper()
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{}, nil).Maybe()

	svc := service.NewSessionService(repo, service.NewNumberingService(repo), testSeller)
	require.NoError(t, svc.New(context.Background()))
	return svc
}

func TestSession_NewSeedsDefaults(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	state := svc.State()

	assert.Equal(t, "0001-25-26", state.Invoice.InvoiceNumber)
	assert.Equal(t, "Gift Plus", state.Seller.Name)
	assert.Empty(t, state.Customer.Name)
	assert.Empty(t, state.Consignee.Name)
	assert.True(t, state.MirrorConsignee)
	assert.Contains(t, state.Invoice.Declaration, "actual price of the goods")
	require.Len(t, state.LineItems, 1)

	item := state.LineItems[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 0.0, item.Rate)
	assert.Equal(t, "pcs", item.Per)
	assert.Equal(t, 18.0, item.TaxRate)
}

func TestSession_LineItemLifecycle(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	added := svc.AddLineItem()
	assert.Len(t, svc.State().LineItems, 2)

	added.Description = "Gift hamper"
	added.Rate = 450
	added.Quantity = 3
	require.NoError(t, svc.UpdateLineItem(added))

	state := svc.State()
	assert.Equal(t, "Gift hamper", state.LineItems[1].Description)

	require.NoError(t, svc.RemoveLineItem(state.LineItems[0].ID))
	assert.Len(t, svc.State().LineItems, 1)

	assert.ErrorIs(t, svc.UpdateLineItem(domain.LineItem{ID: "missing"}), domain.ErrLineItemNotFound)
	assert.ErrorIs(t, svc.RemoveLineItem("missing"), domain.ErrLineItemNotFound)
}

func TestSession_TotalsRecomputed(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	item := svc.State().LineItems[0]
	item.Quantity = 10
	item.Rate = 100
	item.TaxRate = 18
	require.NoError(t, svc.UpdateLineItem(item))

	totals := svc.Totals()
	assert.Equal(t, 1000.0, totals.SubTotal)
	assert.Equal(t, 180.0, totals.TaxTotal)
	assert.Equal(t, 1180.0, totals.GrandTotal)
}

func TestSession_ConsigneeMirror(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	// Mirroring is on for a fresh session; customer edits copy straight
	// into the consignee.
	customer := domain.Party{Name: "Acme Traders", State: "Karnataka"}
	svc.SetCustomer(customer)

	assert.Equal(t, "Acme Traders", svc.State().Consignee.Name)

	// Disabling freezes the consignee at the last mirrored value.
	svc.SetMirrorConsignee(false)
	svc.SetCustomer(domain.Party{Name: "Other Buyer", State: "Kerala"})

	state := svc.State()
	assert.Equal(t, "Other Buyer", state.Customer.Name)
	assert.Equal(t, "Acme Traders", state.Consignee.Name)
}

func TestSession_ExplicitConsigneeEditDisablesMirror(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	svc.SetMirrorConsignee(true)
	svc.SetConsignee(domain.Party{Name: "Warehouse B"})
	svc.SetCustomer(domain.Party{Name: "Acme Traders"})

	state := svc.State()
	assert.Equal(t, "Warehouse B", state.Consignee.Name)
	assert.False(t, state.MirrorConsignee)
}

func TestSession_SaveCreatesThenUpdates(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SavedInvoice")).Return(nil).Once()

	saved, err := svc.Save(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, svc.State().ID)

	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.SavedInvoice")).Return(nil).Once()

	again, err := svc.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	repo.AssertExpectations(t)
}

func TestSession_FailedSaveLeavesStateUnchanged(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := svc.Save(context.Background())
	assert.Error(t, err)
	assert.Empty(t, svc.State().ID)
}

func TestSession_SaveSnapshotsTotals(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	item := svc.State().LineItems[0]
	item.Quantity = 2
	item.Rate = 100
	item.TaxRate = 18
	require.NoError(t, svc.UpdateLineItem(item))

	var captured *domain.SavedInvoice
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.SavedInvoice)
	}).Return(nil).Once()

	_, err := svc.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, 200.0, captured.SubTotal)
	assert.Equal(t, 36.0, captured.TaxTotal)
	assert.Equal(t, 236.0, captured.GrandTotal)
}

func TestSession_Load(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	stored := &domain.SavedInvoice{
		ID:      "abc",
		Invoice: domain.Invoice{InvoiceNumber: "0042-25-26"},
		Seller:  domain.Party{Name: "Gift Plus"},
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Mug", Quantity: 2, Rate: 150, TaxRate: 12},
		},
	}
	repo.On("GetByID", mock.Anything, "abc").Return(stored, nil).Once()

	require.NoError(t, svc.Load(context.Background(), "abc"))

	state := svc.State()
	assert.Equal(t, "abc", state.ID)
	assert.Equal(t, "0042-25-26", state.Invoice.InvoiceNumber)
	require.Len(t, state.LineItems, 1)
	assert.Equal(t, "Mug", state.LineItems[0].Description)
}

func TestSession_LoadMissingID(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	repo.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

	err := svc.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func strPtr(s string) *string { return &s }

func TestSession_ApplyDraftMergesPresentFieldsOnly(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	before := svc.State()

	svc.ApplyDraft(&domain.InvoiceDraft{
		Customer:    &domain.Party{Name: "Acme Traders", State: "Kerala"},
		InvoiceDate: strPtr("2026-08-01"),
	})

	state := svc.State()
	assert.Equal(t, "Acme Traders", state.Customer.Name)
	assert.Equal(t, "2026-08-01", state.Invoice.InvoiceDate)
	// Absent fields stay untouched.
	assert.Equal(t, before.Invoice.InvoiceNumber, state.Invoice.InvoiceNumber)
	assert.Equal(t, before.Seller, state.Seller)
	assert.Equal(t, before.LineItems, state.LineItems)
}

func TestSession_ApplyDraftReplacesLineItemsWithFreshIDs(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	svc.ApplyDraft(&domain.InvoiceDraft{
		LineItems: []domain.LineItem{
			{ID: "model-made-this-up", Description: "Pens", Quantity: 50, Rate: 10, TaxRate: 12},
		},
	})

	state := svc.State()
	require.Len(t, state.LineItems, 1)
	assert.Equal(t, "Pens", state.LineItems[0].Description)
	assert.NotEqual(t, "model-made-this-up", state.LineItems[0].ID)
	assert.NotEmpty(t, state.LineItems[0].ID)
}

func TestSession_ApplyDraftNil(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := newSession(t, repo)

	before := svc.State()
	svc.ApplyDraft(nil)
	assert.Equal(t, before, svc.State())
}
