package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/render"
)

func sampleInvoice() *domain.SavedInvoice {
	return &domain.SavedInvoice{
		ID: "abc",
		Invoice: domain.Invoice{
			InvoiceNumber: "0001-25-26",
			InvoiceDate:   "2026-08-20",
			DueDate:       "2026-09-04",
			Declaration:   "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.",
		},
		Seller: domain.Party{
			Name: "Gift Plus", State: "Karnataka", GSTIN: "29BXCPT1687G1ZZ",
			BankName: "HDFC Bank", BranchName: "CHIKKABANAVARA",
			AccountNo: "50200094338859", IFSCCode: "HDFC0007222",
		},
		Customer:  domain.Party{Name: "Acme Traders", State: "Kerala", Address: "Kochi"},
		Consignee: domain.Party{Name: "Acme Warehouse", State: "Kerala"},
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Gift hamper", HSN: "9505", Quantity: 3, Rate: 450, Per: "pcs", TaxRate: 18},
			{ID: "li-2", Description: "Mug", HSN: "6912", Quantity: 2, Rate: 150, Per: "pcs", TaxRate: 12},
		},
		SubTotal:   1650,
		TaxTotal:   279,
		GrandTotal: 1929,
	}
}

func TestInvoicePDF_ProducesDocument(t *testing.T) {
	pdf, err := render.InvoicePDF(sampleInvoice(), domain.CopyOriginal)

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestInvoicePDF_AllCopyTypes(t *testing.T) {
	for _, copyType := range []domain.CopyType{domain.CopyOriginal, domain.CopyOffice, domain.CopyDeliveryChallan} {
		pdf, err := render.InvoicePDF(sampleInvoice(), copyType)
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)
	}
}

func TestInvoicePDF_EmptyLineItems(t *testing.T) {
	inv := sampleInvoice()
	inv.LineItems = nil
	inv.SubTotal, inv.TaxTotal, inv.GrandTotal = 0, 0, 0

	pdf, err := render.InvoicePDF(inv, domain.CopyOriginal)

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
