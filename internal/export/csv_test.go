package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/export"
)

func sampleInvoice() domain.SavedInvoice {
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return domain.SavedInvoice{
		ID: "abc",
		Invoice: domain.Invoice{
			InvoiceNumber: "0001-25-26",
			InvoiceDate:   "2026-08-20",
			DueDate:       "2026-09-04",
		},
		Seller:   domain.Party{Name: "Gift Plus", GSTIN: "29BXCPT1687G1ZZ", State: "Karnataka"},
		Customer: domain.Party{Name: "Acme Traders", State: "Kerala"},
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Mug", Quantity: 2, Rate: 150, TaxRate: 12},
		},
		SubTotal:   300,
		TaxTotal:   36,
		GrandTotal: 336,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.SavedInvoice{sampleInvoice()}))

	raw := buf.Bytes()
	assert.Equal(t, export.BOM, raw[:3])

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "Invoice Number", header[0])
	assert.Equal(t, "Grand Total", header[16])

	row := records[1]
	assert.Equal(t, "0001-25-26", row[0])
	assert.Equal(t, "Gift Plus", row[5])
	assert.Equal(t, "Acme Traders", row[8])
	assert.Equal(t, "1", row[13])
	assert.Equal(t, "300.00", row[14])
	assert.Equal(t, "336.00", row[16])
}

func TestWriteCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_invoices_2026", export.SanitizeFilename("my invoices / 2026"))
	assert.Equal(t, "a_b", export.SanitizeFilename("a!!!b"))
	assert.Equal(t, "trimmed", export.SanitizeFilename("__trimmed__"))
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("invoices", "csv")
	assert.Regexp(t, `^invoices_\d{4}-\d{2}-\d{2}\.csv$`, name)
}

func TestWriteXLSX_Roundtrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, []domain.SavedInvoice{sampleInvoice()}))
	assert.NotZero(t, buf.Len())
	// XLSX container is a zip archive.
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
