// Package export turns the saved invoice list into download formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"billforge/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"PO Number",
	"Place of Delivery",
	"Seller Name",
	"Seller GSTIN",
	"Seller State",
	"Customer Name",
	"Customer GSTIN",
	"Customer State",
	"Consignee Name",
	"Consignee State",
	"Line Item Count",
	"Sub Total",
	"Tax Total",
	"Grand Total",
	"Created At",
	"Updated At",
}

// WriteCSV writes the invoice list as CSV, BOM and header included.
func WriteCSV(w io.Writer, invoices []domain.SavedInvoice) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for i := range invoices {
		if err := cw.Write(invoiceToRow(&invoices[i])); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}

func invoiceToRow(inv *domain.SavedInvoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.Invoice.InvoiceNumber
	row[1] = inv.Invoice.InvoiceDate
	row[2] = inv.Invoice.DueDate
	row[3] = inv.Invoice.PurchaseOrderNumber
	row[4] = inv.Invoice.PlaceOfDelivery
	row[5] = inv.Seller.Name
	row[6] = inv.Seller.GSTIN
	row[7] = inv.Seller.State
	row[8] = inv.Customer.Name
	row[9] = inv.Customer.GSTIN
	row[10] = inv.Customer.State
	row[11] = inv.Consignee.Name
	row[12] = inv.Consignee.State
	row[13] = strconv.Itoa(len(inv.LineItems))
	row[14] = formatMoney(inv.SubTotal)
	row[15] = formatMoney(inv.TaxTotal)
	row[16] = formatMoney(inv.GrandTotal)
	row[17] = inv.CreatedAt.Format(time.RFC3339)
	row[18] = inv.UpdatedAt.Format(time.RFC3339)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
