package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"billforge/internal/domain"
)

const sheetName = "Invoices"

// WriteXLSX writes the invoice list as an Excel workbook with one
// Invoices sheet mirroring the CSV columns, with numeric totals kept as
// numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, invoices []domain.SavedInvoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
	}

	for r := range invoices {
		inv := &invoices[r]
		values := []interface{}{
			inv.Invoice.InvoiceNumber,
			inv.Invoice.InvoiceDate,
			inv.Invoice.DueDate,
			inv.Invoice.PurchaseOrderNumber,
			inv.Invoice.PlaceOfDelivery,
			inv.Seller.Name,
			inv.Seller.GSTIN,
			inv.Seller.State,
			inv.Customer.Name,
			inv.Customer.GSTIN,
			inv.Customer.State,
			inv.Consignee.Name,
			inv.Consignee.State,
			strconv.Itoa(len(inv.LineItems)),
			inv.SubTotal,
			inv.TaxTotal,
			inv.GrandTotal,
			inv.CreatedAt.Format(time.RFC3339),
			inv.UpdatedAt.Format(time.RFC3339),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("export.WriteXLSX: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("export.WriteXLSX: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}
