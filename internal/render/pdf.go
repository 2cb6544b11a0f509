// Package render produces the printable A4 tax invoice.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"billforge/internal/domain"
	"billforge/internal/inr"
	"billforge/internal/tax"
)

const (
	pageMargin = 10.0
	lineHeight = 5.0
)

// InvoicePDF renders a saved invoice as an A4 portrait PDF. copy selects
// the copy-type label printed in the top right corner.
func InvoicePDF(inv *domain.SavedInvoice, copyType domain.CopyType) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin

	drawHeader(pdf, inv, copyType, usable)
	drawMetaRow(pdf, inv, usable)
	drawParties(pdf, inv, usable)
	drawItemsTable(pdf, inv, usable)
	drawTaxSummary(pdf, inv, usable)
	drawTotals(pdf, inv, usable)
	drawFooter(pdf, inv, usable)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render.InvoicePDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, copyType domain.CopyType, usable float64) {
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(usable, lineHeight, string(copyType), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(usable, 8, "TAX INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(usable, 6, inv.Seller.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	address := inv.Seller.Address
	if inv.Seller.Pincode != "" {
		address += " - " + inv.Seller.Pincode
	}
	pdf.CellFormat(usable, lineHeight, address, "", 1, "C", false, 0, "")

	contact := ""
	if inv.Seller.MobNo != "" {
		contact = "Mob: " + inv.Seller.MobNo
	}
	if inv.Seller.Email != "" {
		if contact != "" {
			contact += "  |  "
		}
		contact += "Email: " + inv.Seller.Email
	}
	if contact != "" {
		pdf.CellFormat(usable, lineHeight, contact, "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	ids := "GSTIN: " + inv.Seller.GSTIN
	if inv.Seller.PAN != "" {
		ids += "  |  PAN: " + inv.Seller.PAN
	}
	pdf.CellFormat(usable, lineHeight, ids, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func drawMetaRow(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	cell := usable / 3

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(cell, lineHeight, "Invoice No: "+inv.Invoice.InvoiceNumber, "TLB", 0, "L", false, 0, "")
	pdf.CellFormat(cell, lineHeight, "Invoice Date: "+inv.Invoice.InvoiceDate, "TB", 0, "L", false, 0, "")
	pdf.CellFormat(cell, lineHeight, "Due Date: "+inv.Invoice.DueDate, "TRB", 1, "L", false, 0, "")

	if inv.Invoice.PurchaseOrderNumber != "" || inv.Invoice.PlaceOfDelivery != "" {
		pdf.CellFormat(cell*1.5, lineHeight, "PO No: "+inv.Invoice.PurchaseOrderNumber, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(cell*1.5, lineHeight, "Place of Delivery: "+inv.Invoice.PlaceOfDelivery, "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func partyLines(p domain.Party) []string {
	lines := []string{p.Name, p.Address}
	if p.State != "" {
		lines = append(lines, "State: "+p.State)
	}
	if p.GSTIN != "" {
		lines = append(lines, "GSTIN: "+p.GSTIN)
	}
	return lines
}

func drawParties(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	half := usable / 2

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(half, lineHeight, "Bill To", "TLR", 0, "L", false, 0, "")
	pdf.CellFormat(half, lineHeight, "Ship To", "TLR", 1, "L", false, 0, "")

	bill := partyLines(inv.Customer)
	ship := partyLines(inv.Consignee)
	rows := len(bill)
	if len(ship) > rows {
		rows = len(ship)
	}

	pdf.SetFont("Arial", "", 9)
	for i := 0; i < rows; i++ {
		border := "LR"
		if i == rows-1 {
			border = "LRB"
		}
		left, right := "", ""
		if i < len(bill) {
			left = bill[i]
		}
		if i < len(ship) {
			right = ship[i]
		}
		pdf.CellFormat(half, lineHeight, left, border, 0, "L", false, 0, "")
		pdf.CellFormat(half, lineHeight, right, border, 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func drawItemsTable(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	// Column widths sum to the usable width.
	wSl, wHSN, wQty, wRate, wPer, wDisc, wTax, wAmt := 10.0, 20.0, 15.0, 22.0, 12.0, 15.0, 15.0, 26.0
	wDesc := usable - wSl - wHSN - wQty - wRate - wPer - wDisc - wTax - wAmt

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(wSl, 6, "Sl", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wDesc, 6, "Description of Goods", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wHSN, 6, "HSN/SAC", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wQty, 6, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wRate, 6, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wPer, 6, "Per", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wDisc, 6, "Disc %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wTax, 6, "GST %", "1", 0, "C", true, 0, "")
	pdf.CellFormat(wAmt, 6, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for i, item := range inv.LineItems {
		pdf.CellFormat(wSl, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(wDesc, 6, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(wHSN, 6, item.HSN, "1", 0, "C", false, 0, "")
		pdf.CellFormat(wQty, 6, trimFloat(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(wRate, 6, inr.FormatPlain(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(wPer, 6, item.Per, "1", 0, "C", false, 0, "")
		pdf.CellFormat(wDisc, 6, trimFloat(item.Discount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(wTax, 6, trimFloat(item.TaxRate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(wAmt, 6, inr.FormatPlain(tax.LineAmount(item)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func drawTaxSummary(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	summary := tax.SummaryByRate(inv.LineItems, inv.Seller.State, inv.Customer.State)
	if len(summary) == 0 {
		return
	}
	interState := tax.InterState(inv.Seller.State, inv.Customer.State)

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	if interState {
		w := usable / 4
		pdf.CellFormat(w, 6, "Taxable Value", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "IGST Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "IGST Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "Total Tax", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 8)
		for _, row := range summary {
			pdf.CellFormat(w, 6, inr.FormatPlain(row.TaxableValue), "1", 0, "R", false, 0, "")
			pdf.CellFormat(w, 6, trimFloat(row.Rate)+"%", "1", 0, "C", false, 0, "")
			pdf.CellFormat(w, 6, inr.FormatPlain(row.IGST), "1", 0, "R", false, 0, "")
			pdf.CellFormat(w, 6, inr.FormatPlain(row.IGST), "1", 1, "R", false, 0, "")
		}
	} else {
		w := usable / 6
		pdf.CellFormat(w, 6, "Taxable Value", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "CGST Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "CGST Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "SGST Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "SGST Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(w, 6, "Total Tax", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 8)
		for _, row := range summary {
			halfRate := trimFloat(row.Rate/2) + "%"
			pdf.CellFormat(w, 6, inr.FormatPlain(row.TaxableValue), "1", 0, "R", false, 0, "")
			pdf.CellFormat(w, 6, halfRate, "1", 0, "C", false, 0, "")
			pdf.CellFormat(w, 6, inr.FormatPlain(row.CGST), "1", 0, "R", false, 0, "")
			pdf.CellFormat(w, 6, halfRate, "1", 0, "C", false, 0, "")
			pdf.CellFormat(w, 6, inr.FormatPlain(row.SGST), "1", 0, "R", false, 0, "")
			pdf.CellFormat(w, 6, inr.FormatPlain(row.CGST+row.SGST), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(2)
}

func drawTotals(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	labelW := usable - 40
	valueW := 40.0

	rounded, roundOff := tax.Round(inv.GrandTotal)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(labelW, lineHeight, "Sub Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, lineHeight, inr.FormatPlain(inv.SubTotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, lineHeight, "Total Tax", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, lineHeight, inr.FormatPlain(inv.TaxTotal), "", 1, "R", false, 0, "")
	if roundOff != 0 {
		pdf.CellFormat(labelW, lineHeight, "Round Off", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, lineHeight, fmt.Sprintf("%+.2f", roundOff), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelW, 6, "Grand Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, "Rs. "+inr.FormatPlain(rounded), "T", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(usable, lineHeight, "Amount in Words: "+inr.Words(rounded)+" Rupees Only.", "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func drawFooter(pdf *gofpdf.Fpdf, inv *domain.SavedInvoice, usable float64) {
	half := usable / 2

	if inv.Seller.BankName != "" {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(usable, lineHeight, "Bank Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(usable, 4.5, "Bank: "+inv.Seller.BankName+", Branch: "+inv.Seller.BranchName, "", 1, "L", false, 0, "")
		pdf.CellFormat(usable, 4.5, "A/C No: "+inv.Seller.AccountNo+", IFSC: "+inv.Seller.IFSCCode, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(half, 4, "Declaration: "+inv.Invoice.Declaration, "", "L", false)

	pdf.SetXY(pageMargin+half, pdf.GetY()-8)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(half, lineHeight, "For "+inv.Seller.Name, "", 2, "R", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(half, lineHeight, "Authorised Signatory", "", 1, "R", false, 0, "")

	pdf.SetX(pageMargin)
	pdf.SetFont("Arial", "I", 7)
	pdf.CellFormat(usable, 4, "E. & O.E", "", 1, "R", false, 0, "")
}

// trimFloat renders a float without trailing zeros, e.g. 18 not 18.00.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
