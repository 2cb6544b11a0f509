package domain

import "sort"

// SortInvoicesByNumberDesc sorts saved invoices by invoice number
// descending (plain string comparison), so the latest-numbered invoice
// comes first. The numbering service depends on this order.
func SortInvoicesByNumberDesc(invs []SavedInvoice) {
	sort.Slice(invs, func(i, j int) bool {
		return invs[i].Invoice.InvoiceNumber > invs[j].Invoice.InvoiceNumber
	})
}
