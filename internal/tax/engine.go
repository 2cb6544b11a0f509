// Package tax implements the GST computation engine: per-line taxable
// values, the CGST/SGST vs IGST split, invoice totals, and the
// rate-bucketed tax summary. All functions are pure and recomputed on
// every call; nothing is cached.
//
// All arithmetic is float64. Inputs are not validated or clamped: a
// negative quantity or discount flows through the formulas unchanged.
package tax

import (
	"math"
	"sort"

	"billforge/internal/domain"
)

// TaxSplit is the per-item tax allocation. Intra-state supplies split the
// item tax into equal CGST and SGST halves; inter-state supplies carry the
// whole amount as IGST.
type TaxSplit struct {
	CGST float64
	SGST float64
	IGST float64
}

// RateSummary is one row of the rate-bucketed tax summary: all line items
// sharing a taxRate aggregated together. For intra-state invoices the
// displayed per-side rate is Rate/2.
type RateSummary struct {
	Rate         float64 `json:"rate"`
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
}

// InterState reports whether the supply is inter-state. The comparison is
// exact string inequality: case or whitespace differences between two
// spellings of the same state classify the supply as inter-state.
func InterState(sellerState, customerState string) bool {
	return sellerState != customerState
}

// LineAmount returns the taxable value of a line item:
// quantity*rate less the percentage discount.
func LineAmount(item domain.LineItem) float64 {
	amount := item.Quantity * item.Rate
	discountAmount := amount * item.Discount / 100
	return amount - discountAmount
}

// lineTax returns the undivided tax amount for a line item.
func lineTax(item domain.LineItem) float64 {
	return LineAmount(item) * item.TaxRate / 100
}

// LineTax allocates a line item's tax between CGST/SGST and IGST. The
// intra-state halves are exact float divisions, not integer floors: an odd
// tax amount carries the same fractional remainder on both sides.
func LineTax(item domain.LineItem, interState bool) TaxSplit {
	itemTax := lineTax(item)
	if interState {
		return TaxSplit{IGST: itemTax}
	}
	return TaxSplit{CGST: itemTax / 2, SGST: itemTax / 2}
}

// Totals computes the unrounded invoice totals. An empty item set yields
// all zeros. GrandTotal is exactly SubTotal+TaxTotal; rounding happens
// only at display time via Round.
func Totals(items []domain.LineItem) domain.InvoiceTotals {
	var t domain.InvoiceTotals
	for _, item := range items {
		t.SubTotal += LineAmount(item)
		t.TaxTotal += lineTax(item)
	}
	t.GrandTotal = t.SubTotal + t.TaxTotal
	return t
}

// Breakup aggregates the CGST/SGST/IGST amounts across all line items for
// the given seller/customer state pair.
func Breakup(items []domain.LineItem, sellerState, customerState string) domain.TaxTotals {
	interState := InterState(sellerState, customerState)

	var t domain.TaxTotals
	for _, item := range items {
		split := LineTax(item, interState)
		t.CGST += split.CGST
		t.SGST += split.SGST
		t.IGST += split.IGST
	}
	t.Total = t.CGST + t.SGST + t.IGST
	return t
}

// SummaryByRate groups line items by distinct taxRate (exact numeric
// equality) and sums taxable value and tax amounts per group. Rows are
// returned in ascending rate order.
func SummaryByRate(items []domain.LineItem, sellerState, customerState string) []RateSummary {
	interState := InterState(sellerState, customerState)

	buckets := make(map[float64]*RateSummary)
	for _, item := range items {
		row, ok := buckets[item.TaxRate]
		if !ok {
			row = &RateSummary{Rate: item.TaxRate}
			buckets[item.TaxRate] = row
		}
		split := LineTax(item, interState)
		row.TaxableValue += LineAmount(item)
		row.CGST += split.CGST
		row.SGST += split.SGST
		row.IGST += split.IGST
	}

	summary := make([]RateSummary, 0, len(buckets))
	for _, row := range buckets {
		summary = append(summary, *row)
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Rate < summary[j].Rate })
	return summary
}

// Round rounds a grand total to the nearest whole rupee for display and
// returns the residual round-off (rounded - exact). Persisted totals stay
// unrounded; the round-off line is shown only when non-zero.
func Round(grandTotal float64) (rounded, roundOff float64) {
	rounded = math.Round(grandTotal)
	return rounded, rounded - grandTotal
}
