package domain

import "time"

// Party represents a seller, customer, or consignee on an invoice.
// GSTIN and PAN are carried as opaque identifier strings; the core does
// not validate their checksums.
type Party struct {
	Name       string `json:"name"`
	Logo       string `json:"logo,omitempty"`
	Address    string `json:"address"`
	Pincode    string `json:"pincode,omitempty"`
	State      string `json:"state"`
	StateCode  string `json:"state_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	GSTIN      string `json:"gstin"`
	PAN        string `json:"pan,omitempty"`
	MobNo      string `json:"mob_no,omitempty"`
	BankName   string `json:"bank_name,omitempty"`
	BranchName string `json:"branch_name,omitempty"`
	AccountNo  string `json:"account_no,omitempty"`
	IFSCCode   string `json:"ifsc_code,omitempty"`
}

// LineItem represents a single line item on an invoice. Discount and
// TaxRate are percentages. Values are not clamped: negative quantity or
// discount propagates arithmetically through the tax engine.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	HSN         string  `json:"hsn"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Per         string  `json:"per"`
	Discount    float64 `json:"discount"`
	TaxRate     float64 `json:"tax_rate"`
}

// Invoice holds the invoice header fields. Dates are YYYY-MM-DD strings.
// InvoiceNumber follows the NNNN-YY-YY sequence/financial-year format,
// e.g. "0001-25-26".
type Invoice struct {
	InvoiceNumber       string `json:"invoice_number"`
	InvoiceDate         string `json:"invoice_date"`
	PurchaseOrderNumber string `json:"purchase_order_number"`
	PlaceOfDelivery     string `json:"place_of_delivery"`
	Declaration         string `json:"declaration"`
	DueDate             string `json:"due_date"`
}

// TaxTotals holds the aggregate tax amounts for an invoice. Derived by
// the tax engine, never stored independently.
type TaxTotals struct {
	CGST  float64 `json:"cgst"`
	SGST  float64 `json:"sgst"`
	IGST  float64 `json:"igst"`
	Total float64 `json:"total"`
}

// InvoiceTotals holds the unrounded invoice totals.
// GrandTotal = SubTotal + TaxTotal exactly.
type InvoiceTotals struct {
	SubTotal   float64 `json:"sub_total"`
	TaxTotal   float64 `json:"tax_total"`
	GrandTotal float64 `json:"grand_total"`
}

// SavedInvoice is an immutable-at-rest snapshot of a session, keyed by ID
// in the invoice store. Totals are persisted unrounded.
type SavedInvoice struct {
	ID         string     `json:"id"`
	Invoice    Invoice    `json:"invoice"`
	Seller     Party      `json:"seller"`
	Customer   Party      `json:"customer"`
	Consignee  Party      `json:"consignee"`
	LineItems  []LineItem `json:"line_items"`
	SubTotal   float64    `json:"sub_total"`
	TaxTotal   float64    `json:"tax_total"`
	GrandTotal float64    `json:"grand_total"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// InvoiceDraft is the optional-field payload returned by the AI drafter.
// Nil fields were absent from the model response and must leave session
// state untouched; only present fields are merged.
type InvoiceDraft struct {
	Seller              *Party     `json:"seller,omitempty"`
	Customer            *Party     `json:"customer,omitempty"`
	Consignee           *Party     `json:"consignee,omitempty"`
	InvoiceNumber       *string    `json:"invoice_number,omitempty"`
	InvoiceDate         *string    `json:"invoice_date,omitempty"`
	DueDate             *string    `json:"due_date,omitempty"`
	PurchaseOrderNumber *string    `json:"purchase_order_number,omitempty"`
	PlaceOfDelivery     *string    `json:"place_of_delivery,omitempty"`
	LineItems           []LineItem `json:"line_items,omitempty"`
}

// SessionState is a snapshot of the live editable invoice session.
type SessionState struct {
	ID              string     `json:"id,omitempty"` // empty until first save
	Invoice         Invoice    `json:"invoice"`
	Seller          Party      `json:"seller"`
	Customer        Party      `json:"customer"`
	Consignee       Party      `json:"consignee"`
	LineItems       []LineItem `json:"line_items"`
	MirrorConsignee bool       `json:"mirror_consignee"`
}
