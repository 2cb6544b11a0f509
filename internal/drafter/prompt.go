package drafter

// BuildInvoiceDraftPrompt returns the prompt for turning a free-form
// request into a structured invoice draft. today anchors relative dates
// like "tomorrow" or "in 15 days".
func BuildInvoiceDraftPrompt(description, today string) string {
	return `Parse the following user request to generate a structured JSON invoice draft.
- Extract seller, customer, and consignee details including name, address, GSTIN, and state.
- Identify the invoice number, invoice date, due date, purchase order number, and place of delivery.
- List all line items with their description, hsn, quantity, rate, per (unit), discount, and tax_rate.
- If a tax rate isn't specified, assume a standard 18% GST.
- Infer state from address or GSTIN if not explicitly mentioned. The first two digits of a GSTIN correspond to the state code.
- Current date is ` + today + `. If dates are relative (e.g., 'tomorrow', 'in 15 days'), calculate the absolute date.
- Format all dates as YYYY-MM-DD.
- Omit any key the request gives no information about. Do NOT return empty strings or zeroed objects for unknown fields.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

The JSON object must follow this schema (all keys optional):
{
  "seller": {"name": "", "address": "", "gstin": "", "state": ""},
  "customer": {"name": "", "address": "", "gstin": "", "state": ""},
  "consignee": {"name": "", "address": "", "gstin": "", "state": ""},
  "invoice_number": "",
  "invoice_date": "",
  "due_date": "",
  "purchase_order_number": "",
  "place_of_delivery": "",
  "line_items": [
    {"description": "", "hsn": "", "quantity": 0, "rate": 0, "per": "pcs", "discount": 0, "tax_rate": 18}
  ]
}

User request: "` + description + `"`
}
