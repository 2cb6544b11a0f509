package port

import (
	"context"

	"billforge/internal/domain"
)

// DraftInput carries the free-form description to turn into an invoice
// draft. Today anchors relative dates ("in 15 days") in the prompt.
type DraftInput struct {
	Description string
	Today       string // YYYY-MM-DD
}

// DraftOutput contains the structured draft from an LLM provider.
type DraftOutput struct {
	Draft      *domain.InvoiceDraft
	ModelUsed  string
	PromptUsed string
}

// InvoiceDrafter abstracts LLM-based text-to-invoice drafting. Line-item
// IDs in the returned draft are untrusted; callers must replace them
// before merging into session state.
type InvoiceDrafter interface {
	Draft(ctx context.Context, input DraftInput) (*DraftOutput, error)
}
