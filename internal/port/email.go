package port

import (
	"context"

	"billforge/internal/domain"
)

// EmailSender abstracts delivery of invoice summary emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, toEmail, toName string, inv *domain.SavedInvoice) error
}
