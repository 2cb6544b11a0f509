package noop

import (
	"context"
	"log"

	"billforge/internal/domain"
	"billforge/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs instead of sending.
// Used in development and when no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, toEmail, toName string, inv *domain.SavedInvoice) error {
	log.Printf("email.NoopSender: would send invoice %s to %s <%s>", inv.Invoice.InvoiceNumber, toName, toEmail)
	return nil
}
