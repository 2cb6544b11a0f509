package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billforge/internal/domain"
	"billforge/internal/inr"
	"billforge/internal/port"
	"billforge/internal/tax"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, toEmail, toName string, inv *domain.SavedInvoice) error {
	rounded, _ := tax.Round(inv.GrandTotal)

	subject := fmt.Sprintf("Invoice %s from %s", inv.Invoice.InvoiceNumber, inv.Seller.Name)
	htmlBody := buildInvoiceHTML(toName, inv, rounded)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nInvoice %s dated %s for %s is ready.\nAmount due: %s (%s Rupees Only), payable by %s.\n\n%s",
		toName, inv.Invoice.InvoiceNumber, inv.Invoice.InvoiceDate, inv.Seller.Name,
		inr.Format(rounded), inr.Words(rounded), inv.Invoice.DueDate, inv.Seller.Name,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceHTML(name string, inv *domain.SavedInvoice, rounded float64) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>Your invoice from %s is ready.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Invoice Date</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Due Date</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;">%s</td></tr>
    <tr><td style="padding: 6px; border-bottom: 1px solid #eee;">Amount Due</td><td style="padding: 6px; border-bottom: 1px solid #eee; text-align: right;"><strong>%s</strong></td></tr>
  </table>
  <p style="color: #666;">%s Rupees Only.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, inv.Invoice.InvoiceNumber, name, inv.Seller.Name,
		inv.Invoice.InvoiceDate, inv.Invoice.DueDate, inr.Format(rounded),
		inr.Words(rounded), inv.Seller.Name)
}
