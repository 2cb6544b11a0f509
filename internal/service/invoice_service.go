package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/export"
	"billforge/internal/port"
	"billforge/internal/render"
)

// InvoiceService exposes read, render, export, and delivery operations
// over saved invoices.
type InvoiceService interface {
	List(ctx context.Context) ([]domain.SavedInvoice, error)
	GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error)
	// RenderPDF renders a saved invoice to an A4 PDF for the given copy
	// type. When an archive bucket is configured the PDF is also uploaded
	// and the presigned URL is returned; an empty URL means archiving is
	// off or failed.
	RenderPDF(ctx context.Context, id string, copyType domain.CopyType) ([]byte, string, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
	Email(ctx context.Context, id, toEmail, toName string) error
}

type invoiceService struct {
	repo    port.InvoiceRepository
	email   port.EmailSender
	storage port.ObjectStorage // nil when archiving is disabled
	s3cfg   config.S3Config
}

// NewInvoiceService creates an InvoiceService. storage may be nil to
// disable PDF archiving.
func NewInvoiceService(repo port.InvoiceRepository, email port.EmailSender, storage port.ObjectStorage, s3cfg config.S3Config) InvoiceService {
	return &invoiceService{
		repo:    repo,
		email:   email,
		storage: storage,
		s3cfg:   s3cfg,
	}
}

func (s *invoiceService) List(ctx context.Context) ([]domain.SavedInvoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.List: %w", err)
	}
	return invoices, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.GetByID: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, id string, copyType domain.CopyType) ([]byte, string, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("invoiceService.RenderPDF: %w", err)
	}

	pdf, err := render.InvoicePDF(inv, copyType)
	if err != nil {
		return nil, "", fmt.Errorf("invoiceService.RenderPDF: %w", err)
	}

	url := s.archive(ctx, inv, pdf)
	return pdf, url, nil
}

// archive uploads the rendered PDF when a bucket is configured. Archive
// failures are logged, not returned; the caller still gets the PDF.
func (s *invoiceService) archive(ctx context.Context, inv *domain.SavedInvoice, pdf []byte) string {
	if s.storage == nil || s.s3cfg.Bucket == "" {
		return ""
	}

	key := fmt.Sprintf("%s/%s-%s.pdf", s.s3cfg.Prefix, inv.Invoice.InvoiceNumber, inv.ID)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
	})
	if err != nil {
		log.Printf("service.InvoiceService: archive upload failed for invoice %s: %v", inv.ID, err)
		return ""
	}

	url, err := s.storage.PresignGet(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
	if err != nil {
		log.Printf("service.InvoiceService: presign failed for invoice %s: %v", inv.ID, err)
		return ""
	}
	return url
}

func (s *invoiceService) ExportCSV(ctx context.Context, w io.Writer) error {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("invoiceService.ExportCSV: %w", err)
	}
	if err := export.WriteCSV(w, invoices); err != nil {
		return fmt.Errorf("invoiceService.ExportCSV: %w", err)
	}
	return nil
}

func (s *invoiceService) ExportXLSX(ctx context.Context, w io.Writer) error {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("invoiceService.ExportXLSX: %w", err)
	}
	if err := export.WriteXLSX(w, invoices); err != nil {
		return fmt.Errorf("invoiceService.ExportXLSX: %w", err)
	}
	return nil
}

func (s *invoiceService) Email(ctx context.Context, id, toEmail, toName string) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("invoiceService.Email: %w", err)
	}
	if err := s.email.SendInvoiceEmail(ctx, toEmail, toName, inv); err != nil {
		return fmt.Errorf("invoiceService.Email: %w", err)
	}
	return nil
}
