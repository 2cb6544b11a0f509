package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"billforge/internal/port"
)

// seedInvoiceNumber is the number assigned when no invoices exist yet:
// sequence 1 for the FY 25-26 pair.
const seedInvoiceNumber = "0001-25-26"

// NumberingService derives the next sequential invoice number from the
// most recently saved invoice.
type NumberingService interface {
	Next(ctx context.Context) (string, error)
}

type numberingService struct {
	repo port.InvoiceRepository
}

// NewNumberingService creates a NumberingService backed by the invoice store.
func NewNumberingService(repo port.InvoiceRepository) NumberingService {
	return &numberingService{repo: repo}
}

// Next returns the next invoice number in NNNN-YY-YY form. The financial
// year tokens of the last saved number are carried forward verbatim, never
// recomputed from the current date: after a fiscal-year rollover the
// sequence keeps the old tokens until the first number is edited by hand.
func (s *numberingService) Next(ctx context.Context) (string, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("numberingService.Next: %w", err)
	}
	if len(invoices) == 0 {
		return seedInvoiceNumber, nil
	}

	// List is sorted descending by invoice number, so the first entry is
	// the latest.
	last := invoices[0].Invoice.InvoiceNumber

	parts := strings.Split(last, "-")
	if len(parts) == 3 {
		if seq, err := strconv.Atoi(parts[0]); err == nil {
			return fmt.Sprintf("%04d-%s-%s", seq+1, parts[1], parts[2]), nil
		}
	}

	// Unexpected format: fall back to a timestamp-based identifier. Unique,
	// but outside the sequential format contract.
	log.Printf("service.NumberingService: cannot parse last invoice number %q, using timestamp fallback", last)
	return fmt.Sprintf("INV-%d", time.Now().UnixMilli()), nil
}
