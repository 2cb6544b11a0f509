package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/port"
	"billforge/internal/tax"
)

// defaultDeclaration is printed on every fresh invoice unless edited.
const defaultDeclaration = "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct."

// dueDateOffsetDays is added to the invoice date to seed the due date.
const dueDateOffsetDays = 15

// SessionService manages the single live invoice editing session. All
// mutations are serialized behind a mutex; reads return snapshots so the
// caller never sees a half-applied edit.
type SessionService interface {
	// New resets the session to a fresh invoice: config-seeded seller,
	// blank customer and consignee, today's date, due date 15 days out,
	// and one blank line item.
	New(ctx context.Context) error
	// Load replaces the session with a saved invoice.
	Load(ctx context.Context, id string) error
	// Save persists the session, creating a new record on first save and
	// updating the existing one after. A failed save leaves session state
	// unchanged.
	Save(ctx context.Context) (*domain.SavedInvoice, error)

	State() domain.SessionState
	Totals() domain.InvoiceTotals
	TaxBreakup() domain.TaxTotals

	SetInvoice(inv domain.Invoice)
	SetSeller(p domain.Party)
	SetCustomer(p domain.Party)
	SetConsignee(p domain.Party)
	SetMirrorConsignee(enabled bool)

	AddLineItem() domain.LineItem
	UpdateLineItem(item domain.LineItem) error
	RemoveLineItem(id string) error

	ApplyDraft(draft *domain.InvoiceDraft)
}

type sessionService struct {
	mu        sync.Mutex
	state     domain.SessionState
	repo      port.InvoiceRepository
	numbering NumberingService
	seller    config.SellerConfig
	now       func() time.Time
}

// NewSessionService creates a SessionService seeded from the configured
// seller identity. The session starts empty; callers should invoke New
// before serving edits.
func NewSessionService(repo port.InvoiceRepository, numbering NumberingService, seller config.SellerConfig) SessionService {
	return &sessionService{
		repo:      repo,
		numbering: numbering,
		seller:    seller,
		now:       time.Now,
	}
}

func (s *sessionService) sellerParty() domain.Party {
	return domain.Party{
		Name:       s.seller.Name,
		Address:    s.seller.Address,
		Pincode:    s.seller.Pincode,
		State:      s.seller.State,
		Email:      s.seller.Email,
		MobNo:      s.seller.MobNo,
		GSTIN:      s.seller.GSTIN,
		PAN:        s.seller.PAN,
		BankName:   s.seller.BankName,
		BranchName: s.seller.BranchName,
		AccountNo:  s.seller.AccountNo,
		IFSCCode:   s.seller.IFSCCode,
	}
}

func blankLineItem() domain.LineItem {
	return domain.LineItem{
		ID:       uuid.New().String(),
		Quantity: 1,
		Rate:     0,
		Per:      "pcs",
		Discount: 0,
		TaxRate:  18,
	}
}

func (s *sessionService) New(ctx context.Context) error {
	number, err := s.numbering.Next(ctx)
	if err != nil {
		return fmt.Errorf("sessionService.New: %w", err)
	}

	today := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionState{
		Invoice: domain.Invoice{
			InvoiceNumber: number,
			InvoiceDate:   today.Format("2006-01-02"),
			DueDate:       today.AddDate(0, 0, dueDateOffsetDays).Format("2006-01-02"),
			Declaration:   defaultDeclaration,
		},
		Seller: s.sellerParty(),
		// Consignee mirroring starts on; customer edits copy into the
		// consignee until the toggle is switched off.
		MirrorConsignee: true,
		LineItems:       []domain.LineItem{blankLineItem()},
	}
	return nil
}

func (s *sessionService) Load(ctx context.Context, id string) error {
	saved, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("sessionService.Load: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.SessionState{
		ID:        saved.ID,
		Invoice:   saved.Invoice,
		Seller:    saved.Seller,
		Customer:  saved.Customer,
		Consignee: saved.Consignee,
		LineItems: append([]domain.LineItem(nil), saved.LineItems...),
	}
	return nil
}

func (s *sessionService) Save(ctx context.Context) (*domain.SavedInvoice, error) {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	isNew := snapshot.ID == ""
	if isNew {
		snapshot.ID = uuid.New().String()
	}

	var err error
	if isNew {
		err = s.repo.Create(ctx, snapshot)
	} else {
		err = s.repo.Update(ctx, snapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("sessionService.Save: %w", err)
	}

	// Only adopt the new ID once the write succeeded.
	if isNew {
		s.mu.Lock()
		s.state.ID = snapshot.ID
		s.mu.Unlock()
	}
	return snapshot, nil
}

// snapshotLocked builds a SavedInvoice from the current state with totals
// recomputed from the line items. Caller holds the mutex.
func (s *sessionService) snapshotLocked() *domain.SavedInvoice {
	totals := tax.Totals(s.state.LineItems)
	return &domain.SavedInvoice{
		ID:         s.state.ID,
		Invoice:    s.state.Invoice,
		Seller:     s.state.Seller,
		Customer:   s.state.Customer,
		Consignee:  s.state.Consignee,
		LineItems:  append([]domain.LineItem(nil), s.state.LineItems...),
		SubTotal:   totals.SubTotal,
		TaxTotal:   totals.TaxTotal,
		GrandTotal: totals.GrandTotal,
	}
}

func (s *sessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.LineItems = append([]domain.LineItem(nil), s.state.LineItems...)
	return state
}

// Totals recomputes invoice totals from the current line items; they are
// never cached.
func (s *sessionService) Totals() domain.InvoiceTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tax.Totals(s.state.LineItems)
}

func (s *sessionService) TaxBreakup() domain.TaxTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tax.Breakup(s.state.LineItems, s.state.Seller.State, s.state.Customer.State)
}

func (s *sessionService) SetInvoice(inv domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Invoice = inv
}

func (s *sessionService) SetSeller(p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Seller = p
}

func (s *sessionService) SetCustomer(p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Customer = p
	if s.state.MirrorConsignee {
		s.state.Consignee = p
	}
}

// SetConsignee writes the consignee directly and switches mirroring off;
// an explicit consignee edit always wins over the mirror.
func (s *sessionService) SetConsignee(p domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Consignee = p
	s.state.MirrorConsignee = false
}

// SetMirrorConsignee toggles customer-to-consignee mirroring. Enabling it
// copies the customer immediately; disabling freezes the consignee at its
// last mirrored value.
func (s *sessionService) SetMirrorConsignee(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MirrorConsignee = enabled
	if enabled {
		s.state.Consignee = s.state.Customer
	}
}

func (s *sessionService) AddLineItem() domain.LineItem {
	item := blankLineItem()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LineItems = append(s.state.LineItems, item)
	return item
}

func (s *sessionService) UpdateLineItem(item domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.LineItems {
		if s.state.LineItems[i].ID == item.ID {
			s.state.LineItems[i] = item
			return nil
		}
	}
	return domain.ErrLineItemNotFound
}

func (s *sessionService) RemoveLineItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.LineItems {
		if s.state.LineItems[i].ID == id {
			s.state.LineItems = append(s.state.LineItems[:i], s.state.LineItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrLineItemNotFound
}

// ApplyDraft merges a drafter result into the session. Nil fields leave
// existing state untouched. Draft line items replace the current items
// wholesale and receive fresh IDs; model-assigned IDs are never trusted.
func (s *sessionService) ApplyDraft(draft *domain.InvoiceDraft) {
	if draft == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.Seller != nil {
		s.state.Seller = *draft.Seller
	}
	if draft.Customer != nil {
		s.state.Customer = *draft.Customer
		if s.state.MirrorConsignee {
			s.state.Consignee = *draft.Customer
		}
	}
	if draft.Consignee != nil {
		s.state.Consignee = *draft.Consignee
		s.state.MirrorConsignee = false
	}
	if draft.InvoiceNumber != nil {
		s.state.Invoice.InvoiceNumber = *draft.InvoiceNumber
	}
	if draft.InvoiceDate != nil {
		s.state.Invoice.InvoiceDate = *draft.InvoiceDate
	}
	if draft.DueDate != nil {
		s.state.Invoice.DueDate = *draft.DueDate
	}
	if draft.PurchaseOrderNumber != nil {
		s.state.Invoice.PurchaseOrderNumber = *draft.PurchaseOrderNumber
	}
	if draft.PlaceOfDelivery != nil {
		s.state.Invoice.PlaceOfDelivery = *draft.PlaceOfDelivery
	}
	if len(draft.LineItems) > 0 {
		items := make([]domain.LineItem, 0, len(draft.LineItems))
		for _, item := range draft.LineItems {
			item.ID = uuid.New().String()
			items = append(items, item)
		}
		s.state.LineItems = items
	}
}
