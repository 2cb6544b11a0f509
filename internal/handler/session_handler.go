package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billforge/internal/domain"
	"billforge/internal/drafter"
	"billforge/internal/port"
	"billforge/internal/service"
	"billforge/internal/tax"
)

// SessionHandler serves the live invoice editing session.
type SessionHandler struct {
	session service.SessionService
	drafter port.InvoiceDrafter
}

// NewSessionHandler creates a new SessionHandler. drafter may be nil when
// no AI provider is configured.
func NewSessionHandler(session service.SessionService, drafter port.InvoiceDrafter) *SessionHandler {
	return &SessionHandler{session: session, drafter: drafter}
}

// sessionView is the session snapshot plus everything derived from it.
type sessionView struct {
	domain.SessionState
	Totals  domain.InvoiceTotals `json:"totals"`
	Tax     domain.TaxTotals     `json:"tax"`
	Summary []tax.RateSummary    `json:"tax_summary"`
}

func (h *SessionHandler) view() sessionView {
	state := h.session.State()
	return sessionView{
		SessionState: state,
		Totals:       h.session.Totals(),
		Tax:          h.session.TaxBreakup(),
		Summary:      tax.SummaryByRate(state.LineItems, state.Seller.State, state.Customer.State),
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(c *gin.Context) {
	RespondOK(c, h.view())
}

// New handles POST /api/v1/session/new
func (h *SessionHandler) New(c *gin.Context) {
	if err := h.session.New(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.view())
}

// Save handles POST /api/v1/session/save
func (h *SessionHandler) Save(c *gin.Context) {
	saved, err := h.session.Save(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// Load handles POST /api/v1/session/load/:id
func (h *SessionHandler) Load(c *gin.Context) {
	if err := h.session.Load(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.view())
}

// SetInvoice handles PUT /api/v1/session/invoice
func (h *SessionHandler) SetInvoice(c *gin.Context) {
	var req domain.Invoice
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid invoice payload")
		return
	}
	h.session.SetInvoice(req)
	RespondOK(c, h.view())
}

func (h *SessionHandler) bindParty(c *gin.Context) (domain.Party, bool) {
	var req domain.Party
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid party payload")
		return domain.Party{}, false
	}
	return req, true
}

// SetSeller handles PUT /api/v1/session/seller
func (h *SessionHandler) SetSeller(c *gin.Context) {
	party, ok := h.bindParty(c)
	if !ok {
		return
	}
	h.session.SetSeller(party)
	RespondOK(c, h.view())
}

// SetCustomer handles PUT /api/v1/session/customer
func (h *SessionHandler) SetCustomer(c *gin.Context) {
	party, ok := h.bindParty(c)
	if !ok {
		return
	}
	h.session.SetCustomer(party)
	RespondOK(c, h.view())
}

// SetConsignee handles PUT /api/v1/session/consignee
func (h *SessionHandler) SetConsignee(c *gin.Context) {
	party, ok := h.bindParty(c)
	if !ok {
		return
	}
	h.session.SetConsignee(party)
	RespondOK(c, h.view())
}

// SetConsigneeMirror handles PUT /api/v1/session/consignee-mirror
func (h *SessionHandler) SetConsigneeMirror(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "enabled is required")
		return
	}
	h.session.SetMirrorConsignee(*req.Enabled)
	RespondOK(c, h.view())
}

// AddLineItem handles POST /api/v1/session/line-items
func (h *SessionHandler) AddLineItem(c *gin.Context) {
	item := h.session.AddLineItem()
	RespondCreated(c, item)
}

// UpdateLineItem handles PUT /api/v1/session/line-items/:id
func (h *SessionHandler) UpdateLineItem(c *gin.Context) {
	var req domain.LineItem
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid line item payload")
		return
	}
	req.ID = c.Param("id")
	if err := h.session.UpdateLineItem(req); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.view())
}

// RemoveLineItem handles DELETE /api/v1/session/line-items/:id
func (h *SessionHandler) RemoveLineItem(c *gin.Context) {
	if err := h.session.RemoveLineItem(c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.view())
}

// Draft handles POST /api/v1/session/draft
func (h *SessionHandler) Draft(c *gin.Context) {
	if h.drafter == nil {
		RespondError(c, http.StatusBadRequest, "DRAFTER_DISABLED", "no AI drafter provider is configured")
		return
	}

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "prompt is required")
		return
	}

	out, err := h.drafter.Draft(c.Request.Context(), port.DraftInput{
		Description: req.Prompt,
		Today:       time.Now().Format("2006-01-02"),
	})
	if err != nil {
		var rlErr *drafter.RateLimitError
		if errors.As(err, &rlErr) {
			HandleError(c, err)
			return
		}
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrDraftFailed, err))
		return
	}

	h.session.ApplyDraft(out.Draft)
	RespondOK(c, h.view())
}
