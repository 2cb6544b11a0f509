package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"billforge/internal/domain"
	"billforge/internal/export"
	"billforge/internal/service"
)

// InvoiceHandler serves saved invoices: listing, rendering, export, and
// email delivery.
type InvoiceHandler struct {
	invoices  service.InvoiceService
	numbering service.NumberingService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices service.InvoiceService, numbering service.NumberingService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, numbering: numbering}
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoices.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoices)
}

// NextNumber handles GET /api/v1/invoices/next-number
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.numbering.Next(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"invoice_number": number})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	inv, err := h.invoices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// PDF handles GET /api/v1/invoices/:id/pdf?copy=original|office|challan
func (h *InvoiceHandler) PDF(c *gin.Context) {
	copyParam := c.DefaultQuery("copy", "original")
	copyType, ok := domain.AllowedCopyTypes[copyParam]
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_COPY_TYPE", "copy must be one of: original, office, challan")
		return
	}

	pdf, archiveURL, err := h.invoices.RenderPDF(c.Request.Context(), c.Param("id"), copyType)
	if err != nil {
		HandleError(c, err)
		return
	}

	if archiveURL != "" {
		c.Header("X-Archive-URL", archiveURL)
	}
	filename := export.BuildFilename("invoice_"+c.Param("id"), "pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Email handles POST /api/v1/invoices/:id/email
func (h *InvoiceHandler) Email(c *gin.Context) {
	var req struct {
		ToEmail string `json:"to_email" binding:"required,email"`
		ToName  string `json:"to_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "to_email is required")
		return
	}

	if err := h.invoices.Email(c.Request.Context(), c.Param("id"), req.ToEmail, req.ToName); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"sent": true})
}

// ExportCSV handles GET /api/v1/invoices/export/csv
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.invoices.ExportCSV(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoices", "csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/invoices/export/xlsx
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.invoices.ExportXLSX(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoices", "xlsx")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
