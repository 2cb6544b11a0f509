package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billforge/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	repo port.InvoiceRepository
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(repo port.InvoiceRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Ready means the invoice store answers a
// read.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := h.repo.List(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "invoice store not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
