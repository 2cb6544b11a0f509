package router

import (
	"github.com/gin-gonic/gin"

	"billforge/internal/handler"
	"billforge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	sessionH *handler.SessionHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Live editing session
	session := v1.Group("/session")
	session.GET("", sessionH.Get)
	session.POST("/new", sessionH.New)
	session.POST("/save", sessionH.Save)
	session.POST("/load/:id", sessionH.Load)
	session.PUT("/invoice", sessionH.SetInvoice)
	session.PUT("/seller", sessionH.SetSeller)
	session.PUT("/customer", sessionH.SetCustomer)
	session.PUT("/consignee", sessionH.SetConsignee)
	session.PUT("/consignee-mirror", sessionH.SetConsigneeMirror)
	session.POST("/line-items", sessionH.AddLineItem)
	session.PUT("/line-items/:id", sessionH.UpdateLineItem)
	session.DELETE("/line-items/:id", sessionH.RemoveLineItem)
	session.POST("/draft", sessionH.Draft)

	// Saved invoices
	invoices := v1.Group("/invoices")
	invoices.GET("", invoiceH.List)
	invoices.GET("/next-number", invoiceH.NextNumber)
	invoices.GET("/export/csv", invoiceH.ExportCSV)
	invoices.GET("/export/xlsx", invoiceH.ExportXLSX)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.GET("/:id/pdf", invoiceH.PDF)
	invoices.POST("/:id/email", invoiceH.Email)

	return r
}
