package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type InvoiceHandler struct {
	invoiceSvc portssvc.InvoiceSvcFacade
}

func NewInvoiceHandler(invoiceSvc portssvc.InvoiceSvcFacade) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceSvc portssvc.InvoiceSvcFacade) {
	h := NewInvoiceHandler(invoiceSvc)
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("/open", h.ListOpenInvoices)
		invoices.GET("/:invoiceID", h.GetInvoice)
	}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceSvc.CreateInvoice(ctx, tenantID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	invoice, err := h.invoiceSvc.GetInvoiceByID(ctx, tenantID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

func (h *InvoiceHandler) ListOpenInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	invoices, err := h.invoiceSvc.ListOpenInvoices(ctx, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": dto.ToInvoiceResponses(invoices)})
}
