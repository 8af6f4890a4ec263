package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type ReconciliationHandler struct {
	reconciliationSvc portssvc.ReconciliationSvcFacade
}

func NewReconciliationHandler(reconciliationSvc portssvc.ReconciliationSvcFacade) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationSvc: reconciliationSvc}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationSvc portssvc.ReconciliationSvcFacade) {
	h := NewReconciliationHandler(reconciliationSvc)
	txns := rg.Group("/bank-transactions")
	{
		txns.POST("", h.ImportTransaction)
		txns.GET("/unmatched", h.ListUnmatched)
		txns.GET("/:transactionID", h.GetTransaction)
		txns.POST("/:transactionID/match", h.MatchTransaction)
		txns.POST("/:transactionID/unmatch", h.UnmatchTransaction)
		txns.POST("/:transactionID/ignore", h.IgnoreTransaction)
	}
}

func (h *ReconciliationHandler) ImportTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.ImportBankTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.reconciliationSvc.ImportBankTransaction(ctx, tenantID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankTransactionResponse(txn))
}

func (h *ReconciliationHandler) GetTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	txn, err := h.reconciliationSvc.GetTransactionByID(ctx, tenantID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *ReconciliationHandler) ListUnmatched(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	txns, err := h.reconciliationSvc.ListUnmatchedTransactions(ctx, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToBankTransactionResponses(txns)})
}

func (h *ReconciliationHandler) MatchTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.MatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.reconciliationSvc.MatchTransactionToInvoice(ctx, tenantID, c.Param("transactionID"), req.InvoiceID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *ReconciliationHandler) UnmatchTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.UnmatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.reconciliationSvc.UnmatchTransaction(ctx, tenantID, c.Param("transactionID"), req.Reason, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

func (h *ReconciliationHandler) IgnoreTransaction(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	txn, err := h.reconciliationSvc.IgnoreTransaction(ctx, tenantID, c.Param("transactionID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}
