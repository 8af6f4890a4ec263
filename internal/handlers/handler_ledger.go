package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type LedgerHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

func NewLedgerHandler(ledgerSvc portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerSvc portssvc.LedgerSvcFacade) {
	h := NewLedgerHandler(ledgerSvc)
	entries := rg.Group("/entries")
	{
		entries.POST("", h.CreateEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/:entryID", h.GetEntry)
		entries.PUT("/:entryID", h.UpdateEntry)
		entries.DELETE("/:entryID", h.DeleteEntry)
		entries.POST("/:entryID/post", h.PostEntry)
		entries.POST("/:entryID/reverse", h.ReverseEntry)
	}
}

func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.ledgerSvc.CreateEntry(ctx, tenantID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *LedgerHandler) UpdateEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.ledgerSvc.UpdateEntry(ctx, tenantID, c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *LedgerHandler) PostEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	entry, err := h.ledgerSvc.PostEntry(ctx, tenantID, c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *LedgerHandler) ReverseEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	reversal, err := h.ledgerSvc.ReverseEntry(ctx, tenantID, c.Param("entryID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

func (h *LedgerHandler) DeleteEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	if err := h.ledgerSvc.DeleteEntry(ctx, tenantID, c.Param("entryID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LedgerHandler) GetEntry(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	entry, err := h.ledgerSvc.GetEntryByID(ctx, tenantID, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *LedgerHandler) ListEntries(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.ledgerSvc.ListEntries(ctx, tenantID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToEntrySummaryResponses(entries)})
}
