package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type JournalHandler struct {
	journalSvc portssvc.JournalSvcFacade
}

func NewJournalHandler(journalSvc portssvc.JournalSvcFacade) *JournalHandler {
	return &JournalHandler{journalSvc: journalSvc}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalSvc portssvc.JournalSvcFacade) {
	h := NewJournalHandler(journalSvc)
	journals := rg.Group("/journals")
	{
		journals.POST("", h.CreateJournal)
		journals.GET("", h.ListJournals)
		journals.GET("/:journalID", h.GetJournal)
		journals.PUT("/:journalID", h.UpdateJournal)
	}
}

func (h *JournalHandler) CreateJournal(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.journalSvc.CreateJournal(ctx, tenantID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *JournalHandler) UpdateJournal(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal, err := h.journalSvc.UpdateJournal(ctx, tenantID, c.Param("journalID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *JournalHandler) GetJournal(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	journal, err := h.journalSvc.GetJournalByID(ctx, tenantID, c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *JournalHandler) ListJournals(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	journals, err := h.journalSvc.ListJournals(ctx, tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journals": dto.ToJournalResponses(journals)})
}
