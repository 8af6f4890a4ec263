package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/dto"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type AccountHandler struct {
	accountSvc portssvc.AccountSvcFacade
}

func NewAccountHandler(accountSvc portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade) {
	h := NewAccountHandler(accountSvc)
	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/:accountID", h.GetAccount)
		accounts.PUT("/:accountID", h.UpdateAccount)
		accounts.DELETE("/:accountID", h.DeactivateAccount)
	}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountSvc.CreateAccount(ctx, tenantID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountSvc.UpdateAccount(ctx, tenantID, c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	userID := middleware.GetActorIDFromContext(ctx)

	if err := h.accountSvc.DeactivateAccount(ctx, tenantID, c.Param("accountID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	account, err := h.accountSvc.GetAccountByID(ctx, tenantID, c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)
	includeInactive := c.Query("includeInactive") == "true"

	accounts, err := h.accountSvc.ListAccounts(ctx, tenantID, includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}
