package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

type ReportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
}

func NewReportingHandler(reportingSvc portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := NewReportingHandler(reportingSvc)
	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.ProfitAndLoss)
		reports.GET("/balance-sheet", h.BalanceSheet)
		reports.GET("/trial-balance", h.TrialBalance)
	}
}

const dateLayout = "2006-01-02"

func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter " + name})
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date for " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *ReportingHandler) ProfitAndLoss(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingSvc.ProfitAndLoss(ctx, tenantID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportingHandler) BalanceSheet(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingSvc.BalanceSheet(ctx, tenantID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportingHandler) TrialBalance(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID, _ := middleware.GetTenantIDFromContext(ctx)

	asOf, ok := parseDateParam(c, "asOf")
	if !ok {
		return
	}

	rows, err := h.reportingSvc.TrialBalance(ctx, tenantID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
