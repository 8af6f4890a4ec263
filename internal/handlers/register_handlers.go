package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// RegisterRoutes sets up the router: request logging, CORS, tenant resolution
// and the v1 API over the service facades. Authentication is handled upstream
// of this service and is not wired here.
func RegisterRoutes(r *gin.Engine, baseLogger *slog.Logger, services *portssvc.ServiceContainer) {
	r.Use(middleware.StructuredLoggingMiddleware(baseLogger))
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1", middleware.TenantResolutionMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
	registerInvoiceRoutes(v1, services.Invoice)
	registerReconciliationRoutes(v1, services.Reconciliation)
}
