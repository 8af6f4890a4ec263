package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantHeader = "X-Tenant-ID"
	actorHeader  = "X-Actor-ID"
)

// TenantResolutionMiddleware requires an X-Tenant-ID header on every request
// and stores it in the request context. The core never reads ambient tenant
// state: handlers pull the id out of the context and pass it to services as an
// explicit parameter.
func TenantResolutionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(tenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + tenantHeader + " header"})
			return
		}

		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			actorID = "system"
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, actorIDKey, actorID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant id resolved for this request.
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// GetActorIDFromContext retrieves the acting user id for this request.
func GetActorIDFromContext(ctx context.Context) string {
	actorID, ok := ctx.Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "system"
	}
	return actorID
}
