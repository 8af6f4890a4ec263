package middleware

// contextKey is a private type for context values set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	tenantIDKey = contextKey("tenantID")
	actorIDKey  = contextKey("actorID")
)
