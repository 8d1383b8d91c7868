package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const TenantIDKey ContextKey = "tenantId"
const TenantNameKey ContextKey = "tenantName"

var JwtSecret = []byte(envOr("JWT_SECRET", "dev-only-secret"))

var Ctx = context.Background()

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
