package middleware

import (
	"context"
	"net/http"
	"strings"
)

// contextKey namespaces the values this package stores on request contexts.
type contextKey string

const (
	TenantIDKey    contextKey = "tenantID"
	TenantIDHeader string     = "X-Tenant-ID"
)

// RequireTenant rejects requests without an X-Tenant-ID header and stores the
// tenant in the request context. The header is set by the upstream auth layer.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(TenantIDHeader))
		if tenantID == "" {
			writeError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, ErrorMessageMissingTenant)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(TenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}
