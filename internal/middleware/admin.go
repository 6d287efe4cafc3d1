package middleware

import (
	"crypto/subtle"
	"net/http"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards operator routes. An empty configured key disables them.
func RequireAdminKey(apiKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(AdminKeyHeader)
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(apiKey)) != 1 {
				writeError(w, r, http.StatusUnauthorized, ErrorCodeUnauthorized, ErrorMessageInvalidAdminKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
