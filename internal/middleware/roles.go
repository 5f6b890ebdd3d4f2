package middleware

import (
	"net/http"

	"classroom/internal/domain/models"
	"classroom/internal/httputil"
)

// RequireRoles admits only callers whose role is in the allow-list.
// It must run after Auth.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := httputil.GetClaims(r)
			if claims == nil {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if !claims.HasRole(roles...) {
				httputil.RespondError(w, http.StatusForbidden, "role "+claims.Role.String()+" may not access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRolesFunc is RequireRoles for a single handler function.
func RequireRolesFunc(h http.HandlerFunc, roles ...models.Role) http.Handler {
	return RequireRoles(roles...)(h)
}
