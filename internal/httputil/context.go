package httputil

import (
	"context"
	"net/http"

	"classroom/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	claimsKey     contextKey = "claims"
	credentialKey contextKey = "credential"
)

// WithIdentity stores the verified claims and the raw bearer token they came
// from. The token is kept so it can be forwarded to downstream services.
func WithIdentity(r *http.Request, claims *models.Claims, credential string) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	ctx = context.WithValue(ctx, credentialKey, credential)
	return r.WithContext(ctx)
}

// GetClaims retrieves the verified claims, or nil for unauthenticated routes.
func GetClaims(r *http.Request) *models.Claims {
	claims, _ := r.Context().Value(claimsKey).(*models.Claims)
	return claims
}

// GetUserID retrieves the authenticated subject, returns empty string if not found
func GetUserID(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}

// GetCredential retrieves the raw bearer token, returns empty string if not found
func GetCredential(r *http.Request) string {
	credential, _ := r.Context().Value(credentialKey).(string)
	return credential
}
