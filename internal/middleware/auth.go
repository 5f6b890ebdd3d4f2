package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"classroom/internal/auth"
	"classroom/internal/httputil"
)

// Auth verifies the bearer token on every request except the public paths
// and stores the claims and raw token in the request context.
func Auth(verifier auth.CredentialVerifier, logger *slog.Logger, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Pre-flight requests carry no credentials
			if public[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("authentication failed",
					"path", r.URL.Path,
					"method", r.Method,
					"error", err,
				)
				unauthorized(w, rejectionDetail(err))
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, claims, token))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively; the token is returned as sent.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectionDetail(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpired):
		return "token expired"
	case errors.Is(err, auth.ErrBadSignature):
		return "invalid token signature"
	default:
		return "malformed token"
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	httputil.RespondError(w, http.StatusUnauthorized, detail)
}
