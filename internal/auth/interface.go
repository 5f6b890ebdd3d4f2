package auth

import "classroom/internal/domain/models"

// CredentialVerifier defines the interface for bearer token verification.
// This abstraction keeps the middleware agnostic to how tokens are signed
// (shared-secret HMAC or an identity provider's published keys).
type CredentialVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns an *AuthError (ErrBadSignature, ErrExpired or ErrMalformedClaims)
	// if the token cannot be trusted.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	// Should be called when the verifier is no longer needed.
	Close() error
}
