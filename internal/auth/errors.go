package auth

import (
	"errors"

	"classroom/internal/domain"
)

// Verification failure kinds. Every *AuthError also matches domain.ErrUnauthorized.
var (
	ErrBadSignature    = errors.New("bad token signature")
	ErrExpired         = errors.New("token expired")
	ErrMalformedClaims = errors.New("malformed token claims")
)

// AuthError describes why a bearer token was rejected.
// Use errors.Is with ErrBadSignature, ErrExpired or ErrMalformedClaims to
// tell the kinds apart; the route layer only needs domain.ErrUnauthorized.
type AuthError struct {
	Kind   error
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *AuthError) Unwrap() []error {
	return []error{e.Kind, domain.ErrUnauthorized}
}

func newAuthError(kind error, detail string) *AuthError {
	return &AuthError{Kind: kind, Detail: detail}
}
