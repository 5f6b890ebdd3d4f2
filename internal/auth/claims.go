package auth

import (
	"errors"
	"time"

	"classroom/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the wire shape of the token payload.
// Role stays a plain string here so an unknown value surfaces as
// ErrMalformedClaims instead of a JSON decode error.
type tokenClaims struct {
	jwt.RegisteredClaims        // sub, iss, exp, ...
	Role                 string `json:"role"`
}

// peekClaims decodes the payload without verifying the signature and
// enforces the expiry check first, so an expired token reports ErrExpired
// whatever the state of its signature.
func peekClaims(tokenString string, now time.Time) error {
	var unverified tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &unverified); err != nil {
		return newAuthError(ErrMalformedClaims, err.Error())
	}
	if unverified.ExpiresAt == nil {
		return newAuthError(ErrMalformedClaims, "missing exp claim")
	}
	if !now.Before(unverified.ExpiresAt.Time) {
		return newAuthError(ErrExpired, "expired at "+unverified.ExpiresAt.Time.UTC().Format(time.RFC3339))
	}
	return nil
}

// classifyParseError maps golang-jwt validation errors onto the AuthError kinds.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newAuthError(ErrExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return newAuthError(ErrBadSignature, err.Error())
	default:
		return newAuthError(ErrMalformedClaims, err.Error())
	}
}

// toClaims converts verified wire claims into the domain Claims.
func toClaims(tc *tokenClaims) (*models.Claims, error) {
	if tc.Subject == "" {
		return nil, newAuthError(ErrMalformedClaims, "missing sub claim")
	}
	if tc.ExpiresAt == nil {
		return nil, newAuthError(ErrMalformedClaims, "missing exp claim")
	}
	role, err := models.ParseRole(tc.Role)
	if err != nil {
		return nil, newAuthError(ErrMalformedClaims, err.Error())
	}

	return &models.Claims{
		Subject:   tc.Subject,
		Role:      role,
		ExpiresAt: tc.ExpiresAt.Time,
		Issuer:    tc.Issuer,
	}, nil
}
