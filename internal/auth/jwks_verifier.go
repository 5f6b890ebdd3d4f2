package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"classroom/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier implements CredentialVerifier using public keys published by
// the identity provider as a JWKS document. Used instead of HMACVerifier when
// the provider signs with asymmetric keys.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	cancel context.CancelFunc
	now    func() time.Time
	logger *slog.Logger
}

// NewJWKSVerifierFromURL creates a verifier that fetches public keys from a JWKS endpoint.
// The keys are cached and refreshed in the background until Close is called.
func NewJWKSVerifierFromURL(jwksURL string, logger *slog.Logger) (*JWKSVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWKS verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		cancel: cancel,
		now:    time.Now,
		logger: logger,
	}, nil
}

// NewJWKSVerifierFromJSON creates a verifier from a static JWKS document.
// Nothing is fetched; rotating keys means restarting with a new document.
func NewJWKSVerifierFromJSON(raw []byte, logger *slog.Logger) (*JWKSVerifier, error) {
	jwks, err := keyfunc.NewJWKSetJSON(json.RawMessage(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS document: %w", err)
	}

	logger.Info("JWKS verifier initialized from static key set")

	return &JWKSVerifier{
		jwks:   jwks,
		cancel: func() {},
		now:    time.Now,
		logger: logger,
	}, nil
}

// VerifyToken validates an RS256 or ES256 token and extracts its claims.
func (v *JWKSVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	now := v.now()

	if err := peekClaims(tokenString, now); err != nil {
		v.logger.Debug("token rejected", "error", err)
		return nil, err
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		authErr := classifyParseError(err)
		v.logger.Debug("token rejected", "error", authErr)
		return nil, authErr
	}
	if !token.Valid {
		return nil, newAuthError(ErrBadSignature, "token is not valid")
	}

	return toClaims(&tc)
}

// Close stops the background key refresh.
func (v *JWKSVerifier) Close() error {
	v.cancel()
	v.logger.Info("JWKS verifier closed")
	return nil
}
