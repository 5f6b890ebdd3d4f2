package auth

import (
	"errors"
	"log/slog"
	"time"

	"classroom/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier implements CredentialVerifier for HS256 tokens signed with a
// secret shared by every service. It performs no I/O; the wall clock is the
// only outside input.
type HMACVerifier struct {
	secret []byte
	issuer string
	now    func() time.Time
	logger *slog.Logger
}

// HMACOption customizes an HMACVerifier.
type HMACOption func(*HMACVerifier)

// WithIssuer requires tokens to carry the given iss claim.
func WithIssuer(issuer string) HMACOption {
	return func(v *HMACVerifier) { v.issuer = issuer }
}

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) HMACOption {
	return func(v *HMACVerifier) { v.now = now }
}

// NewHMACVerifier creates a verifier for tokens signed with sharedSecret.
func NewHMACVerifier(sharedSecret string, logger *slog.Logger, opts ...HMACOption) (*HMACVerifier, error) {
	if sharedSecret == "" {
		return nil, errors.New("shared secret cannot be empty")
	}

	v := &HMACVerifier{
		secret: []byte(sharedSecret),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// VerifyToken validates an HS256 token and extracts its claims.
// Expiry is checked before the signature.
func (v *HMACVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	now := v.now()

	if err := peekClaims(tokenString, now); err != nil {
		v.logger.Debug("token rejected", "error", err)
		return nil, err
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	var tc tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &tc, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		authErr := classifyParseError(err)
		v.logger.Debug("token rejected", "error", authErr)
		return nil, authErr
	}
	if !token.Valid {
		return nil, newAuthError(ErrBadSignature, "token is not valid")
	}

	if v.issuer != "" && tc.Issuer != v.issuer {
		v.logger.Debug("token rejected", "issuer", tc.Issuer, "expected", v.issuer)
		return nil, newAuthError(ErrMalformedClaims, "unexpected issuer "+tc.Issuer)
	}

	return toClaims(&tc)
}

// Close is a no-op; the verifier holds no resources.
func (v *HMACVerifier) Close() error {
	return nil
}
