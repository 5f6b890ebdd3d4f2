package server

import (
	"fmt"
	"log/slog"
	"os"

	"classroom/internal/auth"
	"classroom/internal/config"
)

// NewVerifier picks the credential verifier from configuration. A static
// JWKS document wins over a JWKS URL, which wins over the shared secret.
func NewVerifier(cfg *config.Config, logger *slog.Logger) (auth.CredentialVerifier, error) {
	switch {
	case cfg.JWKSFile != "":
		raw, err := os.ReadFile(cfg.JWKSFile)
		if err != nil {
			return nil, fmt.Errorf("read JWKS file: %w", err)
		}
		logger.Info("verifying credentials with static JWKS", "path", cfg.JWKSFile)
		return auth.NewJWKSVerifierFromJSON(raw, logger)
	case cfg.JWKSURL != "":
		logger.Info("verifying credentials with remote JWKS", "url", cfg.JWKSURL)
		return auth.NewJWKSVerifierFromURL(cfg.JWKSURL, logger)
	default:
		var opts []auth.HMACOption
		if cfg.JWTIssuer != "" {
			opts = append(opts, auth.WithIssuer(cfg.JWTIssuer))
		}
		logger.Info("verifying credentials with shared secret", "issuer", cfg.JWTIssuer)
		return auth.NewHMACVerifier(cfg.JWTSecret, logger, opts...)
	}
}
