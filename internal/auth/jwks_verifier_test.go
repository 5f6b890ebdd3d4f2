package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"classroom/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKID = "classroom-test-key"

func rsaJWKS(t *testing.T, key *rsa.PublicKey) []byte {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"kid": testKID,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func signRS(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJWKSVerifier_FromJSON(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, err := NewJWKSVerifierFromJSON(rsaJWKS(t, &key.PublicKey), discardLogger())
	require.NoError(t, err)
	defer v.Close()

	claims := jwt.MapClaims{
		"sub":  "student-7",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	got, err := v.VerifyToken(signRS(t, key, claims))
	require.NoError(t, err)
	assert.Equal(t, "student-7", got.Subject)
	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestJWKSVerifier_RejectsForeignKey(t *testing.T) {
	trusted, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	attacker, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, err := NewJWKSVerifierFromJSON(rsaJWKS(t, &trusted.PublicKey), discardLogger())
	require.NoError(t, err)

	_, err = v.VerifyToken(signRS(t, attacker, jwt.MapClaims{
		"sub":  "student-7",
		"role": "student",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}))
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestJWKSVerifier_RejectsHMACConfusion(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, err := NewJWKSVerifierFromJSON(rsaJWKS(t, &key.PublicKey), discardLogger())
	require.NoError(t, err)

	_, err = v.VerifyToken(signHS(t, jwt.SigningMethodHS256, "guess", jwt.MapClaims{
		"sub":  "admin-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}))
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestJWKSVerifier_Expired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	v, err := NewJWKSVerifierFromJSON(rsaJWKS(t, &key.PublicKey), discardLogger())
	require.NoError(t, err)

	_, err = v.VerifyToken(signRS(t, key, jwt.MapClaims{
		"sub":  "student-7",
		"role": "student",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestNewJWKSVerifierFromURL_EmptyURL(t *testing.T) {
	_, err := NewJWKSVerifierFromURL("", discardLogger())
	assert.Error(t, err)
}
