package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "k", ExpirationHours: 1})

	token, err := j.GenerateToken("ana@imob.com", "user-1", "IMOBILIARIA")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@imob.com", claims.Email)
	assert.Equal(t, "IMOBILIARIA", claims.Role)
}

func TestValidateRejectsOtherKey(t *testing.T) {
	issuer := NewJWTUtil(&JWTConfig{SigningKey: "one", ExpirationHours: 1})
	verifier := NewJWTUtil(&JWTConfig{SigningKey: "two", ExpirationHours: 1})

	token, err := issuer.GenerateToken("ana@imob.com", "user-1", "IMOBILIARIA")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "k", ExpirationHours: 1})
	j.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := j.GenerateToken("ana@imob.com", "user-1", "IMOBILIARIA")
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	j := NewJWTUtil(&JWTConfig{SigningKey: "k", ExpirationHours: 1})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{UserID: "user-1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ValidateToken(token)
	assert.Error(t, err)
}
