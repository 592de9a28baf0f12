package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "shopfolders")

	tok, err := m.Generate("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, "shopfolders")
	verifier := NewJWTManager("secret-b", time.Hour, "shopfolders")

	tok, err := issuer.Generate("user-1")
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTManager("test-secret", time.Hour, "shopfolders")
	verifier := NewJWTManager("test-secret", time.Hour, "someone-else")

	tok, err := issuer.Generate("user-1")
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, "shopfolders")

	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Validate(tok)
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, "shopfolders")

	_, err := m.Validate("not-a-jwt")
	require.Error(t, err)
}
