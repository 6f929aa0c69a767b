package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, ok := tm.Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "a@x.com", email)
}

func TestVerifyRejectsWrongSignature(t *testing.T) {
	issuer := NewTokenManager("secret-a")
	verifier := NewTokenManager("secret-b")

	token, err := issuer.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, _, ok := verifier.Verify(token)
	assert.False(t, ok, "token signed with another secret must not verify")
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := tm.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	_, _, ok := tm.Verify(token)
	assert.False(t, ok)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, _, ok := tm.Verify(tokenStr)
		assert.False(t, ok, "token %q must not verify", tokenStr)
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	require.NotEqual(t, "password1", hash)

	assert.True(t, CheckPassword(hash, "password1"))
	assert.False(t, CheckPassword(hash, "password2"))
	assert.False(t, CheckPassword("", "password1"))
}
