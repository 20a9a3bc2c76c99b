package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPlainPassword(t *testing.T) {
	a := NewAuthenticator("geheim", "", nil, time.Hour)

	assert.True(t, a.Verify("geheim"))
	assert.False(t, a.Verify("falsch"))
	assert.False(t, a.Verify(""))
}

func TestVerifyDefaultsWhenUnconfigured(t *testing.T) {
	a := NewAuthenticator("", "", nil, 0)

	assert.True(t, a.Verify(DefaultPassword))
}

func TestVerifyBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAuthenticator("other", string(hash), nil, time.Hour)

	assert.True(t, a.Verify("geheim"))
	assert.False(t, a.Verify("other"))
}

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuthenticator("", "", []byte("secret"), time.Hour)

	token, err := a.IssueToken()
	require.NoError(t, err)
	assert.NoError(t, a.ValidateToken(token))
}

func TestTokenRejectedAcrossSecrets(t *testing.T) {
	a := NewAuthenticator("", "", []byte("secret-a"), time.Hour)
	b := NewAuthenticator("", "", []byte("secret-b"), time.Hour)

	token, err := a.IssueToken()
	require.NoError(t, err)
	assert.ErrorIs(t, b.ValidateToken(token), ErrInvalidToken)
	assert.ErrorIs(t, a.ValidateToken("not-a-token"), ErrInvalidToken)
}
