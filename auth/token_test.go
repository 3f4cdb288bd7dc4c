package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microloan/domain"
)

func TestTokens_IssueVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(domain.User{ID: 7, Email: "asha@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokens_WrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Issue(domain.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", -time.Minute)

	raw, err := tokens.Issue(domain.User{ID: 1})
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Garbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
