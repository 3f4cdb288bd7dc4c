package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"microloan/auth"
	"microloan/domain"
	"microloan/repository"
)

func newUserService(t *testing.T) (*UserService, *repository.MemoryUserRepository, *auth.Tokens) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewUserService(users, tokens, zap.NewNop()), users, tokens
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	s, _, tokens := newUserService(t)

	user, err := s.Register(validRegistration())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "Secret1", user.Password, "password must be hashed")
	assert.Zero(t, user.CibilScore)

	result, err := s.Login(domain.Credentials{Email: "asha@example.com", Password: "Secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.Register(validRegistration())
	require.NoError(t, err)

	_, err = s.Register(validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_RegisterInvalid(t *testing.T) {
	s, _, _ := newUserService(t)

	reg := validRegistration()
	reg.Aadhar = "12345"
	_, err := s.Register(reg)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService_LoginFailures(t *testing.T) {
	s, _, _ := newUserService(t)

	_, err := s.Register(validRegistration())
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(domain.Credentials{Email: "asha@example.com", Password: "Wrong1x"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(domain.Credentials{Email: "nobody@example.com", Password: "Secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Refresh(t *testing.T) {
	s, _, tokens := newUserService(t)

	user, err := s.Register(validRegistration())
	require.NoError(t, err)

	token, err := s.Refresh(user.ID)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = s.Refresh(999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_RegisterAdmin(t *testing.T) {
	s, _, _ := newUserService(t)

	admin, err := s.RegisterAdmin(domain.Registration{
		FullName: "Back Office",
		Email:    "ops@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}
