package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"microloan/auth"
	"microloan/domain"
)

func newAdminFixture(t *testing.T) (*AdminService, *loanFixture) {
	t.Helper()
	f := newLoanFixture(t)
	tokens := auth.NewTokens("test-secret", time.Hour)
	users := NewUserService(f.users, tokens, zap.NewNop())
	return NewAdminService(f.users, f.service, users, zap.NewNop()), f
}

func TestAdminService_LoginRequiresAdminRole(t *testing.T) {
	admin, f := newAdminFixture(t)

	_, err := admin.Register(domain.Registration{
		FullName: "Back Office",
		Email:    "ops@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)

	_, err = admin.Login(domain.Credentials{Email: "ops@example.com", Password: "Secret1"})
	assert.NoError(t, err)

	// The applicant account exists but has no password set through the
	// admin path; a user-role login attempt is refused either way.
	_, err = admin.Login(domain.Credentials{Email: f.applicant.Email, Password: "Secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_UpdateCibil(t *testing.T) {
	admin, f := newAdminFixture(t)

	user, err := admin.UpdateCibil(f.applicant.ID, 780)
	require.NoError(t, err)
	assert.Equal(t, 780, user.CibilScore)

	_, err = admin.UpdateCibil(f.applicant.ID, 250)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = admin.UpdateCibil(f.applicant.ID, 950)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminService_DeleteUser(t *testing.T) {
	admin, f := newAdminFixture(t)

	staff, err := admin.Register(domain.Registration{
		FullName: "Back Office",
		Email:    "ops@example.com",
		Password: "Secret1",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, admin.DeleteUser(staff.ID), ErrForbidden)
	assert.NoError(t, admin.DeleteUser(f.applicant.ID))

	_, err = f.users.ByID(f.applicant.ID)
	assert.Error(t, err)
}
