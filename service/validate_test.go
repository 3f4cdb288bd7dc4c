package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microloan/domain"
)

func TestValidPAN(t *testing.T) {
	assert.True(t, ValidPAN("ABCDE1234F"))
	assert.False(t, ValidPAN("abcde1234f"), "PAN is case-sensitive")
	assert.False(t, ValidPAN("ABCDE12345"))
	assert.False(t, ValidPAN("ABCD1234EF"))
	assert.False(t, ValidPAN("ABCDE1234FX"))
}

func TestValidAadhar(t *testing.T) {
	assert.True(t, ValidAadhar("123456789012"))
	assert.False(t, ValidAadhar("12345"))
	assert.False(t, ValidAadhar("1234567890123"))
	assert.False(t, ValidAadhar("12345678901a"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("a@b.c"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("user@nodot"))
	assert.False(t, ValidEmail("user name@example.com"))
}

func TestValidMobile(t *testing.T) {
	assert.True(t, ValidMobile("9876543210"))
	assert.False(t, ValidMobile("98765"))
	assert.False(t, ValidMobile("98765432101"))
	assert.False(t, ValidMobile("98765x3210"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secret1"))
	assert.Error(t, ValidatePassword("Sh1"), "too short")
	assert.Error(t, ValidatePassword("secret1"), "no uppercase")
	assert.Error(t, ValidatePassword("Secrets"), "no digit")
}

func validRegistration() domain.Registration {
	return domain.Registration{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Mobile:   "9876543210",
		Password: "Secret1",
		Aadhar:   "123456789012",
		PAN:      "ABCDE1234F",
	}
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration(validRegistration()))

	t.Run("collects per-field errors", func(t *testing.T) {
		reg := validRegistration()
		reg.Email = "nope"
		reg.PAN = "abcde1234f"

		err := ValidateRegistration(reg)
		require.ErrorIs(t, err, ErrInvalidInput)

		var fields FieldErrors
		require.True(t, errors.As(err, &fields))
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "pan")
		assert.NotContains(t, fields, "mobile")
	})
}

func TestLoanRules_ValidateApplication(t *testing.T) {
	rules := DefaultLoanRules()

	valid := domain.LoanApplication{
		UserID:     1,
		Type:       domain.LoanPersonal,
		Amount:     50_000,
		TermMonths: 12,
		Purpose:    "working capital",
	}
	assert.NoError(t, rules.ValidateApplication(valid))

	cases := map[string]func(*domain.LoanApplication){
		"amount":   func(a *domain.LoanApplication) { a.Amount = 4_999 },
		"duration": func(a *domain.LoanApplication) { a.TermMonths = 7 },
		"loanType": func(a *domain.LoanApplication) { a.Type = "mortgage" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			app := valid
			mutate(&app)

			err := rules.ValidateApplication(app)
			require.ErrorIs(t, err, ErrInvalidInput)

			var fields FieldErrors
			require.True(t, errors.As(err, &fields))
			assert.Contains(t, fields, field)
		})
	}

	t.Run("amount above maximum", func(t *testing.T) {
		app := valid
		app.Amount = 200_001
		assert.ErrorIs(t, rules.ValidateApplication(app), ErrInvalidInput)
	})
}
