package service

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"microloan/domain"
)

var (
	// Deliberately permissive email check, not full RFC 5322. The backend
	// of record re-validates everything anyway.
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	mobilePattern = regexp.MustCompile(`^\d{10}$`)
	aadharPattern = regexp.MustCompile(`^\d{12}$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
)

func ValidEmail(s string) bool  { return emailPattern.MatchString(s) }
func ValidMobile(s string) bool { return mobilePattern.MatchString(s) }
func ValidAadhar(s string) bool { return aadharPattern.MatchString(s) }
func ValidPAN(s string) bool    { return panPattern.MatchString(s) }

// FieldErrors maps a form field to its first validation failure, mirroring
// the per-field error display on the forms.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(f))
	for _, k := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", k, f[k]))
	}
	return strings.Join(parts, "; ")
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if !upperPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return errors.New("password must contain an uppercase letter and a digit")
	}
	return nil
}

// ValidateRegistration checks a user registration, including KYC numbers.
func ValidateRegistration(reg domain.Registration) error {
	errs := FieldErrors{}
	if len(strings.TrimSpace(reg.FullName)) < 3 {
		errs["fullName"] = "name must be at least 3 characters"
	}
	if !ValidEmail(reg.Email) {
		errs["email"] = "invalid email address"
	}
	if !ValidMobile(reg.Mobile) {
		errs["mobile"] = "mobile must be 10 digits"
	}
	if err := ValidatePassword(reg.Password); err != nil {
		errs["password"] = err.Error()
	}
	if !ValidAadhar(reg.Aadhar) {
		errs["aadhar"] = "aadhar must be 12 digits"
	}
	if !ValidPAN(reg.PAN) {
		errs["pan"] = "PAN must be in format ABCDE1234F"
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// ValidateAdminRegistration skips the KYC fields; back-office staff only
// need name, email and a password.
func ValidateAdminRegistration(reg domain.Registration) error {
	errs := FieldErrors{}
	if len(strings.TrimSpace(reg.FullName)) < 3 {
		errs["fullName"] = "name must be at least 3 characters"
	}
	if !ValidEmail(reg.Email) {
		errs["email"] = "invalid email address"
	}
	if err := ValidatePassword(reg.Password); err != nil {
		errs["password"] = err.Error()
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}

// LoanRules are the configurable apply-form gates. The two front-end
// variants disagreed on the maximum amount; the bounds live in one place
// here and can be overridden from config.
type LoanRules struct {
	MinAmount float64
	MaxAmount float64
	MinCibil  int
	Tenures   []int
}

func DefaultLoanRules() LoanRules {
	return LoanRules{
		MinAmount: MinLoanAmount,
		MaxAmount: MaxLoanAmount,
		MinCibil:  MinCibilScore,
		Tenures:   AllowedTenures,
	}
}

func (r LoanRules) ValidateApplication(app domain.LoanApplication) error {
	errs := FieldErrors{}
	if app.Amount < r.MinAmount {
		errs["amount"] = fmt.Sprintf("minimum loan amount is %.0f", r.MinAmount)
	} else if app.Amount > r.MaxAmount {
		errs["amount"] = fmt.Sprintf("maximum loan amount is %.0f", r.MaxAmount)
	}
	if !slices.Contains(r.Tenures, app.TermMonths) {
		errs["duration"] = "tenure is not offered"
	}
	switch app.Type {
	case domain.LoanPersonal, domain.LoanBusiness, domain.LoanEducation, domain.LoanMedical:
	default:
		errs["loanType"] = "unknown loan type"
	}
	if len(app.Purpose) > MaxPurposeLength {
		errs["purpose"] = "purpose is too long"
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
	}
	return nil
}
