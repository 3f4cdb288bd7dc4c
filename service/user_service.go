package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"microloan/auth"
	"microloan/domain"
	"microloan/repository"
)

type UserService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
	log    *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens *auth.Tokens, log *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: log}
}

// Register validates the form, hashes the password and stores the user with
// the USER role. The CIBIL score starts at zero (unknown) until the
// back-office records one.
func (s *UserService) Register(reg domain.Registration) (domain.User, error) {
	if err := ValidateRegistration(reg); err != nil {
		return domain.User{}, err
	}
	if err := s.checkEmailFree(reg.Email); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(domain.User{
		FullName:  strings.TrimSpace(reg.FullName),
		Email:     reg.Email,
		Mobile:    reg.Mobile,
		Password:  string(hash),
		Role:      domain.RoleUser,
		Aadhar:    reg.Aadhar,
		PAN:       reg.PAN,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", zap.Int64("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// RegisterAdmin stores a back-office account. KYC fields are not collected
// for staff.
func (s *UserService) RegisterAdmin(reg domain.Registration) (domain.User, error) {
	if err := ValidateAdminRegistration(reg); err != nil {
		return domain.User{}, err
	}
	if err := s.checkEmailFree(reg.Email); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	admin, err := s.users.Create(domain.User{
		FullName:  strings.TrimSpace(reg.FullName),
		Email:     reg.Email,
		Password:  string(hash),
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("admin registered", zap.Int64("id", admin.ID), zap.String("email", admin.Email))
	return admin, nil
}

func (s *UserService) checkEmailFree(email string) error {
	_, err := s.users.ByEmail(email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

// Login verifies credentials and issues a bearer token. Lookup and password
// failures collapse into one error so the response does not leak which
// emails are registered.
func (s *UserService) Login(creds domain.Credentials) (domain.LoginResult, error) {
	user, err := s.users.ByEmail(creds.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return domain.LoginResult{Token: token, User: user}, nil
}

// Refresh issues a fresh token for an already-authenticated user.
func (s *UserService) Refresh(userID int64) (string, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user)
}

func (s *UserService) Profile(id int64) (domain.User, error) {
	return s.users.ByID(id)
}

func (s *UserService) CibilScore(id int64) (int, error) {
	user, err := s.users.ByID(id)
	if err != nil {
		return 0, err
	}
	return user.CibilScore, nil
}
