package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/domain"
)

// AccountService covers registration, login, and profile reads.
type AccountService struct {
	users domain.UserRepository
}

func NewAccountService(users domain.UserRepository) *AccountService {
	return &AccountService{users: users}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateRegistration runs before any store access; order matters for the
// error codes clients see.
func validateRegistration(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return domain.E(domain.ErrInvalidInput, "missing_fields", "Name, email, and password are required")
	}
	if len(strings.TrimSpace(name)) < 2 {
		return domain.E(domain.ErrInvalidInput, "invalid_name", "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(email) {
		return domain.E(domain.ErrInvalidInput, "invalid_email", "Invalid email format")
	}
	if len(password) < 8 {
		return domain.E(domain.ErrInvalidInput, "weak_password", "Password must be at least 8 characters")
	}
	return nil
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	// normalize before any check so "  A@X.com " and "a@x.com" are the same
	// account to both the format validator and the uniqueness probe
	normalized := NormalizeEmail(email)
	if err := validateRegistration(name, normalized, password); err != nil {
		return domain.User{}, err
	}

	if _, err := s.users.UserByEmail(ctx, normalized); err == nil {
		return domain.User{}, domain.E(domain.ErrConflict, "email_exists", "Email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.users.CreateUser(ctx, domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalized,
		PasswordHash: string(hash),
	})
	if errors.Is(err, domain.ErrConflict) {
		// lost the race to a concurrent registration with the same email
		return domain.User{}, domain.E(domain.ErrConflict, "email_exists", "Email already exists")
	}
	return u, err
}

func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, domain.E(domain.ErrInvalidInput, "missing_fields", "Email and password are required")
	}

	u, err := s.users.UserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.E(domain.ErrNotFound, "not_found", "No account found with this email")
	}
	if err != nil {
		return domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.E(domain.ErrUnauthorized, "wrong_password", "Incorrect password")
	}
	return u, nil
}

func (s *AccountService) Profile(ctx context.Context, userID int64) (domain.User, error) {
	return s.users.UserByID(ctx, userID)
}
