// Package service contains the business logic for the Nomad's Compass API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/nomadscompass/backend/internal/auth"
	"github.com/nomadscompass/backend/internal/domain"
	"github.com/nomadscompass/backend/internal/repo"
)

// minPasswordLength is the floor for new account passwords.
const minPasswordLength = 8

// TokenIssuer mints access tokens for authenticated users.
// *auth.TokenManager satisfies it; tests inject stubs.
type TokenIssuer interface {
	Issue(user domain.User) (string, error)
}

// UserService implements registration, authentication, and profile logic.
type UserService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewUserService constructs a UserService backed by the provided repo and
// token issuer.
func NewUserService(users repo.UserRepo, tokens TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// RegisterInput is the input for Register. Email and Password are required;
// the rest is optional profile data.
type RegisterInput struct {
	Email           string
	Password        string
	FullName        string
	InstagramHandle string
}

// Register validates the input, hashes the password, and persists the user.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict when
// the email is already registered.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.User{}, err
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	user := domain.User{
		Email:           email,
		HashedPassword:  hash,
		FullName:        strings.TrimSpace(in.FullName),
		InstagramHandle: strings.TrimSpace(in.InstagramHandle),
	}
	result, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return result, nil
}

// Authenticate verifies the credentials and returns a signed access token
// plus the authenticated user. A missing account and a wrong password both
// return domain.ErrUnauthorized, so callers cannot probe which emails exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, domain.User, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return "", domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", err)
	}
	return token, user, nil
}

// GetByID returns a single user by ID.
// Returns domain.ErrNotFound if no such user exists.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the mutable profile fields. Nil means "leave
// unchanged"; an empty string clears the field. Password, when set, is
// validated and re-hashed.
type UpdateProfileInput struct {
	FullName        *string
	InstagramHandle *string
	Password        *string
}

// UpdateProfile applies profile changes to the user and persists them.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}

	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.InstagramHandle != nil {
		user.InstagramHandle = strings.TrimSpace(*in.InstagramHandle)
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
		}
		user.HashedPassword = hash
	}

	result, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return result, nil
}

// normalizeEmail trims, lower-cases, and syntax-checks an email address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return email, nil
}
