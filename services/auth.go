package services

import (
	"context"
	"errors"
	"fmt"

	"irisweb/common"
	"irisweb/models"
)

// AuthService orchestrates login and registration over the user repository
// and the registration policy.
type AuthService struct {
	users  *UserRepository
	policy *Policy
}

func NewAuthService(users *UserRepository, policy *Policy) *AuthService {
	return &AuthService{users: users, policy: policy}
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// both come back as ErrInvalidCredentials so callers cannot tell them apart.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Register validates and creates a regular user account.
func (s *AuthService) Register(ctx context.Context, username, password, passwordConfirm string) (*models.User, error) {
	if username == "" || password == "" || passwordConfirm == "" {
		return nil, common.ErrValidation
	}
	if password != passwordConfirm {
		return nil, common.ErrValidation
	}
	if err := s.policy.AuthorizeRegistration(username); err != nil {
		return nil, err
	}

	return s.users.Create(ctx, username, password, models.RoleUser)
}
