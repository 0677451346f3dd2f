package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

type authService struct {
	users       domain.UserService
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService that resolves users through the UserService and signs tokens with tokenIssuer.
func NewAuthService(users domain.UserService, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		users:       users,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

// Login accepts a username, email or mobile number as identifier.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.FindByEmailOrMobile(ctx, identifier)
	}
	if err != nil {
		return "", nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil || !s.users.CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}
