package services

import (
	"context"
	"fmt"

	"github.com/stockbook-app/stockbook/internal/client/api"
)

// AuthService wraps account operations against the backend. Tokens live
// inside the API client for the session; nothing is persisted locally.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
}

type authService struct {
	client api.API
}

// NewAuthService builds an AuthService over the API client.
func NewAuthService(client api.API) AuthService {
	return &authService{client: client}
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}
	if err := s.client.Register(ctx, username, password); err != nil {
		return fmt.Errorf("registration error: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) error {
	if err := s.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}
