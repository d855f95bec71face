package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
}

// Service wraps the sign-in rules around the backend login call.
type Service struct {
	backend Authenticator
}

// NewService constructs a Service.
func NewService(a Authenticator) *Service {
	return &Service{backend: a}
}

// Authenticate returns the token and profile for valid credentials. Any
// rejection by the backend reads as invalid credentials; transport faults
// are wrapped and returned as they are.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*backend.LoginResult, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login %s: %w", email, err)
	}
	return res, nil
}
