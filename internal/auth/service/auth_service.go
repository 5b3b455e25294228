package service

import (
	"context"
	"errors"
	"strings"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

var (
	// ErrUnknownRole means the API accepted the credentials but returned a
	// role this client has no pages for.
	ErrUnknownRole = errors.New("role not recognized")
	ErrNoToken     = errors.New("login response carried no token")
)

// Gateway is the subset of the remote API used for sign in and sign up.
type Gateway interface {
	Login(ctx context.Context, creds gateway.Credentials) (*gateway.Identity, error)
	Register(ctx context.Context, reg userdomain.Registration) error
}

type AuthService struct {
	gw Gateway
}

func NewAuthService(gw Gateway) *AuthService {
	return &AuthService{gw: gw}
}

// Login authenticates against the API and returns the identity to keep in
// the session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*gateway.Identity, error) {
	id, err := s.gw.Login(ctx, gateway.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if !id.Role.Valid() {
		return nil, ErrUnknownRole
	}
	if strings.TrimSpace(id.Token) == "" {
		return nil, ErrNoToken
	}
	return id, nil
}

// Register creates an account
func (s *AuthService) Register(ctx context.Context, reg userdomain.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	return s.gw.Register(ctx, reg)
}
