// Package session keeps the authenticated identity of a browser session on
// the server side. The browser only holds an opaque session id cookie; the
// record itself lives in a Store.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

var ErrNotFound = errors.New("session not found")

const (
	LoginPath          = "/login"
	AdminDashboardPath = "/admin/Dashboard"
	UserDashboardPath  = "/user/Dashboard"
)

// Session is the record created at login and destroyed at logout.
type Session struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Role      userdomain.Role `json:"role"`
	Token     string          `json:"token"`
	CreatedAt time.Time       `json:"created_at"`
}

// HasToken reports whether the record carries a bearer credential.
func (s *Session) HasToken() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Home is the landing page for the session's role.
func (s *Session) Home() string {
	if s == nil {
		return LoginPath
	}
	switch s.Role {
	case userdomain.RoleAdmin:
		return AdminDashboardPath
	case userdomain.RoleMember:
		return UserDashboardPath
	default:
		return LoginPath
	}
}

// Store persists session records by id.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
