// Package gatewaytest runs an in-process stand-in for the remote task API.
//
// It speaks the same envelope, issues HS256 bearer tokens on login and keeps
// bcrypt password hashes, so handler tests exercise the real gateway client
// end to end without the network.
package gatewaytest

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

type account struct {
	user userdomain.User
	hash []byte
}

type fault struct {
	status  int
	message string
}

// Server is a fake remote API. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	seq      int
	accounts []account
	projects []projectdomain.Project
	tasks    []taskdomain.Task
	faults   map[string]fault
	calls    map[string]int
}

// New starts a fake API and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		secret: []byte("gatewaytest-secret"),
		faults: make(map[string]fault),
		calls:  make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the value to configure the gateway client with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Client returns a gateway client pointed at s with retries kept short.
func (s *Server) Client() *gateway.Client {
	return gateway.New(gateway.Options{
		BaseURL:        s.BaseURL(),
		Timeout:        2 * time.Second,
		ReadRetries:    1,
		BackoffInitial: time.Millisecond,
		BackoffMax:     time.Millisecond,
	})
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

// AddUser registers an account directly and returns it.
func (s *Server) AddUser(name, email, password string, role userdomain.Role) userdomain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := userdomain.User{ID: s.nextID("u"), Name: name, Email: email, Role: role}
	s.accounts = append(s.accounts, account{user: u, hash: hash})
	return u
}

// AddProject stores p, assigning an id when it has none.
func (s *Server) AddProject(p projectdomain.Project) projectdomain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextID("p")
	}
	s.projects = append(s.projects, p)
	return p
}

// AddTask stores t, assigning an id when it has none. A bare due day is kept
// as UTC midnight, as the real API does.
func (s *Server) AddTask(t taskdomain.Task) taskdomain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = s.nextID("t")
	}
	t.DueDate = t.DueDate.Stored()
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Server) Users() []userdomain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]userdomain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	return out
}

func (s *Server) Projects() []projectdomain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]projectdomain.Project(nil), s.projects...)
}

func (s *Server) Tasks() []taskdomain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]taskdomain.Task(nil), s.tasks...)
}

// TokenFor issues a bearer token for userID without a login round trip.
func (s *Server) TokenFor(userID string) string {
	s.mu.Lock()
	secret := s.secret
	s.mu.Unlock()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// RevokeTokens rotates the signing key so every issued token is rejected.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = []byte(fmt.Sprintf("rotated-%d", time.Now().UnixNano()))
}

// Fail makes every request to method+path answer with status until Heal.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = fault{status: status, message: message}
}

func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]fault)
}

// Calls counts requests seen for method+path.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}
