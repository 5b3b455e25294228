package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Options configure the session cookie.
type Options struct {
	CookieName string
	Secure     bool
}

// Manager binds session records to the browser through a cookie.
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "taskpilot_session"
	}
	return &Manager{store: store, opts: opts, now: time.Now}
}

func (m *Manager) Store() Store {
	return m.store
}

// Start stores a new record for the identity in s and hands the browser its
// id. A record the browser already held is deleted first. The cookie has no
// expiry so it dies with the browser session.
func (m *Manager) Start(c *gin.Context, s Session) (*Session, error) {
	if old, err := c.Cookie(m.opts.CookieName); err == nil && old != "" {
		if err := m.store.Delete(c.Request.Context(), old); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("replace session: %w", err)
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = m.now().UTC()
	if err := m.store.Save(c.Request.Context(), &s); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	m.setCookie(c, s.ID, 0)
	return &s, nil
}

// Load returns the record bound to the request's cookie.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	id, err := c.Cookie(m.opts.CookieName)
	if err != nil || id == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(c.Request.Context(), id)
}

// Destroy deletes the record and clears the cookie. Destroying a request with
// no session is not an error.
func (m *Manager) Destroy(c *gin.Context) error {
	id, err := c.Cookie(m.opts.CookieName)
	m.setCookie(c, "", -1)
	if err != nil || id == "" {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}
