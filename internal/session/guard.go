package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskpilot/taskpilot-web/internal/logging"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

const ctxSession = "session"

// Guard admits a request only when it carries a session record with a token.
// Anything else is redirected to the login page before the handler runs.
func (m *Manager) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.Load(c)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				logging.New(c.Request.Context()).Error("session_guard", err)
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !sess.HasToken() {
			_ = m.Destroy(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(ctxSession, sess)
		c.Next()
	}
}

// RequireRole sends sessions of any other role to their own dashboard.
// It must run after Guard.
func RequireRole(role userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		if sess == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if sess.Role != role {
			c.Redirect(http.StatusFound, sess.Home())
			c.Abort()
			return
		}
		c.Next()
	}
}

// FromContext returns the session Guard admitted, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}

// Reject ends a session the remote API no longer accepts and sends the
// browser back to the login page.
func (m *Manager) Reject(c *gin.Context) {
	if err := m.Destroy(c); err != nil {
		logging.New(c.Request.Context()).Error("session_reject", err)
	}
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
