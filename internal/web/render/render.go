// Package render owns the HTML side of the web frontend: the embedded page
// templates, the data every page receives, flash messages and modal state.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/session"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
	"github.com/taskpilot/taskpilot-web/internal/web/form"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page. Dates are shown in loc.
func Templates(loc *time.Location) (*template.Template, error) {
	t, err := template.New("pages").Funcs(Funcs(loc)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Install makes the templates available to c.HTML on r.
func Install(r *gin.Engine, loc *time.Location) error {
	t, err := Templates(loc)
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(t)
	return nil
}

// Page is the data handed to every template.
type Page struct {
	Title   string
	Session *session.Session
	Flash   string
	// Error is shown as a banner above the page content.
	Error  string
	Modal  Modal
	Errors form.Errors
	// Form holds the values to put back into an open form.
	Form interface{}
	Data interface{}
	// Path and Query describe the current request so templates can build
	// links back to the same view.
	Path  string
	Query url.Values
}

// IsAdmin reports whether the page is rendered for an administrator.
func (p Page) IsAdmin() bool {
	return p.Session != nil && p.Session.Role == userdomain.RoleAdmin
}

// HTML renders the named template. The session admitted by the guard and any
// pending flash message are filled in when the caller left them empty.
func HTML(c *gin.Context, status int, name string, p Page) {
	if p.Session == nil {
		p.Session = session.FromContext(c)
	}
	if p.Flash == "" {
		p.Flash = TakeFlash(c)
	}
	if p.Errors == nil {
		p.Errors = form.Errors{}
	}
	if p.Path == "" {
		p.Path = c.Request.URL.Path
	}
	if p.Query == nil {
		p.Query = c.Request.URL.Query()
	}
	c.HTML(status, name, p)
}
