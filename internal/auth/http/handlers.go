package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/auth/service"
	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/logging"
	"github.com/taskpilot/taskpilot-web/internal/session"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
	"github.com/taskpilot/taskpilot-web/internal/web/form"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

const (
	msgMissingCredentials = "Both email and password are required."
	msgUnknownRole        = "Role not recognized."
	msgGeneric            = "Something went wrong. Please try again."
	msgRegistered         = "Registration successful!"
	msgRegisterFailed     = "Registration failed. Please try again."
)

// Root sends a signed-in browser to its dashboard and everyone else to the
// login page.
func (h *Handler) Root(c *gin.Context) {
	sess, err := h.sessions.Load(c)
	if err != nil || !sess.HasToken() {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	c.Redirect(http.StatusFound, sess.Home())
}

func (h *Handler) LoginPage(c *gin.Context) {
	render.HTML(c, http.StatusOK, "login.html", render.Page{Title: "Login", Form: loginForm{}})
}

// Login checks the credentials with the API and starts a session for the
// returned identity.
func (h *Handler) Login(c *gin.Context) {
	logger := logging.New(c.Request.Context())

	var req loginForm
	if errs := form.Bind(c, &req); errs.Any() {
		render.HTML(c, http.StatusUnprocessableEntity, "login.html", render.Page{
			Title:  "Login",
			Error:  msgMissingCredentials,
			Errors: errs,
			Form:   req,
		})
		return
	}

	id, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error("login", err)
		status, msg := http.StatusBadGateway, msgGeneric
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			status, msg = http.StatusForbidden, msgUnknownRole
		case gateway.Rejected(err):
			status, msg = http.StatusUnauthorized, gateway.UserMessage(err, msgGeneric)
		}
		render.HTML(c, status, "login.html", render.Page{
			Title: "Login",
			Error: msg,
			Form:  loginForm{Email: req.Email},
		})
		return
	}

	sess, err := h.sessions.Start(c, session.Session{
		UserID: id.ID,
		Name:   id.Name,
		Role:   id.Role,
		Token:  id.Token,
	})
	if err != nil {
		logger.Error("login", err)
		render.HTML(c, http.StatusInternalServerError, "login.html", render.Page{
			Title: "Login",
			Error: msgGeneric,
			Form:  loginForm{Email: req.Email},
		})
		return
	}

	logger.Infof("login", "user_id=%s role=%s signed in", sess.UserID, sess.Role)
	c.Redirect(http.StatusSeeOther, sess.Home())
}

func (h *Handler) SignupPage(c *gin.Context) {
	render.HTML(c, http.StatusOK, "signin.html", render.Page{Title: "Register", Form: registerForm{}})
}

// Signup registers a new account. Every invalid field is reported at once.
func (h *Handler) Signup(c *gin.Context) {
	var req registerForm
	if errs := form.Bind(c, &req); errs.Any() {
		req.Password = ""
		render.HTML(c, http.StatusUnprocessableEntity, "signin.html", render.Page{
			Title:  "Register",
			Errors: errs,
			Form:   req,
		})
		return
	}

	err := h.authService.Register(c.Request.Context(), userdomain.Registration{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
		Role:     userdomain.Role(req.Role),
	})
	if err != nil {
		logging.New(c.Request.Context()).Error("register", err)
		status := http.StatusBadGateway
		if gateway.Rejected(err) {
			status = http.StatusBadRequest
		}
		req.Password = ""
		render.HTML(c, status, "signin.html", render.Page{
			Title: "Register",
			Error: gateway.UserMessage(err, msgRegisterFailed),
			Form:  req,
		})
		return
	}

	render.HTML(c, http.StatusOK, "signin.html", render.Page{
		Title: "Register",
		Flash: msgRegistered,
		Data:  true,
	})
}

// Logout destroys the session and returns to the login page.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		logging.New(c.Request.Context()).Error("logout", err)
	}
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}
