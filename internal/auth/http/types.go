package http

import (
	"github.com/taskpilot/taskpilot-web/internal/auth/service"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

type Handler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

func New(authService *service.AuthService, sessions *session.Manager) *Handler {
	return &Handler{
		authService: authService,
		sessions:    sessions,
	}
}

type loginForm struct {
	Email    string `form:"email" label:"Email" binding:"required"`
	Password string `form:"password" label:"Password" binding:"required"`
}

type registerForm struct {
	Name     string `form:"name" label:"Name" binding:"required"`
	Email    string `form:"email" label:"Email" binding:"required,email"`
	Password string `form:"password" label:"Password" binding:"required"`
	Role     string `form:"role" label:"Role" binding:"required,oneof=admin member"`
}
