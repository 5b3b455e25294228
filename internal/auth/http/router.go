package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/signin", h.SignupPage)
	r.POST("/signin", h.Signup)
	r.POST("/logout", h.Logout)
}
