package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/project", h.list)
	rg.POST("/project", h.create)
	rg.POST("/project/:id", h.update)
	rg.POST("/project/:id/delete", h.delete)
}
