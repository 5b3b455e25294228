package http

import "github.com/gin-gonic/gin"

// Register attaches the task pages to a group already gated to members.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/createtask", h.assigned)
	rg.POST("/createtask", h.createAssigned)
	rg.POST("/createtask/:id", h.updateAssigned)
	rg.POST("/createtask/:id/delete", h.deleteAssigned)

	rg.GET("/assignusertask", h.delegated)
	rg.POST("/assignusertask/:id", h.updateDelegated)
	rg.POST("/assignusertask/:id/delete", h.deleteDelegated)

	rg.GET("/overduetasks", h.overdue)
	rg.GET("/alltask", h.created)
}
