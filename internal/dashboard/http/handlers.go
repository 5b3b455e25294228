package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/dashboard/service"
	"github.com/taskpilot/taskpilot-web/internal/logging"
	"github.com/taskpilot/taskpilot-web/internal/session"
	taskservice "github.com/taskpilot/taskpilot-web/internal/tasks/service"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

// Handler serves the two role dashboards.
type Handler struct {
	dashboard *service.DashboardService
	tasks     *taskservice.TaskService
	sessions  *session.Manager
}

func New(dashboard *service.DashboardService, tasks *taskservice.TaskService, sessions *session.Manager) *Handler {
	return &Handler{dashboard: dashboard, tasks: tasks, sessions: sessions}
}

// RegisterAdmin attaches /Dashboard to a group already gated to admins.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/Dashboard", h.admin)
}

// RegisterMember attaches /Dashboard to a group already gated to members.
func (h *Handler) RegisterMember(rg *gin.RouterGroup) {
	rg.GET("/Dashboard", h.member)
}

func (h *Handler) admin(c *gin.Context) {
	sess := session.FromContext(c)
	counts, err := h.dashboard.Admin(c.Request.Context(), sess.Token)
	if err != nil {
		logging.New(c.Request.Context()).Error("admin_dashboard", err)
		h.sessions.Reject(c)
		return
	}
	render.HTML(c, http.StatusOK, "admin_dashboard.html", render.Page{Title: "Admin Dashboard", Data: counts})
}

func (h *Handler) member(c *gin.Context) {
	sess := session.FromContext(c)
	summary, err := h.tasks.Summary(c.Request.Context(), sess.Token, sess.UserID)
	if err != nil {
		logging.New(c.Request.Context()).Error("member_dashboard", err)
		h.sessions.Reject(c)
		return
	}
	render.HTML(c, http.StatusOK, "user_dashboard.html", render.Page{Title: "Dashboard", Data: summary})
}
