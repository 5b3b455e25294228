package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	authhttp "github.com/taskpilot/taskpilot-web/internal/auth/http"
	authservice "github.com/taskpilot/taskpilot-web/internal/auth/service"
	dashhttp "github.com/taskpilot/taskpilot-web/internal/dashboard/http"
	dashservice "github.com/taskpilot/taskpilot-web/internal/dashboard/service"
	"github.com/taskpilot/taskpilot-web/internal/gateway"
	projecthttp "github.com/taskpilot/taskpilot-web/internal/projects/http"
	projectservice "github.com/taskpilot/taskpilot-web/internal/projects/service"
	"github.com/taskpilot/taskpilot-web/internal/session"
	taskhttp "github.com/taskpilot/taskpilot-web/internal/tasks/http"
	taskservice "github.com/taskpilot/taskpilot-web/internal/tasks/service"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

type PageDeps struct {
	Gateway  *gateway.Client
	Sessions *session.Manager
	Location *time.Location
	// Now overrides the clock used for overdue checks. Nil means time.Now.
	Now func() time.Time
}

// RegisterPages mounts every page. /login, /signin and /logout are public;
// /admin and /user are behind the session guard and their role gate.
func RegisterPages(r *gin.Engine, dep PageDeps) {
	tasks := taskservice.NewTaskService(dep.Gateway, dep.Location)
	if dep.Now != nil {
		tasks.WithClock(dep.Now)
	}

	authhttp.New(authservice.NewAuthService(dep.Gateway), dep.Sessions).Register(r)

	admin := r.Group("/admin", dep.Sessions.Guard(), session.RequireRole(userdomain.RoleAdmin))
	member := r.Group("/user", dep.Sessions.Guard(), session.RequireRole(userdomain.RoleMember))

	dashboards := dashhttp.New(dashservice.NewDashboardService(dep.Gateway), tasks, dep.Sessions)
	dashboards.RegisterAdmin(admin)
	dashboards.RegisterMember(member)

	projecthttp.New(projectservice.NewProjectService(dep.Gateway), dep.Sessions).Register(admin)
	taskhttp.New(tasks, dep.Sessions).Register(member)
}
