package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	"github.com/taskpilot/taskpilot-web/internal/session"
	"github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	"github.com/taskpilot/taskpilot-web/internal/tasks/service"
)

const (
	assignedPath  = "/user/createtask"
	delegatedPath = "/user/assignusertask"
	overduePath   = "/user/overduetasks"
	createdPath   = "/user/alltask"
)

// Handler serves the member task pages.
type Handler struct {
	tasks    *service.TaskService
	sessions *session.Manager
}

func New(tasks *service.TaskService, sessions *session.Manager) *Handler {
	return &Handler{tasks: tasks, sessions: sessions}
}

type taskForm struct {
	ProjectID   string `form:"project_id" label:"Project" binding:"required"`
	AssignedTo  string `form:"assigned_to" label:"Assignee" binding:"required"`
	Title       string `form:"title" label:"Title" binding:"required"`
	Description string `form:"description" label:"Description" binding:"required"`
	Status      string `form:"status" label:"Status" binding:"omitempty,oneof=todo in_progress done"`
	Priority    string `form:"priority" label:"Priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `form:"due_date" label:"Due Date" binding:"required,datetime=2006-01-02"`
}

// blankForm is what the create dialog opens with.
func blankForm() taskForm {
	return taskForm{Status: string(domain.StatusTodo), Priority: string(domain.PriorityMedium)}
}

func (f taskForm) input() service.Input {
	return service.Input{
		ProjectID:   f.ProjectID,
		AssignedTo:  f.AssignedTo,
		Title:       f.Title,
		Description: f.Description,
		Status:      domain.Status(f.Status),
		Priority:    domain.Priority(f.Priority),
		DueDate:     f.DueDate,
	}
}

func formOf(in service.Input) taskForm {
	return taskForm{
		ProjectID:   in.ProjectID,
		AssignedTo:  in.AssignedTo,
		Title:       in.Title,
		Description: in.Description,
		Status:      string(in.Status),
		Priority:    string(in.Priority),
		DueDate:     in.DueDate,
	}
}

// filterForm echoes the accepted filter values back into the filter bar.
type filterForm struct {
	Search   string
	Status   string
	Priority string
	DueDate  string
}

// parseFilter reads the filter bar from the query string. Values that are
// not a known status, priority or date are dropped rather than rejected.
func parseFilter(c *gin.Context) (domain.Criteria, filterForm) {
	var (
		crit domain.Criteria
		echo filterForm
	)

	crit.Search = c.Query("search")
	echo.Search = crit.Search

	if s := domain.Status(strings.TrimSpace(c.Query("status"))); s.Valid() {
		crit.Status = s
		echo.Status = string(s)
	}
	if p := domain.Priority(strings.TrimSpace(c.Query("priority"))); p.Valid() {
		crit.Priority = p
		echo.Priority = string(p)
	}
	if raw := strings.TrimSpace(c.Query("due_date")); raw != "" {
		if d, err := civil.Parse(raw); err == nil {
			crit.DueDate = d
			echo.DueDate = raw
		}
	}
	return crit, echo
}

type listData struct {
	*service.ListView
	Filter filterForm
}

type groupedData struct {
	*service.GroupedView
	Filter filterForm
}
