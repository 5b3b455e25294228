package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/logging"
	"github.com/taskpilot/taskpilot-web/internal/session"
	"github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	"github.com/taskpilot/taskpilot-web/internal/tasks/service"
	"github.com/taskpilot/taskpilot-web/internal/web/form"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

const (
	msgCreated      = "Task created successfully!"
	msgUpdated      = "Task updated successfully!"
	msgDeleted      = "Task deleted successfully!"
	msgCreateFailed = "Failed to create task."
	msgUpdateFailed = "Failed to update task."
	msgDeleteFailed = "Failed to delete task."
	msgNotFound     = "Task not found."
)

// pageFunc renders one of the editable task pages with p's dialog open.
type pageFunc func(c *gin.Context, status int, p render.Page)

// rejectIfExpired sends the browser to the login page when the API no longer
// accepts the session token. It reports whether it did.
func (h *Handler) rejectIfExpired(c *gin.Context, err error) bool {
	if !gateway.IsKind(err, gateway.KindUnauthorized) {
		return false
	}
	h.sessions.Reject(c)
	return true
}

func (h *Handler) loadFailed(c *gin.Context, err error) {
	if h.rejectIfExpired(c, err) {
		return
	}
	logging.New(c.Request.Context()).Error("load_tasks", err)
	c.String(http.StatusBadGateway, "Failed to load tasks.")
}

// prepareForm fills p.Form for an open dialog. An edit dialog for a task
// that is not in tasks is closed instead.
func (h *Handler) prepareForm(p *render.Page, tasks []domain.Task) {
	switch {
	case p.Form != nil:
	case p.Modal.IsCreating():
		p.Form = blankForm()
	case p.Modal.IsEditing():
		for _, t := range tasks {
			if t.ID == p.Modal.ID {
				p.Form = formOf(service.InputOf(t))
				return
			}
		}
		p.Modal = render.Modal{}
		if p.Error == "" {
			p.Error = msgNotFound
		}
	}
}

func (h *Handler) assignedPage(c *gin.Context, status int, p render.Page) {
	sess := session.FromContext(c)
	crit, echo := parseFilter(c)

	view, err := h.tasks.AssignedToMe(c.Request.Context(), sess.Token, sess.UserID, crit)
	if err != nil {
		h.loadFailed(c, err)
		return
	}

	h.prepareForm(&p, view.Tasks)
	p.Title = "Tasks"
	p.Path = assignedPath
	p.Data = listData{ListView: view, Filter: echo}
	render.HTML(c, status, "user_createtask.html", p)
}

func (h *Handler) delegatedPage(c *gin.Context, status int, p render.Page) {
	sess := session.FromContext(c)
	crit, echo := parseFilter(c)

	view, err := h.tasks.Delegated(c.Request.Context(), sess.Token, sess.UserID, crit)
	if err != nil {
		h.loadFailed(c, err)
		return
	}

	h.prepareForm(&p, view.Tasks)
	p.Title = "Tasks Assigned"
	p.Path = delegatedPath
	p.Data = groupedData{GroupedView: view, Filter: echo}
	render.HTML(c, status, "user_assignusertask.html", p)
}

func (h *Handler) assigned(c *gin.Context) {
	h.assignedPage(c, http.StatusOK, render.Page{Modal: render.ParseModal(c)})
}

func (h *Handler) delegated(c *gin.Context) {
	modal := render.ParseModal(c)
	if modal.IsCreating() {
		modal = render.Modal{}
	}
	h.delegatedPage(c, http.StatusOK, render.Page{Modal: modal})
}

func (h *Handler) overdue(c *gin.Context) {
	sess := session.FromContext(c)
	view, err := h.tasks.Overdue(c.Request.Context(), sess.Token)
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	render.HTML(c, http.StatusOK, "user_overduetasks.html", render.Page{
		Title: "Overdue Tasks",
		Path:  overduePath,
		Data:  listData{ListView: view},
	})
}

func (h *Handler) created(c *gin.Context) {
	sess := session.FromContext(c)
	crit, echo := parseFilter(c)
	view, err := h.tasks.CreatedByMe(c.Request.Context(), sess.Token, sess.UserID, crit)
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	render.HTML(c, http.StatusOK, "user_alltask.html", render.Page{
		Title: "Tasks Created",
		Path:  createdPath,
		Data:  listData{ListView: view, Filter: echo},
	})
}

func (h *Handler) createAssigned(c *gin.Context) {
	h.save(c, assignedPath, h.assignedPage, render.Creating(), msgCreated, msgCreateFailed)
}

func (h *Handler) updateAssigned(c *gin.Context) {
	h.save(c, assignedPath, h.assignedPage, render.Editing(strings.TrimSpace(c.Param("id"))), msgUpdated, msgUpdateFailed)
}

func (h *Handler) deleteAssigned(c *gin.Context) {
	h.remove(c, assignedPath, h.assignedPage)
}

func (h *Handler) updateDelegated(c *gin.Context) {
	h.save(c, delegatedPath, h.delegatedPage, render.Editing(strings.TrimSpace(c.Param("id"))), msgUpdated, msgUpdateFailed)
}

func (h *Handler) deleteDelegated(c *gin.Context) {
	h.remove(c, delegatedPath, h.delegatedPage)
}

// save validates the submitted task and creates or updates it depending on
// modal. On success the browser is sent back to base.
func (h *Handler) save(c *gin.Context, base string, page pageFunc, modal render.Modal, success, fallback string) {
	ctx := c.Request.Context()
	sess := session.FromContext(c)

	var req taskForm
	if errs := form.Bind(c, &req); errs.Any() {
		page(c, http.StatusUnprocessableEntity, render.Page{Modal: modal, Errors: errs, Form: req})
		return
	}

	var err error
	if modal.IsEditing() {
		err = h.tasks.Update(ctx, sess.Token, modal.ID, req.input())
	} else {
		err = h.tasks.Create(ctx, sess.Token, sess.UserID, req.input())
	}
	if err != nil {
		if h.rejectIfExpired(c, err) {
			return
		}
		status, msg := render.Failure(err, fallback)
		page(c, status, render.Page{Modal: modal, Error: msg, Form: req})
		return
	}

	logging.New(ctx).Infof("save_task", "user_id=%s task_id=%s saved", sess.UserID, modal.ID)
	render.Redirect(c, base, success)
}

func (h *Handler) remove(c *gin.Context, base string, page pageFunc) {
	ctx := c.Request.Context()
	sess := session.FromContext(c)
	id := strings.TrimSpace(c.Param("id"))

	if err := h.tasks.Delete(ctx, sess.Token, id); err != nil {
		if h.rejectIfExpired(c, err) {
			return
		}
		status, msg := render.Failure(err, msgDeleteFailed)
		page(c, status, render.Page{Error: msg})
		return
	}

	logging.New(ctx).Infof("delete_task", "user_id=%s task_id=%s deleted", sess.UserID, id)
	render.Redirect(c, base, msgDeleted)
}
