package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	"github.com/taskpilot/taskpilot-web/internal/logging"
	"github.com/taskpilot/taskpilot-web/internal/projects/domain"
	"github.com/taskpilot/taskpilot-web/internal/projects/service"
	"github.com/taskpilot/taskpilot-web/internal/session"
	"github.com/taskpilot/taskpilot-web/internal/web/form"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

const (
	msgCreated      = "Project created successfully."
	msgUpdated      = "Project updated successfully."
	msgDeleted      = "Project deleted successfully."
	msgCreateFailed = "Failed."
	msgUpdateFailed = "Update failed."
	msgDeleteFailed = "Failed to delete."
	msgLoadFailed   = "Failed to load projects."
	msgNotFound     = "Project not found."
	msgEndDate      = "End Date must not be before Start Date"
)

// page renders the project list with the given dialog open.
func (h *Handler) page(c *gin.Context, status int, p render.Page) {
	sess := session.FromContext(c)
	projects, err := h.projects.List(c.Request.Context(), sess.Token)
	if err != nil {
		if gateway.IsKind(err, gateway.KindUnauthorized) {
			h.sessions.Reject(c)
			return
		}
		logging.New(c.Request.Context()).Warnf("list_projects", "rendering empty list: %v", err)
		if p.Error == "" {
			p.Error = msgLoadFailed
		}
	}

	if p.Modal.IsEditing() && p.Form == nil {
		found, ok := find(projects, p.Modal.ID)
		if !ok {
			p.Modal = render.Modal{}
			if p.Error == "" {
				p.Error = msgNotFound
			}
		} else {
			p.Form = formOf(service.InputOf(found))
		}
	}
	if p.Form == nil {
		p.Form = projectForm{}
	}

	p.Title = "Projects"
	p.Path = basePath
	p.Data = pageData{Projects: projects}
	render.HTML(c, status, "admin_project.html", p)
}

func find(projects []domain.Project, id string) (domain.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

func (h *Handler) list(c *gin.Context) {
	h.page(c, http.StatusOK, render.Page{Modal: render.ParseModal(c)})
}

func (h *Handler) create(c *gin.Context) {
	h.save(c, render.Creating(), msgCreated, msgCreateFailed)
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	h.save(c, render.Editing(id), msgUpdated, msgUpdateFailed)
}

// save validates the submitted form, then creates or updates depending on
// modal. Failures re-open the same dialog with the submitted values.
func (h *Handler) save(c *gin.Context, modal render.Modal, success, fallback string) {
	ctx := c.Request.Context()
	sess := session.FromContext(c)

	var req projectForm
	errs := form.Bind(c, &req)
	if errs.Any() {
		h.page(c, http.StatusUnprocessableEntity, render.Page{Modal: modal, Errors: errs, Form: req})
		return
	}

	var err error
	if modal.IsEditing() {
		err = h.projects.Update(ctx, sess.Token, sess.UserID, modal.ID, req.input())
	} else {
		err = h.projects.Create(ctx, sess.Token, sess.UserID, req.input())
	}

	switch {
	case err == nil:
		logging.New(ctx).Infof("save_project", "user_id=%s project_id=%s saved", sess.UserID, modal.ID)
		render.Redirect(c, basePath, success)
	case errors.Is(err, service.ErrEndBeforeStart):
		errs = form.Errors{}
		errs.Add("end_date", msgEndDate)
		h.page(c, http.StatusUnprocessableEntity, render.Page{Modal: modal, Errors: errs, Form: req})
	case gateway.IsKind(err, gateway.KindUnauthorized):
		h.sessions.Reject(c)
	default:
		status, msg := render.Failure(err, fallback)
		h.page(c, status, render.Page{Modal: modal, Error: msg, Form: req})
	}
}

func (h *Handler) delete(c *gin.Context) {
	ctx := c.Request.Context()
	sess := session.FromContext(c)
	id := strings.TrimSpace(c.Param("id"))

	err := h.projects.Delete(ctx, sess.Token, id)
	switch {
	case err == nil:
		logging.New(ctx).Infof("delete_project", "user_id=%s project_id=%s deleted", sess.UserID, id)
		render.Redirect(c, basePath, msgDeleted)
	case gateway.IsKind(err, gateway.KindUnauthorized):
		h.sessions.Reject(c)
	default:
		status, msg := render.Failure(err, msgDeleteFailed)
		h.page(c, status, render.Page{Error: msg})
	}
}
