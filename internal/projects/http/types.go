package http

import (
	"github.com/taskpilot/taskpilot-web/internal/projects/domain"
	"github.com/taskpilot/taskpilot-web/internal/projects/service"
	"github.com/taskpilot/taskpilot-web/internal/session"
)

const basePath = "/admin/project"

// Handler bundles the dependencies for the admin project pages.
type Handler struct {
	projects *service.ProjectService
	sessions *session.Manager
}

func New(projects *service.ProjectService, sessions *session.Manager) *Handler {
	return &Handler{projects: projects, sessions: sessions}
}

type projectForm struct {
	Name        string `form:"name" label:"Project Name" binding:"required"`
	Description string `form:"description" label:"Description" binding:"required"`
	StartDate   string `form:"start_date" label:"Start Date" binding:"required,datetime=2006-01-02"`
	EndDate     string `form:"end_date" label:"End Date" binding:"required,datetime=2006-01-02"`
}

func (f projectForm) input() service.Input {
	return service.Input{
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
	}
}

func formOf(in service.Input) projectForm {
	return projectForm{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

type pageData struct {
	Projects []domain.Project
}
