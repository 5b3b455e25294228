package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	"github.com/taskpilot/taskpilot-web/internal/projects/domain"
)

// ErrEndBeforeStart is returned when a project would finish before it starts.
var ErrEndBeforeStart = errors.New("end date must not be before start date")

// Gateway is the subset of the remote API the project pages use.
type Gateway interface {
	ListProjects(ctx context.Context, token string) ([]domain.Project, error)
	CreateProject(ctx context.Context, token string, d domain.Draft) error
	UpdateProject(ctx context.Context, token, id string, d domain.Draft) error
	DeleteProject(ctx context.Context, token, id string) error
}

// Input is a project as entered in the create and edit forms. Dates are
// YYYY-MM-DD.
type Input struct {
	Name        string
	Description string
	StartDate   string
	EndDate     string
}

// InputOf fills an edit form from an existing project.
func InputOf(p domain.Project) Input {
	return Input{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(civil.InputLayout, time.UTC),
		EndDate:     p.EndDate.Format(civil.InputLayout, time.UTC),
	}
}

// Draft converts the form into the API payload. Each date is sent as UTC
// midnight of the chosen day.
func (in Input) Draft(creatorID string) (domain.Draft, error) {
	start, err := time.Parse(civil.InputLayout, in.StartDate)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse(civil.InputLayout, in.EndDate)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("end date: %w", err)
	}
	if end.Before(start) {
		return domain.Draft{}, ErrEndBeforeStart
	}
	return domain.Draft{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   start.UTC().Format(time.RFC3339),
		EndDate:     end.UTC().Format(time.RFC3339),
		CreatedBy:   creatorID,
	}, nil
}

// ProjectService handles the admin project pages
type ProjectService struct {
	gw Gateway
}

// NewProjectService creates a new project service
func NewProjectService(gw Gateway) *ProjectService {
	return &ProjectService{gw: gw}
}

// List returns every project the API reports
func (s *ProjectService) List(ctx context.Context, token string) ([]domain.Project, error) {
	return s.gw.ListProjects(ctx, token)
}

// Create validates in and creates the project on behalf of creatorID
func (s *ProjectService) Create(ctx context.Context, token, creatorID string, in Input) error {
	d, err := in.Draft(creatorID)
	if err != nil {
		return err
	}
	return s.gw.CreateProject(ctx, token, d)
}

// Update replaces the writable fields of project id
func (s *ProjectService) Update(ctx context.Context, token, creatorID, id string, in Input) error {
	d, err := in.Draft(creatorID)
	if err != nil {
		return err
	}
	return s.gw.UpdateProject(ctx, token, id, d)
}

// Delete removes project id
func (s *ProjectService) Delete(ctx context.Context, token, id string) error {
	return s.gw.DeleteProject(ctx, token, id)
}
