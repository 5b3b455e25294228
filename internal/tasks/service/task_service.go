package service

import (
	"context"
	"time"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	"github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

// Gateway is the subset of the remote API the task pages use.
type Gateway interface {
	LoadBoard(ctx context.Context, token string, sources ...gateway.Source) *gateway.Board
	CreateTask(ctx context.Context, token string, d domain.Draft) error
	UpdateTask(ctx context.Context, token, id string, d domain.Draft) error
	DeleteTask(ctx context.Context, token, id string) error
}

// Row is a task annotated with the names a table shows next to it.
type Row struct {
	domain.Task
	ProjectName  string
	AssigneeName string
}

// Lookups are the project and user lists that feed the task form selects.
type Lookups struct {
	Projects []projectdomain.Project
	Users    []userdomain.User
}

// ListView backs every flat task table.
type ListView struct {
	Lookups
	Rows []Row
	// Total is the number of rows before the criteria were applied.
	Total int
	// Tasks holds the unfiltered tasks so an edit form can be filled for a
	// task the filter hides.
	Tasks []domain.Task
}

// GroupedView backs the "assigned by you" page.
type GroupedView struct {
	Lookups
	Groups []domain.AssigneeGroup
	Tasks  []domain.Task
}

// TaskService derives the member task pages from the remote API.
type TaskService struct {
	gw  Gateway
	now func() time.Time
	loc *time.Location
}

func NewTaskService(gw Gateway, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{gw: gw, now: time.Now, loc: loc}
}

// WithClock replaces the time source used for overdue checks.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// load fetches sources for a task page. A rejected token fails the page, as
// does the task list itself; projects and users that fail render as empty
// lookups.
func (s *TaskService) load(ctx context.Context, token string, sources ...gateway.Source) (*gateway.Board, error) {
	b := s.gw.LoadBoard(ctx, token, sources...)
	if err := b.Unauthorized(); err != nil {
		return nil, err
	}
	if b.Failed(gateway.SourceTasks) {
		return nil, b.Errors[gateway.SourceTasks]
	}
	return b, nil
}

func annotate(tasks []domain.Task, projects map[string]string, dir userdomain.Directory, unassigned string) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		name, ok := projects[t.ProjectID]
		if !ok {
			name = "Unknown"
		}
		rows = append(rows, Row{
			Task:         t,
			ProjectName:  name,
			AssigneeName: dir.Name(t.AssignedTo, unassigned),
		})
	}
	return rows
}

func (s *TaskService) list(ctx context.Context, token string, c domain.Criteria, pick func([]domain.Task) []domain.Task, unassigned string) (*ListView, error) {
	b, err := s.load(ctx, token, gateway.SourceProjects, gateway.SourceUsers, gateway.SourceTasks)
	if err != nil {
		return nil, err
	}
	picked := pick(b.Tasks)
	filtered := domain.NewFilter(c, s.loc).Apply(picked)
	return &ListView{
		Lookups: Lookups{Projects: b.Projects, Users: b.Users},
		Rows:    annotate(filtered, projectdomain.Names(b.Projects), userdomain.NewDirectory(b.Users), unassigned),
		Total:   len(picked),
		Tasks:   picked,
	}, nil
}

// AssignedToMe lists the tasks assigned to userID.
func (s *TaskService) AssignedToMe(ctx context.Context, token, userID string, c domain.Criteria) (*ListView, error) {
	return s.list(ctx, token, c, func(ts []domain.Task) []domain.Task {
		return domain.AssignedTo(ts, userID)
	}, "Unassigned")
}

// CreatedByMe lists the tasks userID created, whoever they are assigned to.
func (s *TaskService) CreatedByMe(ctx context.Context, token, userID string, c domain.Criteria) (*ListView, error) {
	return s.list(ctx, token, c, func(ts []domain.Task) []domain.Task {
		return domain.CreatedBy(ts, userID)
	}, "Unknown")
}

// Delegated groups the tasks userID created for other people by assignee.
func (s *TaskService) Delegated(ctx context.Context, token, userID string, c domain.Criteria) (*GroupedView, error) {
	b, err := s.load(ctx, token, gateway.SourceProjects, gateway.SourceUsers, gateway.SourceTasks)
	if err != nil {
		return nil, err
	}
	return &GroupedView{
		Lookups: Lookups{Projects: b.Projects, Users: b.Users},
		Groups:  domain.GroupByAssignee(b.Tasks, userID, userdomain.NewDirectory(b.Users), domain.NewFilter(c, s.loc)),
		Tasks:   domain.DelegatedBy(b.Tasks, userID),
	}, nil
}

// Overdue lists every overdue task as of now.
func (s *TaskService) Overdue(ctx context.Context, token string) (*ListView, error) {
	b, err := s.load(ctx, token, gateway.SourceUsers, gateway.SourceTasks, gateway.SourceProjects)
	if err != nil {
		return nil, err
	}
	overdue := domain.Overdue(b.Tasks, s.now(), s.loc)
	return &ListView{
		Lookups: Lookups{Projects: b.Projects, Users: b.Users},
		Rows:    annotate(overdue, projectdomain.Names(b.Projects), userdomain.NewDirectory(b.Users), "Unknown"),
		Total:   len(overdue),
		Tasks:   overdue,
	}, nil
}

// Summary computes the member dashboard counts.
// A failed task list counts as empty; only a rejected token is an error.
func (s *TaskService) Summary(ctx context.Context, token, userID string) (domain.MemberSummary, error) {
	b := s.gw.LoadBoard(ctx, token, gateway.SourceTasks)
	if err := b.Unauthorized(); err != nil {
		return domain.MemberSummary{}, err
	}
	return domain.Summarize(b.Tasks, userID, s.now(), s.loc), nil
}

// Input is a task as entered in the create and edit forms.
type Input struct {
	ProjectID   string
	AssignedTo  string
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     string
}

// InputOf fills an edit form from an existing task. The due date is the day
// that was entered, not the day the stored instant falls on locally.
func InputOf(t domain.Task) Input {
	return Input{
		ProjectID:   t.ProjectID,
		AssignedTo:  t.AssignedTo,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate.Entered(),
	}
}

// Draft applies the form defaults and builds the API payload.
func (in Input) Draft() domain.Draft {
	if in.Status == "" {
		in.Status = domain.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	return domain.Draft{
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
	}
}

// Create submits a new task created by userID.
func (s *TaskService) Create(ctx context.Context, token, userID string, in Input) error {
	d := in.Draft()
	d.CreatedBy = userID
	return s.gw.CreateTask(ctx, token, d)
}

// Update replaces the writable fields of task id. The creator is left as the
// API has it.
func (s *TaskService) Update(ctx context.Context, token, id string, in Input) error {
	return s.gw.UpdateTask(ctx, token, id, in.Draft())
}

func (s *TaskService) Delete(ctx context.Context, token, id string) error {
	return s.gw.DeleteTask(ctx, token, id)
}
