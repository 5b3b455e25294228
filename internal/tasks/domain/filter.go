package domain

import (
	"strings"
	"time"

	"github.com/taskpilot/taskpilot-web/internal/civil"
)

// Criteria narrows a task list. Zero-valued fields are inactive.
type Criteria struct {
	Search   string
	Status   Status
	Priority Priority
	DueDate  civil.Date
}

// Active reports whether any predicate is set.
func (c Criteria) Active() bool {
	return c.Search != "" || c.Status != "" || c.Priority != "" || !c.DueDate.IsZero()
}

// Filter evaluates Criteria against tasks in a fixed location. The search
// text is matched as typed. The due date is compared the way the API stores
// it, so an entered day matches the tasks saved with that day.
type Filter struct {
	criteria Criteria
	needle   string
	loc      *time.Location
}

func NewFilter(c Criteria, loc *time.Location) Filter {
	if loc == nil {
		loc = time.Local
	}
	c.DueDate = c.DueDate.Stored()
	return Filter{
		criteria: c,
		needle:   strings.ToLower(c.Search),
		loc:      loc,
	}
}

// Matches is the conjunction of every active predicate.
func (f Filter) Matches(t Task) bool {
	if f.needle != "" &&
		!strings.Contains(strings.ToLower(t.Title), f.needle) &&
		!strings.Contains(strings.ToLower(t.Description), f.needle) {
		return false
	}
	if f.criteria.Status != "" && t.Status != f.criteria.Status {
		return false
	}
	if f.criteria.Priority != "" && t.Priority != f.criteria.Priority {
		return false
	}
	if !f.criteria.DueDate.IsZero() && !t.DueDate.SameDay(f.criteria.DueDate, f.loc) {
		return false
	}
	return true
}

// Apply returns the matching tasks in their original order. The input is
// not modified.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// AssignedTo selects tasks assigned to userID.
func AssignedTo(tasks []Task, userID string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out
}

// CreatedBy selects tasks created by userID.
func CreatedBy(tasks []Task, userID string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CreatedBy == userID {
			out = append(out, t)
		}
	}
	return out
}
