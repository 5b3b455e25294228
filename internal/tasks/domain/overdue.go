package domain

import (
	"time"

	"github.com/taskpilot/taskpilot-web/internal/civil"
)

// IsOverdue reports whether t's due day is strictly before the day of now,
// both taken at midnight in loc. Tasks without a due date are never overdue.
func IsOverdue(t Task, now time.Time, loc *time.Location) bool {
	if t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Day(loc).Before(civil.Midnight(now, loc))
}

// Overdue returns the overdue tasks in their original order.
func Overdue(tasks []Task, now time.Time, loc *time.Location) []Task {
	out := make([]Task, 0)
	for _, t := range tasks {
		if IsOverdue(t, now, loc) {
			out = append(out, t)
		}
	}
	return out
}
