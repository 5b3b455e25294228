package domain

import "time"

// MemberSummary backs the member dashboard.
type MemberSummary struct {
	// Created counts tasks the member created.
	Created int
	// Assignees counts distinct other users the member delegated work to.
	Assignees int
	// Overdue counts every overdue task in the list, not only the member's.
	Overdue int
}

func Summarize(tasks []Task, userID string, now time.Time, loc *time.Location) MemberSummary {
	created := CreatedBy(tasks, userID)

	assignees := make(map[string]struct{})
	for _, t := range created {
		if t.AssignedTo != "" && t.AssignedTo != userID {
			assignees[t.AssignedTo] = struct{}{}
		}
	}

	return MemberSummary{
		Created:   len(created),
		Assignees: len(assignees),
		Overdue:   len(Overdue(tasks, now, loc)),
	}
}
