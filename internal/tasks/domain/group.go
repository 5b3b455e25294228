package domain

import (
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

// AssigneeGroup is one assignee's slice of the "assigned by you" view.
// User is nil when the assignee id does not resolve.
type AssigneeGroup struct {
	AssigneeID string
	User       *userdomain.User
	Tasks      []Task
}

// DisplayName is the assignee's name or "Unknown".
func (g AssigneeGroup) DisplayName() string {
	if g.User == nil || g.User.Name == "" {
		return "Unknown"
	}
	return g.User.Name
}

// DelegatedBy selects tasks userID created for somebody else.
func DelegatedBy(tasks []Task, userID string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CreatedBy == userID && t.AssignedTo != userID {
			out = append(out, t)
		}
	}
	return out
}

// GroupByAssignee partitions the tasks userID delegated by assignee, in order
// of first appearance. Each group is narrowed by f and groups left empty are
// dropped, so every task lands in exactly one group and no group is empty.
func GroupByAssignee(tasks []Task, userID string, dir userdomain.Directory, f Filter) []AssigneeGroup {
	delegated := DelegatedBy(tasks, userID)

	index := make(map[string]int)
	var groups []AssigneeGroup
	for _, t := range delegated {
		i, ok := index[t.AssignedTo]
		if !ok {
			g := AssigneeGroup{AssigneeID: t.AssignedTo}
			if u, found := dir.Lookup(t.AssignedTo); found {
				g.User = &u
			}
			i = len(groups)
			index[t.AssignedTo] = i
			groups = append(groups, g)
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	out := make([]AssigneeGroup, 0, len(groups))
	for _, g := range groups {
		g.Tasks = f.Apply(g.Tasks)
		if len(g.Tasks) > 0 {
			out = append(out, g)
		}
	}
	return out
}
