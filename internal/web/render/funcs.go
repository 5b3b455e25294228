package render

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
)

// DisplayLayout is how dates appear in tables.
const DisplayLayout = "Jan 2, 2006"

// Funcs are the helpers available to every template.
func Funcs(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.Local
	}
	return template.FuncMap{
		"date": func(d civil.Date) string {
			if d.IsZero() {
				return "N/A"
			}
			return d.Format(DisplayLayout, loc)
		},
		"inputDate": func(d civil.Date) string {
			return d.Format(civil.InputLayout, loc)
		},
		"statusLabel":   StatusLabel,
		"priorityLabel": PriorityLabel,
		"statuses":      func() []taskdomain.Status { return taskdomain.Statuses },
		"priorities":    func() []taskdomain.Priority { return taskdomain.Priorities },
		"inc":           func(i int) int { return i + 1 },
		"modalLink": func(path string, base url.Values, kind, id string) string {
			return path + Modal{Kind: ModalKind(kind), ID: id}.Query(base)
		},
		"pathJoin": PathJoin,
	}
}

func StatusLabel(s taskdomain.Status) string {
	switch s {
	case taskdomain.StatusTodo:
		return "To Do"
	case taskdomain.StatusInProgress:
		return "In Progress"
	case taskdomain.StatusDone:
		return "Done"
	case "":
		return "N/A"
	default:
		return string(s)
	}
}

// PriorityLabel capitalises a priority, or "N/A" when it is missing.
func PriorityLabel(p taskdomain.Priority) string {
	v := strings.TrimSpace(string(p))
	if v == "" {
		return "N/A"
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// PathJoin appends escaped, non-empty segments to base.
func PathJoin(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, s := range segments {
		if s != "" {
			out += "/" + url.PathEscape(s)
		}
	}
	return out
}
