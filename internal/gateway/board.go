package gateway

import (
	"context"
	"sync"

	"github.com/taskpilot/taskpilot-web/internal/logging"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

// Source names one of the lists a page can populate.
type Source string

const (
	SourceProjects Source = "projects"
	SourceUsers    Source = "users"
	SourceTasks    Source = "tasks"
)

// Board is the joined result of loading several lists at once. A source that
// failed is left empty and its error kept in Errors.
type Board struct {
	Projects []projectdomain.Project
	Users    []userdomain.User
	Tasks    []taskdomain.Task
	Errors   map[Source]error
}

// Failed reports whether src could not be loaded.
func (b *Board) Failed(src Source) bool {
	return b.Errors[src] != nil
}

// Unauthorized returns the error of a source the API rejected for its token,
// or nil when no source was.
func (b *Board) Unauthorized() error {
	for _, err := range b.Errors {
		if IsKind(err, KindUnauthorized) {
			return err
		}
	}
	return nil
}

// LoadBoard fetches the requested sources concurrently and waits for all of
// them. Failures are logged and recorded per source; they never cancel the
// other fetches.
func (c *Client) LoadBoard(ctx context.Context, token string, sources ...Source) *Board {
	logger := logging.New(ctx)
	b := &Board{Errors: make(map[Source]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(src Source, err error) {
		logger.Warnf("load_board", "source=%s abandoned: %v", src, err)
		mu.Lock()
		b.Errors[src] = err
		mu.Unlock()
	}

	for _, src := range dedupe(sources) {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			switch src {
			case SourceProjects:
				items, err := c.ListProjects(ctx, token)
				if err != nil {
					fail(src, err)
					return
				}
				b.Projects = items
			case SourceUsers:
				items, err := c.ListUsers(ctx, token)
				if err != nil {
					fail(src, err)
					return
				}
				b.Users = items
			case SourceTasks:
				items, err := c.ListTasks(ctx, token)
				if err != nil {
					fail(src, err)
					return
				}
				b.Tasks = items
			}
		}(src)
	}
	wg.Wait()
	return b
}

func dedupe(sources []Source) []Source {
	seen := make(map[Source]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
