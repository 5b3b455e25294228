package service

import (
	"context"

	"github.com/taskpilot/taskpilot-web/internal/gateway"
)

// Loader fetches several API lists at once.
type Loader interface {
	LoadBoard(ctx context.Context, token string, sources ...gateway.Source) *gateway.Board
}

// AdminCounts backs the admin dashboard. A source that failed to load counts
// as zero.
type AdminCounts struct {
	Projects int
	Users    int
	Tasks    int
}

type DashboardService struct {
	loader Loader
}

func NewDashboardService(loader Loader) *DashboardService {
	return &DashboardService{loader: loader}
}

// Admin counts projects, users and tasks. The only error it returns is the
// API rejecting the token.
func (s *DashboardService) Admin(ctx context.Context, token string) (AdminCounts, error) {
	b := s.loader.LoadBoard(ctx, token, gateway.SourceProjects, gateway.SourceUsers, gateway.SourceTasks)
	if err := b.Unauthorized(); err != nil {
		return AdminCounts{}, err
	}
	return AdminCounts{
		Projects: len(b.Projects),
		Users:    len(b.Users),
		Tasks:    len(b.Tasks),
	}, nil
}
