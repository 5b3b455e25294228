package gateway

import (
	"context"
	"net/http"
	"net/url"

	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

func (c *Client) ListUsers(ctx context.Context, token string) ([]userdomain.User, error) {
	var out []userdomain.User
	err := c.do(ctx, call{op: "list_users", method: http.MethodGet, path: "users/List", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProjects(ctx context.Context, token string) ([]projectdomain.Project, error) {
	var out []projectdomain.Project
	err := c.do(ctx, call{op: "list_projects", method: http.MethodGet, path: "projects/", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, token string, d projectdomain.Draft) error {
	return c.do(ctx, call{op: "create_project", method: http.MethodPost, path: "projects/Create", token: token, body: d})
}

func (c *Client) UpdateProject(ctx context.Context, token, id string, d projectdomain.Draft) error {
	return c.do(ctx, call{op: "update_project", method: http.MethodPut, path: "projects/" + url.PathEscape(id), token: token, body: d})
}

func (c *Client) DeleteProject(ctx context.Context, token, id string) error {
	return c.do(ctx, call{op: "delete_project", method: http.MethodDelete, path: "projects/" + url.PathEscape(id), token: token})
}

func (c *Client) ListTasks(ctx context.Context, token string) ([]taskdomain.Task, error) {
	var out []taskdomain.Task
	err := c.do(ctx, call{op: "list_tasks", method: http.MethodGet, path: "tasks/", token: token, out: &out})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, d taskdomain.Draft) error {
	return c.do(ctx, call{op: "create_task", method: http.MethodPost, path: "tasks/create", token: token, body: d})
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, d taskdomain.Draft) error {
	return c.do(ctx, call{op: "update_task", method: http.MethodPut, path: "tasks/" + url.PathEscape(id), token: token, body: d})
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, call{op: "delete_task", method: http.MethodDelete, path: "tasks/" + url.PathEscape(id), token: token})
}
