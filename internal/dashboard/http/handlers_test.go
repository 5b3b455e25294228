package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	"github.com/taskpilot/taskpilot-web/internal/dashboard/service"
	"github.com/taskpilot/taskpilot-web/internal/gateway/gatewaytest"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	"github.com/taskpilot/taskpilot-web/internal/session"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	taskservice "github.com/taskpilot/taskpilot-web/internal/tasks/service"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*gin.Engine, *gatewaytest.Server, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := gatewaytest.New(t)
	client := api.Client()
	store := session.NewMemoryStore(time.Hour)
	sessions := session.NewManager(store, session.Options{CookieName: "sid"})
	tasks := taskservice.NewTaskService(client, time.UTC).WithClock(func() time.Time { return now })
	h := New(service.NewDashboardService(client), tasks, sessions)

	r := gin.New()
	require.NoError(t, render.Install(r, time.UTC))
	h.RegisterAdmin(r.Group("/admin", sessions.Guard(), session.RequireRole(userdomain.RoleAdmin)))
	h.RegisterMember(r.Group("/user", sessions.Guard(), session.RequireRole(userdomain.RoleMember)))
	return r, api, store
}

func signIn(t *testing.T, api *gatewaytest.Server, store *session.MemoryStore, u userdomain.User) *http.Cookie {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), &session.Session{
		ID:     "sid-" + u.ID,
		UserID: u.ID,
		Name:   u.Name,
		Role:   u.Role,
		Token:  api.TokenFor(u.ID),
	}))
	return &http.Cookie{Name: "sid", Value: "sid-" + u.ID}
}

func get(r http.Handler, target string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(ck)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAdminDashboard_Counts(t *testing.T) {
	r, api, store := setup(t)
	admin := api.AddUser("Ann", "ann@example.com", "pw", userdomain.RoleAdmin)
	api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)
	api.AddProject(projectdomain.Project{Name: "Website"})
	api.AddTask(taskdomain.Task{Title: "A"})
	api.AddTask(taskdomain.Task{Title: "B"})
	api.AddTask(taskdomain.Task{Title: "C"})

	rr := get(r, "/admin/Dashboard", signIn(t, api, store, admin))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<td>Total Projects</td>\n        <td>1</td>")
	assert.Contains(t, body, "<td>Total Users</td><td>2</td>")
	assert.Contains(t, body, "<td>Total Tasks</td><td>3</td>")
	assert.Contains(t, body, "Welcome! Ann (Admin)")
}

func TestAdminDashboard_FailedSourceCountsZero(t *testing.T) {
	r, api, store := setup(t)
	admin := api.AddUser("Ann", "ann@example.com", "pw", userdomain.RoleAdmin)
	api.AddTask(taskdomain.Task{Title: "A"})
	api.Fail(http.MethodGet, "/api/tasks/", http.StatusServiceUnavailable, "")

	rr := get(r, "/admin/Dashboard", signIn(t, api, store, admin))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<td>Total Tasks</td><td>0</td>")
	assert.Contains(t, rr.Body.String(), "<td>Total Users</td><td>1</td>")
}

func TestMemberDashboard_Summary(t *testing.T) {
	r, api, store := setup(t)
	me := api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)
	other := api.AddUser("Cy", "cy@example.com", "pw", userdomain.RoleMember)
	api.AddTask(taskdomain.Task{Title: "mine", CreatedBy: me.ID, AssignedTo: me.ID})
	api.AddTask(taskdomain.Task{Title: "delegated", CreatedBy: me.ID, AssignedTo: other.ID, DueDate: civil.MustParse("2024-05-01")})
	api.AddTask(taskdomain.Task{Title: "theirs", CreatedBy: other.ID, AssignedTo: me.ID, DueDate: civil.MustParse("2024-05-09")})
	api.AddTask(taskdomain.Task{Title: "today", CreatedBy: other.ID, DueDate: civil.MustParse("2024-05-10")})

	rr := get(r, "/user/Dashboard", signIn(t, api, store, me))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<td>Tasks Assigned</td>\n        <td>1</td>")
	assert.Contains(t, body, "<td>Tasks Created</td>\n        <td>2</td>")
	assert.Contains(t, body, "<td>Overdue Tasks</td>\n        <td>2</td>")
	assert.NotContains(t, body, "(Admin)")
}

func TestMemberDashboard_RevokedToken(t *testing.T) {
	r, api, store := setup(t)
	me := api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)
	ck := signIn(t, api, store, me)
	api.RevokeTokens()

	rr := get(r, "/user/Dashboard", ck)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, session.LoginPath, rr.Header().Get("Location"))
	assert.Zero(t, store.Len())
}

func TestAdminCannotOpenMemberDashboard(t *testing.T) {
	r, api, store := setup(t)
	admin := api.AddUser("Ann", "ann@example.com", "pw", userdomain.RoleAdmin)

	rr := get(r, "/user/Dashboard", signIn(t, api, store, admin))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, session.AdminDashboardPath, rr.Header().Get("Location"))
}
