package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	"github.com/taskpilot/taskpilot-web/internal/gateway/gatewaytest"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	"github.com/taskpilot/taskpilot-web/internal/session"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

// browser keeps cookies between requests against the router.
type browser struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	b.router.ServeHTTP(rr, req)
	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck
	}
	return rr
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (b *browser) post(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func newApp(t *testing.T) (*browser, *gatewaytest.Server, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := gatewaytest.New(t)
	store := session.NewMemoryStore(time.Hour)
	r, err := BuildRouter(RouterDeps{
		ServiceName:    "taskpilot-web",
		Version:        "test",
		AllowedOrigins: []string{"http://app.test"},
		Location:       time.UTC,
		Gateway:        api.Client(),
		Store:          store,
		Sessions:       session.NewManager(store, session.Options{CookieName: "sid"}),
		Now:            func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return &browser{t: t, router: r, cookies: map[string]*http.Cookie{}}, api, store
}

func TestMemberJourney(t *testing.T) {
	b, api, store := newApp(t)
	me := api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)
	other := api.AddUser("Cy", "cy@example.com", "pw", userdomain.RoleMember)
	project := api.AddProject(projectdomain.Project{Name: "Website"})
	api.AddTask(taskdomain.Task{Title: "Late", CreatedBy: me.ID, AssignedTo: other.ID, DueDate: civil.MustParse("2024-05-01")})

	rr := b.get("/user/Dashboard")
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	rr = b.post("/login", url.Values{"email": {"bob@example.com"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/Dashboard", rr.Header().Get("Location"))

	rr = b.get("/user/Dashboard")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome! Bob")

	rr = b.post("/user/createtask", url.Values{
		"project_id":  {project.ID},
		"assigned_to": {me.ID},
		"title":       {"Ship it"},
		"description": {"Release notes"},
		"due_date":    {"2024-05-20"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = b.get("/user/createtask")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Task created successfully!")
	assert.Contains(t, rr.Body.String(), "Ship it")

	rr = b.get("/user/overduetasks")
	assert.Contains(t, rr.Body.String(), "Late")

	rr = b.get("/admin/Dashboard")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/user/Dashboard", rr.Header().Get("Location"))

	rr = b.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Zero(t, store.Len())

	rr = b.get("/user/createtask")
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	b, _, _ := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := b.do(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "rid-1", rr.Header().Get("X-Request-Id"))
	assert.Contains(t, rr.Body.String(), `"sessions":"up"`)
}

func TestCORSAllowedOrigin(t *testing.T) {
	b, _, _ := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := b.do(req)

	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
}
