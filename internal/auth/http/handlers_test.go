package http

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

	"github.com/taskpilot/taskpilot-web/internal/auth/service"
	"github.com/taskpilot/taskpilot-web/internal/gateway/gatewaytest"
	"github.com/taskpilot/taskpilot-web/internal/session"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
	"github.com/taskpilot/taskpilot-web/internal/web/render"
)

func setupRouter(t *testing.T) (*gin.Engine, *gatewaytest.Server, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := gatewaytest.New(t)
	store := session.NewMemoryStore(time.Hour)
	sessions := session.NewManager(store, session.Options{CookieName: "sid"})

	r := gin.New()
	require.NoError(t, render.Install(r, time.UTC))
	New(service.NewAuthService(api.Client()), sessions).Register(r)
	return r, api, store
}

func postForm(r http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLogin_AdminLandsOnAdminDashboard(t *testing.T) {
	r, api, store := setupRouter(t)
	api.AddUser("Ann", "ann@example.com", "s3cret", userdomain.RoleAdmin)

	rr := postForm(r, "/login", url.Values{"email": {"ann@example.com"}, "password": {"s3cret"}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, session.AdminDashboardPath, rr.Header().Get("Location"))
	require.NotNil(t, cookieNamed(rr, "sid"))
	assert.Equal(t, 1, store.Len())
}

func TestLogin_MemberLandsOnUserDashboard(t *testing.T) {
	r, api, _ := setupRouter(t)
	api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)

	rr := postForm(r, "/login", url.Values{"email": {"bob@example.com"}, "password": {"pw"}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, session.UserDashboardPath, rr.Header().Get("Location"))
}

func TestLogin_MissingFieldsSkipsAPI(t *testing.T) {
	r, api, store := setupRouter(t)

	rr := postForm(r, "/login", url.Values{"email": {"ann@example.com"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Both email and password are required.")
	assert.Contains(t, rr.Body.String(), `value="ann@example.com"`)
	assert.Zero(t, api.Calls(http.MethodPost, "/api/auth/login"))
	assert.Zero(t, store.Len())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	r, api, store := setupRouter(t)
	api.AddUser("Ann", "ann@example.com", "s3cret", userdomain.RoleAdmin)

	rr := postForm(r, "/login", url.Values{"email": {"ann@example.com"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid email or password")
	assert.Nil(t, cookieNamed(rr, "sid"))
	assert.Zero(t, store.Len())
}

func TestLogin_UnknownRole(t *testing.T) {
	r, api, store := setupRouter(t)
	api.AddUser("Eve", "eve@example.com", "pw", userdomain.Role("auditor"))

	rr := postForm(r, "/login", url.Values{"email": {"eve@example.com"}, "password": {"pw"}})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Role not recognized.")
	assert.Zero(t, store.Len())
}

func TestLogin_UpstreamDown(t *testing.T) {
	r, api, _ := setupRouter(t)
	api.Fail(http.MethodPost, "/api/auth/login", http.StatusInternalServerError, "")

	rr := postForm(r, "/login", url.Values{"email": {"ann@example.com"}, "password": {"pw"}})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong. Please try again.")
}

func TestSignup_ReportsEveryInvalidField(t *testing.T) {
	r, api, _ := setupRouter(t)

	rr := postForm(r, "/signin", url.Values{"name": {"Bob"}, "email": {"not-an-email"}, "role": {"owner"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Email is invalid")
	assert.Contains(t, body, "Password is required")
	assert.Contains(t, body, "Role must be one of: admin, member")
	assert.Contains(t, body, `value="Bob"`)
	assert.Empty(t, api.Users())
}

func TestSignup_Success(t *testing.T) {
	r, api, _ := setupRouter(t)

	rr := postForm(r, "/signin", url.Values{
		"name":     {"Bob"},
		"email":    {"Bob@Example.com"},
		"password": {"pw"},
		"role":     {"member"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Registration successful!")
	assert.Contains(t, rr.Body.String(), "Go to login")

	users := api.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "bob@example.com", users[0].Email)
	assert.Equal(t, userdomain.RoleMember, users[0].Role)
}

func TestSignup_DuplicateShowsAPIMessage(t *testing.T) {
	r, api, _ := setupRouter(t)
	api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)

	rr := postForm(r, "/signin", url.Values{
		"name":     {"Bob"},
		"email":    {"bob@example.com"},
		"password": {"pw"},
		"role":     {"member"},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "User already exists")
}

func TestLogout_DestroysSession(t *testing.T) {
	r, api, store := setupRouter(t)
	api.AddUser("Ann", "ann@example.com", "s3cret", userdomain.RoleAdmin)

	login := postForm(r, "/login", url.Values{"email": {"ann@example.com"}, "password": {"s3cret"}})
	sid := cookieNamed(login, "sid")
	require.NotNil(t, sid)
	require.Equal(t, 1, store.Len())

	rr := postForm(r, "/logout", nil, sid)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, session.LoginPath, rr.Header().Get("Location"))
	assert.Zero(t, store.Len())
}

func TestLogin_AgainReplacesSession(t *testing.T) {
	r, api, store := setupRouter(t)
	api.AddUser("Ann", "ann@example.com", "s3cret", userdomain.RoleAdmin)
	creds := url.Values{"email": {"ann@example.com"}, "password": {"s3cret"}}

	first := cookieNamed(postForm(r, "/login", creds), "sid")
	require.NotNil(t, first)

	second := postForm(r, "/login", creds, first)
	assert.Equal(t, http.StatusSeeOther, second.Code)
	require.NotNil(t, cookieNamed(second, "sid"))
	assert.Equal(t, 1, store.Len())
}

func TestRoot(t *testing.T) {
	r, api, _ := setupRouter(t)
	api.AddUser("Bob", "bob@example.com", "pw", userdomain.RoleMember)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, session.LoginPath, rr.Header().Get("Location"))

	login := postForm(r, "/login", url.Values{"email": {"bob@example.com"}, "password": {"pw"}})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookieNamed(login, "sid"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, session.UserDashboardPath, rr.Header().Get("Location"))
}
