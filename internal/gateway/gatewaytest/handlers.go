package gatewaytest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskpilot/taskpilot-web/internal/civil"
	"github.com/taskpilot/taskpilot-web/internal/gateway"
	projectdomain "github.com/taskpilot/taskpilot-web/internal/projects/domain"
	taskdomain "github.com/taskpilot/taskpilot-web/internal/tasks/domain"
	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

type subjectKey struct{}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/users/register", s.register).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(s.requireToken)
	private.HandleFunc("/users/List", s.listUsers).Methods(http.MethodGet)
	private.HandleFunc("/projects/", s.listProjects).Methods(http.MethodGet)
	private.HandleFunc("/projects/Create", s.createProject).Methods(http.MethodPost)
	private.HandleFunc("/projects/{id}", s.updateProject).Methods(http.MethodPut)
	private.HandleFunc("/projects/{id}", s.deleteProject).Methods(http.MethodDelete)
	private.HandleFunc("/tasks/", s.listTasks).Methods(http.MethodGet)
	private.HandleFunc("/tasks/create", s.createTask).Methods(http.MethodPost)
	private.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPut)
	private.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, map[string]interface{}{"isSuccess": true, "data": data, "message": message})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"isSuccess": false, "data": nil, "message": message})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.calls[key]++
		f, faulty := s.faults[key]
		s.mu.Unlock()

		if faulty {
			fail(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			fail(w, http.StatusUnauthorized, "No token provided")
			return
		}

		s.mu.Lock()
		secret := s.secret
		s.mu.Unlock()

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			fail(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func subject(r *http.Request) string {
	sub, _ := r.Context().Value(subjectKey{}).(string)
	return sub
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds gateway.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.Lock()
	var found *account
	for i := range s.accounts {
		if strings.EqualFold(s.accounts[i].user.Email, creds.Email) {
			a := s.accounts[i]
			found = &a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(creds.Password)) != nil {
		fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	ok(w, http.StatusOK, map[string]interface{}{
		"_id":   found.user.ID,
		"name":  found.user.Name,
		"email": found.user.Email,
		"role":  found.user.Role,
		"token": s.TokenFor(found.user.ID),
	}, "Login successful")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg userdomain.Registration
	if !decode(w, r, &reg) {
		return
	}
	for _, u := range s.Users() {
		if strings.EqualFold(u.Email, reg.Email) {
			fail(w, http.StatusConflict, "User already exists")
			return
		}
	}
	u := s.AddUser(reg.Name, reg.Email, reg.Password, reg.Role)
	ok(w, http.StatusCreated, map[string]string{"_id": u.ID}, "User registered successfully")
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, s.Users(), "")
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, s.Projects(), "")
}

func (s *Server) projectFromDraft(d projectdomain.Draft) (projectdomain.Project, error) {
	if strings.TrimSpace(d.Name) == "" {
		return projectdomain.Project{}, errors.New("Project name is required")
	}
	start, _ := civil.Parse(d.StartDate)
	end, _ := civil.Parse(d.EndDate)

	creator := projectdomain.Creator{ID: d.CreatedBy}
	for _, u := range s.Users() {
		if u.ID == d.CreatedBy {
			creator.Name = u.Name
		}
	}
	return projectdomain.Project{
		Name:        d.Name,
		Description: d.Description,
		StartDate:   start,
		EndDate:     end,
		CreatedBy:   creator,
	}, nil
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var d projectdomain.Draft
	if !decode(w, r, &d) {
		return
	}
	p, err := s.projectFromDraft(d)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	ok(w, http.StatusCreated, s.AddProject(p), "Project created")
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var d projectdomain.Draft
	if !decode(w, r, &d) {
		return
	}
	p, err := s.projectFromDraft(d)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			p.ID = id
			s.projects[i] = p
			ok(w, http.StatusOK, p, "Project updated")
			return
		}
	}
	fail(w, http.StatusNotFound, "Project not found")
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			ok(w, http.StatusOK, nil, "Project deleted")
			return
		}
	}
	fail(w, http.StatusNotFound, "Project not found")
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	ok(w, http.StatusOK, s.Tasks(), "")
}

func taskFromDraft(d taskdomain.Draft, sub string) (taskdomain.Task, error) {
	if strings.TrimSpace(d.Title) == "" {
		return taskdomain.Task{}, errors.New("Title is required")
	}
	due, _ := civil.Parse(d.DueDate)
	createdBy := d.CreatedBy
	if createdBy == "" {
		createdBy = sub
	}
	return taskdomain.Task{
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		DueDate:     due.Stored(),
		AssignedTo:  d.AssignedTo,
		CreatedBy:   createdBy,
	}, nil
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var d taskdomain.Draft
	if !decode(w, r, &d) {
		return
	}
	t, err := taskFromDraft(d, subject(r))
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	ok(w, http.StatusCreated, s.AddTask(t), "Task created")
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var d taskdomain.Draft
	if !decode(w, r, &d) {
		return
	}
	t, err := taskFromDraft(d, subject(r))
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t.ID = id
			if d.CreatedBy == "" {
				t.CreatedBy = s.tasks[i].CreatedBy
			}
			s.tasks[i] = t
			ok(w, http.StatusOK, t, "Task updated")
			return
		}
	}
	fail(w, http.StatusNotFound, "Task not found")
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			ok(w, http.StatusOK, nil, "Task deleted")
			return
		}
	}
	fail(w, http.StatusNotFound, "Task not found")
}
