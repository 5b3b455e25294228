package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/taskpilot/taskpilot-web/internal/civil"
)

// Project is a unit of work owned by the remote API. The client only holds
// it for the lifetime of one page render.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   civil.Date `json:"start_date"`
	EndDate     civil.Date `json:"end_date"`
	CreatedBy   Creator    `json:"created_by"`
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (p *Project) UnmarshalJSON(b []byte) error {
	type alias Project
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		p.ID = aux.MongoID
	}
	return nil
}

// Creator is the project's created_by reference. The API sends either a bare
// user id or a populated user object.
type Creator struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (c *Creator) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Creator{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*c = Creator{ID: id}
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	c.ID = obj.ID
	if obj.MongoID != "" {
		c.ID = obj.MongoID
	}
	c.Name = obj.Name
	return nil
}

// DisplayName is the creator's name or "N/A" when the API did not populate it.
func (c Creator) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return "N/A"
	}
	return c.Name
}

// Draft is the writable part of a project as sent on create and update.
// Dates are RFC3339 instants at UTC midnight of the chosen day.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CreatedBy   string `json:"created_by"`
}

// Names maps project ids to project names.
func Names(projects []Project) map[string]string {
	out := make(map[string]string, len(projects))
	for _, p := range projects {
		if p.ID != "" {
			out[p.ID] = p.Name
		}
	}
	return out
}
