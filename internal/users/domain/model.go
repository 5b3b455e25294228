package domain

import (
	"encoding/json"
	"strings"
)

// Role is the account type the remote API assigns at registration.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is a team member as listed by users/List.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Registration is the payload for users/register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Directory resolves user ids to user records. Lookups of unknown ids fall
// back to a caller-supplied placeholder; references are never enforced.
type Directory struct {
	byID map[string]User
}

func NewDirectory(users []User) Directory {
	byID := make(map[string]User, len(users))
	for _, u := range users {
		if u.ID != "" {
			byID[u.ID] = u
		}
	}
	return Directory{byID: byID}
}

func (d Directory) Lookup(id string) (User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

// Name returns the display name for id, or fallback when the id is unknown
// or the user has no name.
func (d Directory) Name(id, fallback string) string {
	if u, ok := d.byID[id]; ok && strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return fallback
}

func (d Directory) Len() int {
	return len(d.byID)
}
