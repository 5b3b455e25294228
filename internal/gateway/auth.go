package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	userdomain "github.com/taskpilot/taskpilot-web/internal/users/domain"
)

// Credentials are posted to auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is what auth/login returns on success.
type Identity struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  userdomain.Role `json:"role"`
	Token string          `json:"token"`
}

func (i *Identity) UnmarshalJSON(b []byte) error {
	type alias Identity
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.MongoID != "" {
		i.ID = aux.MongoID
	}
	return nil
}

// Login exchanges credentials for an identity and bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Identity, error) {
	var id Identity
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "auth/login",
		body:   creds,
		out:    &id,
	})
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Register creates an account. The API signals success with the HTTP status
// alone, so isSuccess is not consulted.
func (c *Client) Register(ctx context.Context, reg userdomain.Registration) error {
	return c.do(ctx, call{
		op:      "register",
		method:  http.MethodPost,
		path:    "users/register",
		body:    reg,
		lenient: true,
	})
}
