package client

import (
	"context"

	"github.com/jakub-gawryl/hrdapi/envelope"
)

// User is a user account record
type User struct {
	ID    string `json:"id"`
	Login string `json:"login,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	// Record is the complete record as returned by the API
	Record envelope.Value `json:"record"`
}

func userFromValue(v envelope.Value) (User, bool) {
	id, ok := textField(v, "id")
	if !ok {
		return User{}, false
	}
	u := User{ID: id, Record: v}
	u.Login, _ = textField(v, "login")
	u.Name, _ = textField(v, "name")
	u.Email, _ = textField(v, "email")
	return u, true
}

// UserCreate creates a user account from fields and returns its id.
// Field names and values are passed through to the API as given.
func (c *Client) UserCreate(ctx context.Context, fields ...envelope.Field) (string, error) {
	reply, err := c.call(ctx, "user", "create", envelope.Map(fields...))
	if err != nil {
		return "", err
	}
	if id, ok := textField(reply, "id"); ok {
		return id, nil
	}
	if id, ok := textField(reply, "user", "id"); ok {
		return id, nil
	}
	return "", narrowError("user/create", reply, "reply has no user id")
}

// UserUpdate updates the fields of the user account id
func (c *Client) UserUpdate(ctx context.Context, id string, fields ...envelope.Field) error {
	params := append([]envelope.Field{envelope.F("id", envelope.Text(id))}, fields...)
	reply, err := c.call(ctx, "user", "update", envelope.Map(params...))
	if err != nil {
		return err
	}
	if _, ok := textField(reply, "message"); ok {
		return narrowError("user/update", reply, "update rejected")
	}
	return nil
}

// UserInfo returns the user account id
func (c *Client) UserInfo(ctx context.Context, id string) (User, error) {
	reply, err := c.call(ctx, "user", "info", envelope.Map(envelope.F("id", envelope.Text(id))))
	if err != nil {
		return User{}, err
	}
	rec, _ := reply.Field("user")
	u, ok := userFromValue(rec)
	if !ok {
		return User{}, narrowError("user/info", reply, "reply has no user record")
	}
	return u, nil
}

// UserList returns the partner's user accounts
func (c *Client) UserList(ctx context.Context) ([]User, error) {
	reply, err := c.call(ctx, "user", "list", envelope.Null())
	if err != nil {
		return nil, err
	}
	users, ok := reply.Field("users")
	if !ok {
		return nil, narrowError("user/list", reply, "reply has no users element")
	}
	recs, _ := users.Field("user")
	out := make([]User, 0, len(recs.Items()))
	for _, rec := range recs.Items() {
		u, ok := userFromValue(rec)
		if !ok {
			return nil, narrowError("user/list", reply, "user record without id")
		}
		out = append(out, u)
	}
	return out, nil
}
