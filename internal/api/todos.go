package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/idilsaglam/todoodoo/internal/model"
)

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login posts form-encoded credentials and returns the bearer token from
// either the token or the access_token field.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	hdr := http.Header{}
	hdr.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp loginResponse
	if err := c.Request(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()), hdr, "", &resp); err != nil {
		return "", err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("%w: login response carries no token", ErrRequestFailed)
	}
	return token, nil
}

// ListTodos fetches the collection. The service may answer with a bare
// array or with {"todos": [...]}.
func (c *Client) ListTodos(ctx context.Context, token string) ([]model.Todo, error) {
	var raw json.RawMessage
	if err := c.Request(ctx, http.MethodGet, "/todos", nil, nil, token, &raw); err != nil {
		return nil, err
	}
	todos, err := decodeTodos(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode GET /todos: %w", ErrRequestFailed, err)
	}
	return todos, nil
}

func decodeTodos(raw json.RawMessage) ([]model.Todo, error) {
	raw = bytes.TrimSpace(raw)
	todos := []model.Todo{}
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return todos, nil
	case raw[0] == '[':
		if err := json.Unmarshal(raw, &todos); err != nil {
			return nil, err
		}
	default:
		var wrapped struct {
			Todos []model.Todo `json:"todos"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Todos != nil {
			todos = wrapped.Todos
		}
	}
	return todos, nil
}

type createRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// CreateTodo posts a new todo. The created entity is not read back; the
// caller re-fetches.
func (c *Client) CreateTodo(ctx context.Context, token, title, date string) error {
	body, err := jsonBody(createRequest{Title: title, Date: date})
	if err != nil {
		return err
	}
	return c.Request(ctx, http.MethodPost, "/todos", body, nil, token, nil)
}

type updateRequest struct {
	Completed bool `json:"completed"`
}

func (c *Client) UpdateTodo(ctx context.Context, token string, id model.ID, completed bool) error {
	body, err := jsonBody(updateRequest{Completed: completed})
	if err != nil {
		return err
	}
	return c.Request(ctx, http.MethodPut, todoPath(id), body, nil, token, nil)
}

func (c *Client) DeleteTodo(ctx context.Context, token string, id model.ID) error {
	return c.Request(ctx, http.MethodDelete, todoPath(id), nil, nil, token, nil)
}

func todoPath(id model.ID) string {
	return "/todos/" + url.PathEscape(id.String())
}
