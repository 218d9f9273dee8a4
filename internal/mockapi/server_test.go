package mockapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	if opts.JWTSecret == "" {
		opts.JWTSecret = "test-secret"
	}
	if opts.Users == nil {
		opts.Users = map[string]string{"demo": "demo"}
	}
	opts.BcryptCost = bcrypt.MinCost
	s, err := New(opts)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func login(t *testing.T, ts *httptest.Server, user, pass string) *http.Response {
	t.Helper()
	resp, err := http.PostForm(ts.URL+"/login", url.Values{"username": {user}, "password": {pass}})
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_TokenField(t *testing.T) {
	_, err := New(Options{JWTSecret: "s", TokenField: "jwt"})
	assert.ErrorContains(t, err, "token field")

	s, err := New(Options{JWTSecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, "access_token", s.opts.TokenField)
}

func TestLogin(t *testing.T) {
	_, ts := newTestServer(t, Options{TokenField: "token"})

	resp := login(t, ts, "demo", "demo")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `"token":"`)
	assert.Contains(t, string(b), `"token_type":"bearer"`)

	bad := login(t, ts, "demo", "nope")
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)

	unknown := login(t, ts, "ghost", "demo")
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
}

func TestTodos_RequireBearer(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/todos")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/todos", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	other, _ := newTestServer(t, Options{JWTSecret: "other"})
	token, err := other.issueToken("demo")
	require.NoError(t, err)

	_, ts := newTestServer(t, Options{})
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCRUD(t *testing.T) {
	s, ts := newTestServer(t, Options{})
	token, err := s.issueToken("demo")
	require.NoError(t, err)

	do := func(method, path, body string) *http.Response {
		req, _ := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/todos", `{"title":"Buy milk","date":"2025-03-05"}`).StatusCode)
	assert.Equal(t, http.StatusUnprocessableEntity, do(http.MethodPost, "/todos", `{"date":"2025-03-05"}`).StatusCode)

	todos := s.Todos("demo")
	require.Len(t, todos, 1)
	id := todos[0].ID

	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/todos/"+strconv.Itoa(id), `{"completed":true}`).StatusCode)
	assert.True(t, s.Todos("demo")[0].Completed)
	assert.Equal(t, "Buy milk", s.Todos("demo")[0].Title)

	assert.Equal(t, http.StatusNotFound, do(http.MethodPut, "/todos/999", `{"completed":true}`).StatusCode)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/todos/abc", ``).StatusCode)

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/todos/"+strconv.Itoa(id), ``).StatusCode)
	assert.Empty(t, s.Todos("demo"))
}

func TestList_WrappedAndBare(t *testing.T) {
	for _, wrap := range []bool{true, false} {
		s, ts := newTestServer(t, Options{WrapTodos: wrap})
		s.Seed("demo", "Buy milk", "", false)
		token, err := s.issueToken("demo")
		require.NoError(t, err)

		req, _ := http.NewRequest(http.MethodGet, ts.URL+"/todos", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if wrap {
			assert.True(t, strings.HasPrefix(string(b), `{"todos":[`), string(b))
		} else {
			assert.True(t, strings.HasPrefix(string(b), `[{"id":1`), string(b))
		}
	}
}

func TestTodosAreScopedPerUser(t *testing.T) {
	s, _ := newTestServer(t, Options{Users: map[string]string{"a": "1", "b": "2"}})
	s.Seed("a", "mine", "", false)
	assert.Len(t, s.Todos("a"), 1)
	assert.Empty(t, s.Todos("b"))
}

func TestMetricsAndHealth(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	login(t, ts, "demo", "wrong")

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	m, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer m.Body.Close()
	b, _ := io.ReadAll(m.Body)
	assert.Contains(t, string(b), `todoodoo_mock_http_requests_total{method="POST",route="/login",status="401"} 1`)
}
