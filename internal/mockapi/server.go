// Package mockapi is an in-memory stand-in for the todoodoo service. It
// speaks the same five endpoints so the client can be exercised end to end
// in tests and local development. Nothing is persisted.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	JWTSecret string
	// Users maps username to plaintext password; hashed on New.
	Users map[string]string
	// WrapTodos answers GET /todos with {"todos": [...]} instead of a bare array.
	WrapTodos bool
	// TokenField is the login response field carrying the token:
	// "access_token" (default) or "token".
	TokenField string
	TokenTTL   time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	Logger     zerolog.Logger
}

// Todo is the server-side record.
type Todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type Server struct {
	opts   Options
	secret []byte
	users  map[string][]byte

	mu     sync.Mutex
	nextID int
	todos  map[string]map[int]Todo

	reg     *prometheus.Registry
	metrics *metrics
	router  *mux.Router
}

func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, fmt.Errorf("mockapi: empty jwt secret")
	}
	switch opts.TokenField {
	case "":
		opts.TokenField = "access_token"
	case "access_token", "token":
	default:
		return nil, fmt.Errorf("mockapi: token field must be access_token or token, got %q", opts.TokenField)
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	s := &Server{
		opts:   opts,
		secret: []byte(opts.JWTSecret),
		users:  make(map[string][]byte, len(opts.Users)),
		todos:  map[string]map[int]Todo{},
		reg:    prometheus.NewRegistry(),
	}
	for name, pw := range opts.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), opts.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("mockapi: hash password for %s: %w", name, err)
		}
		s.users[name] = hash
	}
	s.metrics = newMetrics(s.reg)
	s.router = s.routes()
	return s, nil
}

// Handler serves the API.
func (s *Server) Handler() http.Handler { return s.router }

// Seed adds a todo for username and returns its id.
func (s *Server) Seed(username, title, date string, completed bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(username, Todo{Title: title, Date: date, Completed: completed})
}

// Todos returns username's todos ordered by id.
func (s *Server) Todos(username string) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(username)
}

func (s *Server) insertLocked(username string, t Todo) int {
	s.nextID++
	t.ID = s.nextID
	if s.todos[username] == nil {
		s.todos[username] = map[int]Todo{}
	}
	s.todos[username][t.ID] = t
	return t.ID
}

func (s *Server) listLocked(username string) []Todo {
	out := make([]Todo, 0, len(s.todos[username]))
	for _, t := range s.todos[username] {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	s.mu.Lock()
	todos := s.listLocked(user)
	s.mu.Unlock()

	if s.opts.WrapTodos {
		writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

type createRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	user := userFrom(r.Context())
	s.mu.Lock()
	id := s.insertLocked(user, Todo{Title: req.Title, Date: req.Date})
	t := s.todos[user][id]
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

type updateRequest struct {
	Completed *bool   `json:"completed"`
	Title     *string `json:"title"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}

	user := userFrom(r.Context())
	s.mu.Lock()
	t, found := s.todos[user][id]
	if found {
		if req.Completed != nil {
			t.Completed = *req.Completed
		}
		if req.Title != nil {
			t.Title = *req.Title
		}
		s.todos[user][id] = t
	}
	s.mu.Unlock()

	if !found {
		writeDetail(w, http.StatusNotFound, "todo not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	user := userFrom(r.Context())
	s.mu.Lock()
	_, found := s.todos[user][id]
	delete(s.todos[user], id)
	s.mu.Unlock()

	if !found {
		writeDetail(w, http.StatusNotFound, "todo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func todoID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeDetail(w, http.StatusNotFound, "todo not found")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
