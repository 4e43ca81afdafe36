// Package apitest provides an in-memory issue service for tests.
package apitest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"civiceye/internal/domain"
)

// Route names accepted by Fail.
const (
	RouteHealth         = "health"
	RouteListIssues     = "list"
	RouteListResolved   = "resolved"
	RouteListUnresolved = "unresolved"
	RouteCreateIssue    = "create"
	RouteResolveIssue   = "resolve"
	RouteStorageTest    = "storage"
)

// Request records one request the server handled.
type Request struct {
	Route     string
	Method    string
	Path      string
	RequestID string
	UserAgent string
	Fields    map[string]string
	ImageName string
	ImageType string
	ImageSize int64
}

type failure struct {
	status  int
	message string
	delay   time.Duration
}

// Server is a fake issue service rooted at /api.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	issues   []domain.Issue
	requests []Request
	failures map[string]failure
	nextID   int
	now      func() time.Time
}

// NewServer starts a fake service seeded with issues. Close it when done.
func NewServer(seed ...domain.Issue) *Server {
	s := &Server{
		issues:   append([]domain.Issue(nil), seed...),
		failures: map[string]failure{},
		nextID:   len(seed) + 1,
		now:      time.Now,
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// BaseURL returns the API root, e.g. http://127.0.0.1:1234/api.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Fail makes route respond with status and an optional JSON message until cleared.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Delay makes route sleep before answering.
func (s *Server) Delay(route string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.failures[route]
	f.delay = d
	s.failures[route] = f
}

// Clear removes injected failures and delays for route.
func (s *Server) Clear(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Issues returns a copy of the stored issues.
func (s *Server) Issues() []domain.Issue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Issue(nil), s.issues...)
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit route.
func (s *Server) Count(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", s.wrap(RouteHealth, s.handleHealth)).Methods(http.MethodGet)
	api.HandleFunc("/issues", s.wrap(RouteListIssues, s.handleList(nil))).Methods(http.MethodGet)
	api.HandleFunc("/issues/resolved", s.wrap(RouteListResolved, s.handleList(boolPtr(true)))).Methods(http.MethodGet)
	api.HandleFunc("/issues/unresolved", s.wrap(RouteListUnresolved, s.handleList(boolPtr(false)))).Methods(http.MethodGet)
	api.HandleFunc("/issues", s.wrap(RouteCreateIssue, s.handleCreate)).Methods(http.MethodPost)
	api.HandleFunc("/issues/{id}/resolve", s.wrap(RouteResolveIssue, s.handleResolve)).Methods(http.MethodPatch)
	api.HandleFunc("/cloudinary/test", s.wrap(RouteStorageTest, s.handleStorage)).Methods(http.MethodGet)
	return r
}

func (s *Server) wrap(route string, next func(http.ResponseWriter, *http.Request, *Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := Request{
			Route:     route,
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
		}

		s.mu.Lock()
		f, failing := s.failures[route]
		s.mu.Unlock()
		if f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-r.Context().Done():
			}
		}

		if failing && f.status != 0 {
			s.record(rec)
			if f.message == "" {
				w.WriteHeader(f.status)
				return
			}
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next(w, r, &rec)
		s.record(rec)
	}
}

func (s *Server) record(rec Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ *Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CivicEye API is running"})
}

func (s *Server) handleStorage(w http.ResponseWriter, _ *http.Request, _ *Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Cloudinary connected", "status": "ok"})
}

func (s *Server) handleList(resolved *bool) func(http.ResponseWriter, *http.Request, *Request) {
	return func(w http.ResponseWriter, _ *http.Request, _ *Request) {
		s.mu.Lock()
		out := make([]domain.Issue, 0, len(s.issues))
		for _, issue := range s.issues {
			if resolved == nil || issue.Resolved == *resolved {
				out = append(out, issue)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, rec *Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid form data"})
		return
	}
	rec.Fields = map[string]string{}
	for _, key := range []string{"title", "description", "location"} {
		rec.Fields[key] = r.FormValue(key)
	}
	if file, header, err := r.FormFile("image"); err == nil {
		n, _ := io.Copy(io.Discard, file)
		_ = file.Close()
		rec.ImageName = header.Filename
		rec.ImageType = header.Header.Get("Content-Type")
		rec.ImageSize = n
	}

	if strings.TrimSpace(rec.Fields["title"]) == "" || strings.TrimSpace(rec.Fields["description"]) == "" || strings.TrimSpace(rec.Fields["location"]) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title, description and location are required"})
		return
	}

	s.mu.Lock()
	issue := domain.Issue{
		ID:          "issue-" + strconv.Itoa(s.nextID),
		Title:       rec.Fields["title"],
		Description: rec.Fields["description"],
		Location:    rec.Fields["location"],
		CreatedAt:   s.now().UTC(),
	}
	if rec.ImageName != "" {
		issue.Image = fmt.Sprintf("https://res.cloudinary.test/%s", rec.ImageName)
	}
	s.nextID++
	// Newest first, matching the backend's default sort.
	s.issues = append([]domain.Issue{issue}, s.issues...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, issue)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request, _ *Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues[i].Resolved = true
			writeJSON(w, http.StatusOK, s.issues[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Issue not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func boolPtr(b bool) *bool { return &b }
