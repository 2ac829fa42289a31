// Package harbortest provides an in-memory Harbor v2.0 catalog API for tests.
package harbortest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devantler-tech/harborsync/pkg/apis/sync/v1alpha1"
	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/registry"
)

// Server is a fake Harbor registry backed by maps.
type Server struct {
	*httptest.Server

	// Username and Password, when set, are required as basic auth on every request.
	Username string
	Password string

	mu           sync.Mutex
	projects     []string
	repositories map[string][]harbor.Repository
	artifacts    map[string][]harbor.Artifact
	failures     map[string]int
	requests     []string
}

// NewServer starts a server that is closed when the test ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	server := &Server{
		repositories: map[string][]harbor.Repository{},
		artifacts:    map[string][]harbor.Artifact{},
		failures:     map[string]int{},
	}
	server.Server = httptest.NewServer(http.HandlerFunc(server.serveHTTP))
	tb.Cleanup(server.Close)

	return server
}

// Endpoint returns an endpoint configuration pointing at the server.
func (s *Server) Endpoint() v1alpha1.Endpoint {
	return v1alpha1.Endpoint{URL: s.URL, Username: s.Username, Password: s.Password}
}

// Host returns the server host:port.
func (s *Server) Host() string {
	return strings.TrimPrefix(s.URL, "http://")
}

// AddProject registers a project. Projects are listed in insertion order.
func (s *Server) AddProject(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.projects, name) {
		s.projects = append(s.projects, name)
	}
}

// AddRepository registers a repository; the stored name carries the project prefix like
// Harbor's own responses do.
func (s *Server) AddRepository(project, name string, updated time.Time) {
	s.AddProject(project)

	s.mu.Lock()
	defer s.mu.Unlock()

	ref := registry.NewRepositoryReference(project, name)
	s.repositories[project] = append(s.repositories[project], harbor.Repository{
		Name:       project + "/" + ref.SourceName(),
		UpdateTime: harbor.Timestamp{Time: updated},
	})
}

// AddArtifact registers an artifact, creating the repository when needed.
func (s *Server) AddArtifact(project, repository string, artifact harbor.Artifact) {
	key := registry.NewRepositoryReference(project, repository).Path()

	if !s.hasRepository(key) {
		s.AddRepository(project, repository, artifact.PushTime.Time)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.artifacts[key] = append(s.artifacts[key], artifact)
}

// AddTag registers a single-tag artifact pushed now.
func (s *Server) AddTag(project, repository, tag string) {
	s.AddArtifact(project, repository, harbor.Artifact{
		Digest:   "sha256:" + tag,
		PushTime: harbor.Timestamp{Time: time.Now().UTC()},
		Tags:     []harbor.Tag{{Name: tag}},
	})
}

// FailPath makes requests whose path (below /api/v2.0) equals path answer with status.
// Query parameters are matched too when path contains "?".
func (s *Server) FailPath(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[path] = status
}

// Requests returns the request paths (below /api/v2.0) with their query, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// CountRequests returns how many requests had exactly the given path.
func (s *Server) CountRequests(path string) int {
	count := 0

	for _, request := range s.Requests() {
		requestPath, _, _ := strings.Cut(request, "?")
		if requestPath == path {
			count++
		}
	}

	return count
}

func (s *Server) hasRepository(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, repos := range s.repositories {
		for _, repo := range repos {
			if strings.EqualFold(repo.Name, key) {
				return true
			}
		}
	}

	return false
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, v1alpha1.APIBasePath)

	s.mu.Lock()
	s.requests = append(s.requests, path+"?"+r.URL.RawQuery)
	status, failPath := s.failures[path]
	statusQuery, failQuery := s.failures[path+"?"+r.URL.RawQuery]
	s.mu.Unlock()

	if s.Username != "" || s.Password != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			http.Error(w, `{"errors":[{"code":"UNAUTHORIZED"}]}`, http.StatusUnauthorized)

			return
		}
	}

	switch {
	case failQuery:
		http.Error(w, "injected failure", statusQuery)
	case failPath:
		http.Error(w, "injected failure", status)
	case path == "/projects":
		s.listProjects(w, r)
	case strings.HasPrefix(path, "/projects/"):
		s.serveProject(w, r, strings.TrimPrefix(path, "/projects/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveProject(w http.ResponseWriter, r *http.Request, rest string) {
	project, rest, _ := strings.Cut(rest, "/")

	if rest == "repositories" {
		s.mu.Lock()
		repos := slices.Clone(s.repositories[project])
		s.mu.Unlock()

		writePage(w, r, repos)

		return
	}

	repository, found := strings.CutPrefix(rest, "repositories/")
	if !found {
		http.NotFound(w, r)

		return
	}

	if name, ok := strings.CutSuffix(repository, "/artifacts"); ok {
		writePage(w, r, s.artifactsOf(project, name))

		return
	}

	if idx := strings.LastIndex(repository, "/artifacts/"); idx >= 0 {
		s.serveTag(w, r, project, repository[:idx], repository[idx+len("/artifacts/"):])

		return
	}

	if s.hasRepository(registry.NewRepositoryReference(project, repository).Path()) {
		writeJSON(w, harbor.Repository{Name: project + "/" + repository})

		return
	}

	http.NotFound(w, r)
}

func (s *Server) serveTag(w http.ResponseWriter, r *http.Request, project, repository, tag string) {
	for _, artifact := range s.artifactsOf(project, repository) {
		if slices.Contains(artifact.TagNames(), tag) {
			writeJSON(w, artifact)

			return
		}
	}

	http.NotFound(w, r)
}

func (s *Server) artifactsOf(project, repository string) []harbor.Artifact {
	key := registry.NewRepositoryReference(project, repository).Path()

	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.artifacts[key])
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	projects := make([]harbor.Project, 0, len(s.projects))

	for idx, name := range s.projects {
		projects = append(projects, harbor.Project{ProjectID: int64(idx + 1), Name: name})
	}
	s.mu.Unlock()

	writePage(w, r, projects)
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = 10
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))

	if start == end {
		writeJSON(w, []T{})

		return
	}

	writeJSON(w, items[start:end])
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
