//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// StubRepositoryClient implements repositories.RepositoryClient over files
// kept in memory per commit. Commits are served by Refresh in order; the last
// one sticks.
type StubRepositoryClient struct {
	// Commits is the sequence returned by successive Refresh calls.
	Commits []string
	// Files maps commit -> path -> content.
	Files map[string]map[string]string

	RefreshErr error
	ReadErr    error

	mu          sync.Mutex
	refreshes   int
	reads       int
	readPaths   []string
	listedDirs  []string
	RefreshHook func() // called inside Refresh, before returning
}

var _ repositories.RepositoryClient = (*StubRepositoryClient)(nil)

// NewStubRepositoryClient creates a client serving files at a single commit.
func NewStubRepositoryClient(commit string, files map[string]string) *StubRepositoryClient {
	return &StubRepositoryClient{
		Commits: []string{commit},
		Files:   map[string]map[string]string{commit: files},
	}
}

// AddCommit appends a commit that later refreshes will move to.
func (s *StubRepositoryClient) AddCommit(commit string, files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Commits = append(s.Commits, commit)
	s.Files[commit] = files
}

// FailRefresh makes subsequent refreshes fail with err (nil clears it).
func (s *StubRepositoryClient) FailRefresh(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RefreshErr = err
}

func (s *StubRepositoryClient) Refresh(_ context.Context) (string, error) {
	s.mu.Lock()
	hook := s.RefreshHook
	s.refreshes++
	refreshErr := s.RefreshErr
	index := min(s.refreshes, len(s.Commits)) - 1
	var commit string
	if index >= 0 {
		commit = s.Commits[index]
	}
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if refreshErr != nil {
		return "", refreshErr
	}
	if commit == "" {
		return "", fmt.Errorf("%w: no commits", entities.ErrRefNotFound)
	}
	return commit, nil
}

func (s *StubRepositoryClient) ReadFile(_ context.Context, commit, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	s.readPaths = append(s.readPaths, path)

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	content, ok := s.Files[commit][path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, path)
	}
	return []byte(content), nil
}

func (s *StubRepositoryClient) ListFiles(_ context.Context, commit, dir string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listedDirs = append(s.listedDirs, dir)

	prefix := strings.Trim(dir, "/")
	if prefix != "" {
		prefix += "/"
	}
	var result []string
	for path := range s.Files[commit] {
		if strings.HasPrefix(path, prefix) {
			result = append(result, strings.TrimPrefix(path, prefix))
		}
	}
	if prefix != "" && len(result) == 0 {
		return nil, fmt.Errorf("%w: directory %s", entities.ErrFileNotFound, dir)
	}
	sort.Strings(result)
	return result, nil
}

// RefreshCallCount returns how many times Refresh was called.
func (s *StubRepositoryClient) RefreshCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

// ReadCallCount returns how many times ReadFile was called.
func (s *StubRepositoryClient) ReadCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// ReadPaths returns the paths passed to ReadFile, in call order.
func (s *StubRepositoryClient) ReadPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.readPaths...)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
