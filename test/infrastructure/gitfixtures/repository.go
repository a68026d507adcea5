//go:build integration || unit || test

package gitfixtures //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gitv5 "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repository is a throwaway git repository with a worktree, built with go-git.
type Repository struct {
	t    testing.TB
	Path string
	repo *gitv5.Repository
	when time.Time
}

// NewRepository initializes an empty repository on branch main in a temp dir.
func NewRepository(t testing.TB) *Repository {
	t.Helper()

	dir := t.TempDir()
	//nolint:exhaustruct // only the default branch matters here
	repo, err := gitv5.PlainInitWithOptions(dir, &gitv5.PlainInitOptions{
		InitOptions: gitv5.InitOptions{DefaultBranch: plumbing.Main},
	})
	require.NoError(t, err)

	return &Repository{
		t:    t,
		Path: dir,
		repo: repo,
		when: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// URL returns the repository as a file:// URL, which gets cloned instead of
// being opened in place.
func (r *Repository) URL() string {
	return "file://" + filepath.ToSlash(r.Path)
}

// Commit writes files (path -> content), removes the paths listed in remove and
// commits the result. It returns the commit hash.
func (r *Repository) Commit(message string, files map[string]string, remove ...string) string {
	r.t.Helper()

	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)

	for path, content := range files {
		full := filepath.Join(r.Path, filepath.FromSlash(path))
		require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(r.t, os.WriteFile(full, []byte(content), 0o600))
		_, err = worktree.Add(path)
		require.NoError(r.t, err)
	}
	for _, path := range remove {
		_, err = worktree.Remove(path)
		require.NoError(r.t, err)
	}

	r.when = r.when.Add(time.Minute)
	//nolint:exhaustruct // author and empty-commit flag only
	hash, err := worktree.Commit(message, &gitv5.CommitOptions{
		Author:            &object.Signature{Name: "Fixture", Email: "fixture@example.com", When: r.when},
		AllowEmptyCommits: true,
	})
	require.NoError(r.t, err)
	return hash.String()
}

// Tag creates a lightweight tag at HEAD.
func (r *Repository) Tag(name string) {
	r.t.Helper()

	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *Repository) AnnotatedTag(name, message string) {
	r.t.Helper()

	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), &gitv5.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Fixture", Email: "fixture@example.com", When: r.when},
		Message: message,
	})
	require.NoError(r.t, err)
}

// Checkout switches the worktree to branch, creating it from HEAD if needed.
func (r *Repository) Checkout(branch string) {
	r.t.Helper()

	worktree, err := r.repo.Worktree()
	require.NoError(r.t, err)

	name := plumbing.NewBranchReferenceName(branch)
	_, refErr := r.repo.Reference(name, false)
	//nolint:exhaustruct // branch switch only
	err = worktree.Checkout(&gitv5.CheckoutOptions{
		Branch: name,
		Create: refErr != nil,
	})
	require.NoError(r.t, err)
}
