package repositories

import (
	"context"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// RepositoryClient abstracts the version-control library for a single
// repository reference. Reads are addressed by commit, so they stay consistent
// while the ref moves on.
type RepositoryClient interface {
	// Refresh materializes (clone or fetch) the repository and resolves the
	// reference to a commit hash.
	Refresh(ctx context.Context) (string, error)

	// ReadFile returns the content of path at commit.
	ReadFile(ctx context.Context, commit, path string) ([]byte, error)

	// ListFiles returns the file paths below dir at commit ("" is the root).
	ListFiles(ctx context.Context, commit, dir string) ([]string, error)
}

// RepositoryClientFactory creates a client for a reference.
type RepositoryClientFactory interface {
	NewClient(ref entities.RepositoryReference) (RepositoryClient, error)
}
