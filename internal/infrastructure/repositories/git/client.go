package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cenkalti/backoff/v5"
	gitv5 "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

const (
	remoteName           = "origin"
	defaultFetchAttempts = 3
)

// fetchRefSpecs mirror branches and tags into the bare clone, so branch names
// resolve the same way they do in the remote.
var fetchRefSpecs = []config.RefSpec{ //nolint:gochecknoglobals // fixed refspecs
	"+refs/heads/*:refs/heads/*",
	"+refs/tags/*:refs/tags/*",
}

// Client implements repositories.RepositoryClient with go-git. Remote
// locations are cloned bare into a CloneCache; local paths are opened in place.
type Client struct {
	ref           entities.RepositoryReference
	cache         *CloneCache
	auth          transport.AuthMethod
	fetchAttempts uint
}

var _ repositories.RepositoryClient = (*Client)(nil)

// NewClient creates a client for ref. auth may be nil for anonymous access.
func NewClient(ref entities.RepositoryReference, cache *CloneCache, auth transport.AuthMethod) *Client {
	return &Client{
		ref:           ref,
		cache:         cache,
		auth:          auth,
		fetchAttempts: defaultFetchAttempts,
	}
}

// Refresh fetches the remote (or re-reads a local repository) and resolves
// the reference to a commit hash.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var commit string
	err := c.withRepository(ctx, true, func(repo *gitv5.Repository) error {
		hash, resolveErr := resolveCommit(repo, c.ref)
		if resolveErr != nil {
			return resolveErr
		}
		commit = hash
		return nil
	})
	if err != nil {
		return "", err
	}
	return commit, nil
}

// ReadFile returns the content of path at commit.
func (c *Client) ReadFile(ctx context.Context, commit, path string) ([]byte, error) {
	var content []byte
	err := c.withRepository(ctx, false, func(repo *gitv5.Repository) error {
		commitObj, commitErr := commitObject(repo, commit)
		if commitErr != nil {
			return commitErr
		}

		file, fileErr := commitObj.File(strings.TrimPrefix(path, "/"))
		if errors.Is(fileErr, object.ErrFileNotFound) {
			return fmt.Errorf("%w: %q at %s", entities.ErrFileNotFound, path, shortHash(commit))
		}
		if fileErr != nil {
			return fmt.Errorf("failed to read %q at %s: %w", path, shortHash(commit), fileErr)
		}

		text, contentErr := file.Contents()
		if contentErr != nil {
			return fmt.Errorf("failed to read %q at %s: %w", path, shortHash(commit), contentErr)
		}
		content = []byte(text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// ListFiles returns the paths of the files below dir at commit, relative to dir.
func (c *Client) ListFiles(ctx context.Context, commit, dir string) ([]string, error) {
	var paths []string
	err := c.withRepository(ctx, false, func(repo *gitv5.Repository) error {
		commitObj, commitErr := commitObject(repo, commit)
		if commitErr != nil {
			return commitErr
		}

		tree, treeErr := commitObj.Tree()
		if treeErr != nil {
			return fmt.Errorf("failed to read tree at %s: %w", shortHash(commit), treeErr)
		}

		dir = strings.Trim(dir, "/")
		if dir != "" {
			tree, treeErr = tree.Tree(dir)
			if errors.Is(treeErr, object.ErrDirectoryNotFound) {
				return fmt.Errorf("%w: directory %q at %s", entities.ErrFileNotFound, dir, shortHash(commit))
			}
			if treeErr != nil {
				return fmt.Errorf("failed to read directory %q at %s: %w", dir, shortHash(commit), treeErr)
			}
		}

		return tree.Files().ForEach(func(file *object.File) error {
			paths = append(paths, file.Name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// withRepository runs fn against the repository. For remote locations the
// clone is held exclusively and, when fetch is set, updated first.
func (c *Client) withRepository(
	ctx context.Context,
	fetch bool,
	fn func(repo *gitv5.Repository) error,
) error {
	if c.ref.IsLocalPath() {
		repo, err := gitv5.PlainOpenWithOptions(c.ref.Location(), &gitv5.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return fmt.Errorf("%w: %q: %w", entities.ErrRepositoryUnreachable, c.ref.Location(), err)
		}
		return fn(repo)
	}

	return c.cache.Use(ctx, c.ref.Location(), func(repo *gitv5.Repository) error {
		if fetch {
			if err := c.fetch(ctx, repo); err != nil {
				return err
			}
		}
		return fn(repo)
	})
}

func (c *Client) fetch(ctx context.Context, repo *gitv5.Repository) error {
	remote, err := c.ensureRemote(repo)
	if err != nil {
		return err
	}

	logger.Infof("Fetching %q", c.ref.Location())
	operation := func() (struct{}, error) {
		fetchErr := remote.FetchContext(ctx, &gitv5.FetchOptions{
			RemoteName: remoteName,
			RefSpecs:   fetchRefSpecs,
			Auth:       c.auth,
			Tags:       gitv5.NoTags,
			Force:      true,
			Prune:      true,
		})
		if fetchErr == nil || errors.Is(fetchErr, gitv5.NoErrAlreadyUpToDate) {
			return struct{}{}, nil
		}

		classified, retryable := classifyTransportError(c.ref.Location(), fetchErr)
		if !retryable {
			return struct{}{}, backoff.Permanent(classified)
		}
		logger.Warnf("Fetch of %q failed, retrying: %v", c.ref.Location(), fetchErr)
		return struct{}{}, classified
	}

	if _, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.fetchAttempts),
	); err != nil {
		return err
	}

	if c.ref.Kind() == entities.RefKindAuto && c.ref.Ref() == "" {
		return c.syncHead(ctx, repo, remote)
	}
	return nil
}

func (c *Client) ensureRemote(repo *gitv5.Repository) (*gitv5.Remote, error) {
	remote, err := repo.Remote(remoteName)
	if err == nil {
		return remote, nil
	}
	if !errors.Is(err, gitv5.ErrRemoteNotFound) {
		return nil, fmt.Errorf("failed to read remote of clone: %w", err)
	}

	remote, err = repo.CreateRemote(&config.RemoteConfig{
		Name:  remoteName,
		URLs:  []string{c.ref.Location()},
		Fetch: fetchRefSpecs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure remote %q: %w", c.ref.Location(), err)
	}
	return remote, nil
}

// syncHead points the clone's HEAD at the remote's default branch.
func (c *Client) syncHead(ctx context.Context, repo *gitv5.Repository, remote *gitv5.Remote) error {
	refs, err := remote.ListContext(ctx, &gitv5.ListOptions{Auth: c.auth})
	if err != nil {
		classified, _ := classifyTransportError(c.ref.Location(), err)
		return classified
	}

	for _, ref := range refs {
		if ref.Name() != plumbing.HEAD {
			continue
		}
		if setErr := repo.Storer.SetReference(ref); setErr != nil {
			return fmt.Errorf("failed to update HEAD of clone: %w", setErr)
		}
		return nil
	}

	return fmt.Errorf("%w: remote %q does not advertise HEAD", entities.ErrRefNotFound, c.ref.Location())
}

// resolveCommit resolves the reference to a commit hash, peeling annotated tags.
func resolveCommit(repo *gitv5.Repository, ref entities.RepositoryReference) (string, error) {
	revision := ref.Revision()
	if ref.Kind() == entities.RefKindLatestTag {
		tag, err := latestTag(repo, ref.Ref())
		if err != nil {
			return "", err
		}
		revision = plumbing.NewTagReferenceName(tag).String()
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", entities.ErrRefNotFound, revision, err)
	}
	return hash.String(), nil
}

// latestTag returns the highest semantic-version tag starting with prefix. The
// version is whatever follows the prefix, with or without a leading v.
func latestTag(repo *gitv5.Repository, prefix string) (string, error) {
	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	best, bestVersion := "", ""
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		version := normalizeVersion(strings.TrimPrefix(name, prefix))
		if !semver.IsValid(version) {
			return nil
		}
		if best == "" || semver.Compare(version, bestVersion) > 0 {
			best, bestVersion = name, version
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	if best == "" {
		return "", fmt.Errorf("%w: no semantic version tag with prefix %q", entities.ErrRefNotFound, prefix)
	}
	return best, nil
}

func commitObject(repo *gitv5.Repository, commit string) (*object.Commit, error) {
	commitObj, err := repo.CommitObject(plumbing.NewHash(commit))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %s: %w", entities.ErrRefNotFound, shortHash(commit), err)
	}
	return commitObj, nil
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility.
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

func shortHash(commit string) string {
	const shortLen = 8
	if len(commit) > shortLen {
		return commit[:shortLen]
	}
	return commit
}
