package git

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gitv5 "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/gofrs/flock"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

const (
	cacheDirPerm   = 0o750
	lockRetryDelay = 50 * time.Millisecond
	cacheKeyLength = 16
)

// CloneCache owns the local clones of remote repositories. Every operation on
// a clone runs inside Use, which holds an in-process mutex and a file lock on
// that clone for the duration of the call. An empty dir keeps clones in memory.
type CloneCache struct {
	dir string

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	memory map[string]*gitv5.Repository
}

// NewCloneCache creates a cache rooted at dir. entities.MemoryCacheDir or an
// empty dir selects in-memory storage.
func NewCloneCache(dir string) (*CloneCache, error) {
	if dir == entities.MemoryCacheDir {
		dir = ""
	}
	if dir != "" {
		if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
			return nil, fmt.Errorf("failed to create clone cache dir %q: %w", dir, err)
		}
	}
	return &CloneCache{
		dir:    dir,
		locks:  make(map[string]*sync.Mutex),
		memory: make(map[string]*gitv5.Repository),
	}, nil
}

// path returns the clone directory of location, empty for in-memory caches.
func (c *CloneCache) path(location string) string {
	if c.dir == "" {
		return ""
	}
	return filepath.Join(c.dir, cacheKey(location))
}

// Use runs fn with exclusive access to the bare clone of location, creating
// an empty one first if needed.
func (c *CloneCache) Use(
	ctx context.Context,
	location string,
	fn func(repo *gitv5.Repository) error,
) error {
	key := cacheKey(location)

	lock := c.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	if c.dir == "" {
		repo, err := c.memoryRepository(key)
		if err != nil {
			return err
		}
		return fn(repo)
	}

	fileLock := flock.New(filepath.Join(c.dir, key+".lock"))
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock clone of %q: %w", location, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock clone of %q: %w", location, ctx.Err())
	}
	defer func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil {
			logger.Warnf("Failed to unlock clone of %q: %v", location, unlockErr)
		}
	}()

	repo, err := c.diskRepository(c.path(location))
	if err != nil {
		return err
	}
	return fn(repo)
}

func (c *CloneCache) lockFor(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}
	return lock
}

// memoryRepository is called with the clone lock held.
func (c *CloneCache) memoryRepository(key string) (*gitv5.Repository, error) {
	c.mu.Lock()
	repo, ok := c.memory[key]
	c.mu.Unlock()
	if ok {
		return repo, nil
	}

	repo, err := gitv5.Init(memory.NewStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory clone: %w", err)
	}

	c.mu.Lock()
	c.memory[key] = repo
	c.mu.Unlock()
	return repo, nil
}

func (c *CloneCache) diskRepository(path string) (*gitv5.Repository, error) {
	repo, err := gitv5.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, gitv5.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("failed to open clone %q: %w", path, err)
	}

	logger.Debugf("Initializing clone at %q", path)
	repo, err = gitv5.PlainInit(path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize clone %q: %w", path, err)
	}
	return repo, nil
}

func cacheKey(location string) string {
	sum := sha256.Sum256([]byte(location))
	return hex.EncodeToString(sum[:])[:cacheKeyLength]
}
