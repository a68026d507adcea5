package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

const refreshFlightKey = "refresh"

// snapshot holds what a PropertySource knows about one commit. For structured
// formats a failure to read or parse the file is kept in err and reported for
// every key until the next refresh.
type snapshot struct {
	commit     string
	fetchedAt  time.Time
	properties map[string]string
	err        error
}

// PropertySource resolves keys from a file in a git repository. It
// materializes the repository lazily on the first lookup and then follows
// the configured refresh policy.
type PropertySource struct {
	source entities.PropertySource
	client repositories.RepositoryClient
	parser repositories.FormatParser // nil for entities.FormatPlain
	now    func() time.Time

	mu      sync.RWMutex
	current *snapshot
	flight  singleflight.Group
}

var (
	_ repositories.Resolver       = (*PropertySource)(nil)
	_ repositories.Refresher      = (*PropertySource)(nil)
	_ repositories.PropertyLister = (*PropertySource)(nil)
)

// NewPropertySource creates a PropertySource. parser must be set for
// structured formats and is ignored for entities.FormatPlain.
func NewPropertySource(
	source entities.PropertySource,
	client repositories.RepositoryClient,
	parser repositories.FormatParser,
) (*PropertySource, error) {
	if source.Format.IsStructured() && parser == nil {
		return nil, fmt.Errorf("source %q: no parser for format %s", source.Name, source.Format)
	}
	return &PropertySource{
		source: source,
		client: client,
		parser: parser,
		now:    time.Now,
	}, nil
}

func (s *PropertySource) Name() string { return s.source.Name }

// Resolve returns the value of key at the current snapshot.
func (s *PropertySource) Resolve(ctx context.Context, key string) (string, bool, error) {
	value, found, err := s.resolve(ctx, key)
	if err != nil && s.source.Optional && isMissing(err) {
		logger.Debugf("Optional source %q skipped for %q: %v", s.source.Name, key, err)
		return "", false, nil
	}
	return value, found, err
}

func (s *PropertySource) resolve(ctx context.Context, key string) (string, bool, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return "", false, err
	}

	if s.source.Format.IsStructured() {
		if snap.err != nil {
			return "", false, snap.err
		}
		value, found := snap.properties[key]
		logger.Debugf("Source %q lookup %q at %s: found=%t", s.source.Name, key, shortHash(snap.commit), found)
		return value, found, nil
	}

	path, ok := s.source.KeyPath(key)
	if !ok {
		return "", false, nil
	}
	content, err := s.client.ReadFile(ctx, snap.commit, path)
	if errors.Is(err, entities.ErrFileNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, s.wrap(err)
	}
	return string(content), true, nil
}

// Refresh fetches the repository and swaps in a snapshot of the new commit.
func (s *PropertySource) Refresh(ctx context.Context) (entities.Revision, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return entities.Revision{}, err
	}
	return entities.Revision{
		Source:    s.source.Name,
		Commit:    snap.commit,
		FetchedAt: snap.fetchedAt,
	}, nil
}

// Properties returns every property at the current snapshot, sorted by key.
// An optional source whose ref or file is missing has no properties.
func (s *PropertySource) Properties(ctx context.Context) ([]entities.Property, error) {
	properties, err := s.properties(ctx)
	if err != nil && s.source.Optional && isMissing(err) {
		logger.Debugf("Optional source %q skipped for listing: %v", s.source.Name, err)
		return nil, nil
	}
	return properties, err
}

func (s *PropertySource) properties(ctx context.Context) ([]entities.Property, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var values map[string]string
	if s.source.Format.IsStructured() {
		if snap.err != nil {
			return nil, snap.err
		}
		values = snap.properties
	} else {
		values, err = s.readDirectory(ctx, snap.commit)
		if err != nil {
			return nil, err
		}
	}

	result := make([]entities.Property, 0, len(values))
	for key, value := range values {
		result = append(result, entities.Property{
			Key:    key,
			Value:  value,
			Source: s.source.Name,
			Commit: snap.commit,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (s *PropertySource) readDirectory(ctx context.Context, commit string) (map[string]string, error) {
	paths, err := s.client.ListFiles(ctx, commit, s.source.File)
	if err != nil {
		return nil, s.wrap(err)
	}

	values := make(map[string]string, len(paths))
	prefix := strings.Trim(s.source.File, "/")
	for _, path := range paths {
		content, readErr := s.client.ReadFile(ctx, commit, joinPath(prefix, path))
		if readErr != nil {
			return nil, s.wrap(readErr)
		}
		values[path] = string(content)
	}
	return values, nil
}

// snapshot returns the current snapshot, loading or refreshing it as the
// refresh policy requires. A failed refresh keeps serving the last snapshot.
func (s *PropertySource) snapshot(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil && !s.source.Refresh.Stale(current.fetchedAt, s.now()) {
		return current, nil
	}

	fresh, err := s.load(ctx)
	if err != nil {
		if current != nil {
			logger.Warnf("Refresh of source %q failed, serving commit %s: %v",
				s.source.Name, shortHash(current.commit), err)
			return current, nil
		}
		return nil, err
	}
	return fresh, nil
}

// load refreshes the repository; concurrent calls share one refresh.
func (s *PropertySource) load(ctx context.Context) (*snapshot, error) {
	result, err, _ := s.flight.Do(refreshFlightKey, func() (any, error) {
		commit, refreshErr := s.client.Refresh(ctx)
		if refreshErr != nil {
			return nil, s.wrap(refreshErr)
		}

		snap := &snapshot{commit: commit, fetchedAt: s.now()}

		s.mu.RLock()
		previous := s.current
		s.mu.RUnlock()

		switch {
		case previous != nil && previous.commit == commit:
			snap.properties = previous.properties
			snap.err = previous.err
		case s.source.Format.IsStructured():
			if parseErr := s.parse(ctx, snap); parseErr != nil {
				return nil, parseErr
			}
		}

		s.mu.Lock()
		s.current = snap
		s.mu.Unlock()

		if previous == nil || previous.commit != commit {
			logger.Infof("Source %q now at commit %s", s.source.Name, shortHash(commit))
		}
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	snap, _ := result.(*snapshot)
	return snap, nil
}

// parse reads and parses the property file into snap. Missing or malformed
// files are recorded on the snapshot; other failures abort the refresh.
func (s *PropertySource) parse(ctx context.Context, snap *snapshot) error {
	content, err := s.client.ReadFile(ctx, snap.commit, s.source.File)
	if errors.Is(err, entities.ErrFileNotFound) {
		snap.err = s.wrap(err)
		return nil
	}
	if err != nil {
		return s.wrap(err)
	}

	properties, err := s.parser.Parse(content)
	if err != nil {
		if !errors.Is(err, entities.ErrParse) {
			err = fmt.Errorf("%w: %w", entities.ErrParse, err)
		}
		snap.err = s.wrap(fmt.Errorf("%s at %s: %w", s.source.File, shortHash(snap.commit), err))
		return nil
	}
	snap.properties = properties
	return nil
}

func (s *PropertySource) wrap(err error) error {
	var sourceErr *entities.SourceError
	if errors.As(err, &sourceErr) {
		return err
	}
	return entities.NewSourceError(s.source.Name, entities.KindOf(err), err)
}

func isMissing(err error) bool {
	return errors.Is(err, entities.ErrRefNotFound) || errors.Is(err, entities.ErrFileNotFound)
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
