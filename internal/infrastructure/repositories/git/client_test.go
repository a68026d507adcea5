//go:build integration

package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
	gitRepo "github.com/rios0rios0/gitprops/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/gitprops/test/infrastructure/gitfixtures"
)

func newClient(t *testing.T, location, ref string, kind entities.RefKind) *gitRepo.Client {
	t.Helper()

	reference, err := entities.NewRepositoryReference(location, ref, kind, entities.AuthConfig{})
	require.NoError(t, err)
	cache, err := gitRepo.NewCloneCache(entities.MemoryCacheDir)
	require.NoError(t, err)
	client := gitRepo.NewClient(reference, cache, nil)
	gitRepo.SetFetchAttempts(client, 1)
	return client
}

func TestClientRefresh(t *testing.T) {
	t.Parallel()

	fixture := gitfixtures.NewRepository(t)
	first := fixture.Commit("first", map[string]string{"app.properties": "version=1\n"})
	fixture.Tag("v1.0.0")
	fixture.AnnotatedTag("release-2.0.0", "release")
	second := fixture.Commit("second", map[string]string{"app.properties": "version=2\n"})
	fixture.Tag("v1.10.0")
	fixture.Tag("not-a-version")
	fixture.Checkout("feature")
	feature := fixture.Commit("feature", map[string]string{"app.properties": "version=feature\n"})
	fixture.Checkout("main")

	tests := []struct {
		name     string
		ref      string
		kind     entities.RefKind
		expected string
	}{
		{name: "should follow the remote HEAD for an empty ref", ref: "", kind: entities.RefKindAuto, expected: second},
		{name: "should resolve a branch", ref: "feature", kind: entities.RefKindBranch, expected: feature},
		{name: "should resolve a branch name in auto mode", ref: "feature", kind: entities.RefKindAuto, expected: feature},
		{name: "should resolve a lightweight tag", ref: "v1.0.0", kind: entities.RefKindTag, expected: first},
		{name: "should peel an annotated tag", ref: "release-2.0.0", kind: entities.RefKindTag, expected: first},
		{name: "should resolve a commit hash", ref: first, kind: entities.RefKindCommit, expected: first},
		{name: "should pick the highest semantic version tag", ref: "v", kind: entities.RefKindLatestTag, expected: second},
		{name: "should filter latest tags by prefix", ref: "release-", kind: entities.RefKindLatestTag, expected: first},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			client := newClient(t, fixture.URL(), tt.ref, tt.kind)

			// when
			commit, err := client.Refresh(context.Background())

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, commit)
		})
	}

	t.Run("should report an unknown branch as ref not found", func(t *testing.T) {
		t.Parallel()

		// given
		client := newClient(t, fixture.URL(), "nope", entities.RefKindBranch)

		// when
		_, err := client.Refresh(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrRefNotFound)
	})

	t.Run("should report latest tag without matches as ref not found", func(t *testing.T) {
		t.Parallel()

		// given
		client := newClient(t, fixture.URL(), "nightly-", entities.RefKindLatestTag)

		// when
		_, err := client.Refresh(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrRefNotFound)
	})
}

func TestClientUnreachable(t *testing.T) {
	t.Parallel()

	t.Run("should report a missing remote as unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		location := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "absent"))
		client := newClient(t, location, "", entities.RefKindAuto)

		// when
		_, err := client.Refresh(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryUnreachable)
	})

	t.Run("should report a missing local path as unreachable", func(t *testing.T) {
		t.Parallel()

		// given
		client := newClient(t, filepath.Join(t.TempDir(), "absent"), "", entities.RefKindAuto)

		// when
		_, err := client.Refresh(context.Background())

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryUnreachable)
	})
}

func TestClientReadFiles(t *testing.T) {
	t.Parallel()

	fixture := gitfixtures.NewRepository(t)
	commit := fixture.Commit("values", map[string]string{
		"values/db.url":       "postgres://db/app",
		"values/nested/token": "abc",
		"README.md":           "# config\n",
	})

	for name, location := range map[string]string{"cloned": fixture.URL(), "local": fixture.Path} {
		t.Run("should read and list files when "+name, func(t *testing.T) {
			t.Parallel()

			// given
			client := newClient(t, location, "main", entities.RefKindBranch)
			resolved, err := client.Refresh(context.Background())
			require.NoError(t, err)

			// when
			content, readErr := client.ReadFile(context.Background(), resolved, "values/db.url")
			files, listErr := client.ListFiles(context.Background(), resolved, "values")
			_, missingErr := client.ReadFile(context.Background(), resolved, "values/absent")
			_, missingDirErr := client.ListFiles(context.Background(), resolved, "absent")

			// then
			assert.Equal(t, commit, resolved)
			require.NoError(t, readErr)
			assert.Equal(t, "postgres://db/app", string(content))
			require.NoError(t, listErr)
			assert.Equal(t, []string{"db.url", "nested/token"}, files)
			require.ErrorIs(t, missingErr, entities.ErrFileNotFound)
			require.ErrorIs(t, missingDirErr, entities.ErrFileNotFound)
		})
	}
}

func TestPropertySourceOverRepository(t *testing.T) {
	t.Parallel()

	newRepositorySource := func(t *testing.T, location, file string, format entities.Format) *gitRepo.PropertySource {
		t.Helper()

		reference, err := entities.NewRepositoryReference(location, "main", entities.RefKindBranch, entities.AuthConfig{})
		require.NoError(t, err)
		cache, err := gitRepo.NewCloneCache(filepath.Join(t.TempDir(), "clones"))
		require.NoError(t, err)
		parser, err := formats.NewDefaultRegistry().Get(format)
		require.NoError(t, err)
		source, err := gitRepo.NewPropertySource(entities.PropertySource{
			Name:      "shared",
			Reference: reference,
			File:      file,
			Format:    format,
			Refresh:   entities.RefreshPolicy{Mode: entities.RefreshOnce},
		}, gitRepo.NewClient(reference, cache, nil), parser)
		require.NoError(t, err)
		return source
	}

	t.Run("should see a new commit after refresh", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Commit("v1", map[string]string{"app.yaml": "server:\n  port: 8080\n"})
		source := newRepositorySource(t, fixture.URL(), "app.yaml", entities.FormatYAML)
		before, _, err := source.Resolve(context.Background(), "server.port")
		require.NoError(t, err)
		head := fixture.Commit("v2", map[string]string{"app.yaml": "server:\n  port: 9090\n"})

		// when
		stale, _, staleErr := source.Resolve(context.Background(), "server.port")
		revision, refreshErr := source.Refresh(context.Background())
		after, _, afterErr := source.Resolve(context.Background(), "server.port")

		// then
		assert.Equal(t, "8080", before)
		require.NoError(t, staleErr)
		assert.Equal(t, "8080", stale)
		require.NoError(t, refreshErr)
		assert.Equal(t, head, revision.Commit)
		require.NoError(t, afterErr)
		assert.Equal(t, "9090", after)
	})

	t.Run("should report a malformed file as a parse error", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Commit("broken", map[string]string{"app.json": `{"port": `})
		source := newRepositorySource(t, fixture.URL(), "app.json", entities.FormatJSON)

		// when
		_, _, err := source.Resolve(context.Background(), "port")

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})

	t.Run("should report a deleted file as file not found", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := gitfixtures.NewRepository(t)
		fixture.Commit("add", map[string]string{"app.toml": "port = 1\n", "keep": "x"})
		fixture.Commit("remove", nil, "app.toml")
		source := newRepositorySource(t, fixture.URL(), "app.toml", entities.FormatTOML)

		// when
		_, _, err := source.Resolve(context.Background(), "port")

		// then
		require.ErrorIs(t, err, entities.ErrFileNotFound)
	})
}
