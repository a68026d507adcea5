//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gitprops/test/infrastructure/repositorydoubles"
)

func TestResolveCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should resolve keys in request order and list unresolved ones", func(t *testing.T) {
		t.Parallel()

		// given
		overrides := &doubles.StubResolver{ResolverName: "overrides", Values: map[string]string{"b": "override"}}
		shared := &doubles.StubResolver{ResolverName: "shared", Values: map[string]string{"a": "1", "b": "2"}}
		builder := doubles.NewSpyPipelineBuilder(overrides, shared)
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		cmd := commands.NewResolveCommand(builder)

		// when
		result, err := cmd.Execute(context.Background(), settings, commands.ResolveOptions{
			Keys: []string{"b", "missing", "a"},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.Property{
			{Key: "b", Value: "override"},
			{Key: "a", Value: "1"},
		}, result.Properties)
		assert.Equal(t, []string{"missing"}, result.Unresolved)
		assert.Same(t, settings, builder.LastSettings)
	})

	t.Run("should fail with key not found in strict mode", func(t *testing.T) {
		t.Parallel()

		// given
		builder := doubles.NewSpyPipelineBuilder(&doubles.StubResolver{ResolverName: "shared", Values: map[string]string{"a": "1"}})
		cmd := commands.NewResolveCommand(builder)

		// when
		result, err := cmd.Execute(context.Background(), &entities.Settings{}, commands.ResolveOptions{
			Keys:   []string{"a", "x", "y"},
			Strict: true,
		})

		// then
		require.ErrorIs(t, err, entities.ErrKeyNotFound)
		var unresolved *entities.UnresolvedError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, []string{"x", "y"}, unresolved.Keys)
		require.NotNil(t, result)
		assert.Len(t, result.Properties, 1)
	})

	t.Run("should not fail in strict mode when every key resolves", func(t *testing.T) {
		t.Parallel()

		// given
		builder := doubles.NewSpyPipelineBuilder(&doubles.StubResolver{ResolverName: "shared", Values: map[string]string{"a": "1"}})
		cmd := commands.NewResolveCommand(builder)

		// when
		result, err := cmd.Execute(context.Background(), &entities.Settings{}, commands.ResolveOptions{
			Keys:   []string{"a"},
			Strict: true,
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Unresolved)
	})

	t.Run("should stop on source errors", func(t *testing.T) {
		t.Parallel()

		// given
		cause := entities.NewSourceError("shared", entities.ErrAuthenticationFailed, errors.New("401"))
		builder := doubles.NewSpyPipelineBuilder(&doubles.StubResolver{ResolverName: "shared", ResolveErr: cause})
		cmd := commands.NewResolveCommand(builder)

		// when
		result, err := cmd.Execute(context.Background(), &entities.Settings{}, commands.ResolveOptions{Keys: []string{"a"}})

		// then
		require.ErrorIs(t, err, entities.ErrAuthenticationFailed)
		assert.Nil(t, result)
	})

	t.Run("should return pipeline build errors", func(t *testing.T) {
		t.Parallel()

		// given
		builder := &doubles.SpyPipelineBuilder{BuildErr: errors.New("bad settings")}
		cmd := commands.NewResolveCommand(builder)

		// when
		_, err := cmd.Execute(context.Background(), &entities.Settings{}, commands.ResolveOptions{Keys: []string{"a"}})

		// then
		require.EqualError(t, err, "bad settings")
		assert.Equal(t, 1, builder.BuildCallCount)
	})
}

func TestResolveKeys(t *testing.T) {
	t.Parallel()

	t.Run("should resolve many keys with limited concurrency", func(t *testing.T) {
		t.Parallel()

		// given
		values := make(map[string]string)
		keys := make([]string, 0, 50)
		for i := range 50 {
			key := fmt.Sprintf("key.%02d", i)
			values[key] = fmt.Sprint(i)
			keys = append(keys, key)
		}
		resolver := &doubles.StubResolver{ResolverName: "shared", Values: values}

		// when
		result, err := commands.ResolveKeys(context.Background(), resolver, commands.ResolveOptions{
			Keys:        keys,
			Concurrency: 3,
		})

		// then
		require.NoError(t, err)
		require.Len(t, result.Properties, 50)
		for i, property := range result.Properties {
			assert.Equal(t, keys[i], property.Key)
			assert.Equal(t, fmt.Sprint(i), property.Value)
		}
		assert.Equal(t, 50, resolver.ResolveCallCount())
	})

	t.Run("should return an empty result for no keys", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := commands.ResolveKeys(context.Background(), &doubles.StubResolver{}, commands.ResolveOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Properties)
		assert.Empty(t, result.Unresolved)
	})
}
