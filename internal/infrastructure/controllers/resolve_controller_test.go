//go:build unit

package controllers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/resolvers"
	"github.com/rios0rios0/gitprops/test/domain/commanddoubles"
)

func TestResolveControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print resolved properties as key=value", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubResolveCommand{ExecuteResult: &commands.ResolveResult{
			Properties: []entities.Property{{Key: "db.url", Value: "postgres://db/app"}, {Key: "db.user", Value: "app"}},
			Unresolved: []string{"db.password"},
		}}
		controller := controllers.NewResolveController(stub, prometheus.NewRegistry())
		cmd, out := newCommand(t, controller, validConfig)
		require.NoError(t, cmd.Flags().Set("strict", "true"))
		require.NoError(t, cmd.Flags().Set("concurrency", "2"))

		// when
		err := controller.Execute(cmd, []string{"db.url", "db.user", "db.password"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "db.url=postgres://db/app\ndb.user=app\n", out.String())
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, commands.ResolveOptions{
			Keys:        []string{"db.url", "db.user", "db.password"},
			Strict:      true,
			Concurrency: 2,
		}, stub.LastOpts)
		require.NotNil(t, stub.LastSettings)
		assert.Equal(t, "shared", stub.LastSettings.Sources[0].Name)
	})

	t.Run("should return command errors", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubResolveCommand{ExecuteErr: &entities.UnresolvedError{Keys: []string{"x"}}}
		controller := controllers.NewResolveController(stub, prometheus.NewRegistry())
		cmd, _ := newCommand(t, controller, validConfig)

		// when
		err := controller.Execute(cmd, []string{"x"})

		// then
		require.ErrorIs(t, err, entities.ErrKeyNotFound)
		assert.Contains(t, err.Error(), "resolve failed")
	})

	t.Run("should fail on invalid settings without running the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubResolveCommand{}
		controller := controllers.NewResolveController(stub, prometheus.NewRegistry())
		cmd, _ := newCommand(t, controller, "sources: []\n")

		// when
		err := controller.Execute(cmd, []string{"x"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
		assert.Equal(t, 0, stub.ExecuteCallCount)
	})

	t.Run("should write metrics to a text file when asked", func(t *testing.T) {
		t.Parallel()

		// given
		registry := prometheus.NewRegistry()
		metrics, err := resolvers.NewMetrics(registry)
		require.NoError(t, err)
		metrics.Lookups.WithLabelValues("shared", resolvers.OutcomeFound).Inc()
		controller := controllers.NewResolveController(&commanddoubles.StubResolveCommand{}, registry)
		cmd, _ := newCommand(t, controller, validConfig)
		path := filepath.Join(t.TempDir(), "gitprops.prom")
		require.NoError(t, cmd.Flags().Set("metrics-textfile", path))

		// when
		err = controller.Execute(cmd, []string{"a"})

		// then
		require.NoError(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Contains(t, string(content), `gitprops_lookups_total{outcome="found",source="shared"} 1`)
	})

	t.Run("should require at least one key", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewResolveController(&commanddoubles.StubResolveCommand{}, prometheus.NewRegistry())
		cmd, _ := newCommand(t, controller, "")

		// when
		err := cmd.Args(cmd, nil)

		// then
		require.Error(t, err)
	})
}
