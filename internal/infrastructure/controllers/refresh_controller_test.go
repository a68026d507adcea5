//go:build unit

package controllers_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitprops/test/domain/commanddoubles"
)

func TestRefreshControllerExecute(t *testing.T) {
	t.Parallel()

	fetchedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should print the commit of every refreshed source", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRefreshCommand{ExecuteResult: []entities.Revision{
			{Source: "shared", Commit: "abc", FetchedAt: fetchedAt},
		}}
		controller := controllers.NewRefreshController(stub, prometheus.NewRegistry())
		cmd, out := newCommand(t, controller, validConfig)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "shared abc 2024-01-01T12:00:00Z\n", out.String())
		assert.Equal(t, commands.RefreshOptions{}, stub.LastOpts)
	})

	t.Run("should print partial results before failing", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubRefreshCommand{
			ExecuteResult: []entities.Revision{{Source: "healthy", Commit: "abc", FetchedAt: fetchedAt}},
			ExecuteErr:    entities.ErrRepositoryUnreachable,
		}
		controller := controllers.NewRefreshController(stub, prometheus.NewRegistry())
		cmd, out := newCommand(t, controller, validConfig)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.ErrorIs(t, err, entities.ErrRepositoryUnreachable)
		assert.Contains(t, out.String(), "healthy abc")
	})
}
