//go:build unit

package controllers_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitprops/test/domain/commanddoubles"
)

func TestListControllerExecute(t *testing.T) {
	t.Parallel()

	t.Run("should print properties prefixed with their source", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{ExecuteResult: []entities.Property{
			{Key: "a", Value: "1", Source: "shared"},
			{Key: "b", Value: "2", Source: "overrides"},
		}}
		controller := controllers.NewListController(stub, prometheus.NewRegistry())
		cmd, out := newCommand(t, controller, validConfig)
		require.NoError(t, cmd.Flags().Set("source", "shared"))

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "shared: a=1\noverrides: b=2\n", out.String())
		assert.Equal(t, commands.ListOptions{SourceName: "shared"}, stub.LastOpts)
	})

	t.Run("should return command errors", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubListCommand{ExecuteErr: errors.New("boom")}
		controller := controllers.NewListController(stub, prometheus.NewRegistry())
		cmd, _ := newCommand(t, controller, validConfig)

		// when
		err := controller.Execute(cmd, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list failed: boom")
	})

	t.Run("should describe itself", func(t *testing.T) {
		t.Parallel()

		// given
		controller := controllers.NewListController(&commanddoubles.StubListCommand{}, prometheus.NewRegistry())

		// when
		bind := controller.GetBind()

		// then
		assert.Equal(t, "list", bind.Use)
		assert.NotEmpty(t, bind.Short)
	})
}
