package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// RefreshController handles the "refresh" subcommand.
type RefreshController struct {
	command  commands.Refresh
	gatherer prometheus.Gatherer
}

// NewRefreshController creates a new RefreshController.
func NewRefreshController(command commands.Refresh, gatherer prometheus.Gatherer) *RefreshController {
	return &RefreshController{command: command, gatherer: gatherer}
}

// GetBind returns the Cobra command metadata for the refresh controller.
func (it *RefreshController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "refresh",
		Short: "Fetch the git sources into the clone cache",
		Long: `Fetch every configured git source into the clone cache and
print the commit each source resolves to.

Intended to be run from a cronjob to keep the cache warm.`,
	}
}

// AddFlags adds the refresh-specific flags to the given Cobra command.
func (it *RefreshController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.NoArgs
	cmd.Flags().String("source", "", "Only refresh this source")
}

// Execute refreshes the sources.
func (it *RefreshController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sourceName, _ := cmd.Flags().GetString("source")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer exportMetrics(cmd, it.gatherer)

	logger.Info("Refreshing sources...")
	revisions, err := it.command.Execute(ctx, settings, commands.RefreshOptions{SourceName: sourceName})
	for _, revision := range revisions {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
			revision.Source, revision.Commit, revision.FetchedAt.Format(time.RFC3339))
	}
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	return nil
}
