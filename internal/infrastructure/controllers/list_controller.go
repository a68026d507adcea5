package controllers

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command  commands.List
	gatherer prometheus.Gatherer
}

// NewListController creates a new ListController.
func NewListController(command commands.List, gatherer prometheus.Gatherer) *ListController {
	return &ListController{command: command, gatherer: gatherer}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Short: "List the properties of the git sources",
		Long: `List every property of every configured git source,
in source priority order, as source: key=value.`,
	}
}

// AddFlags adds the list-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.NoArgs
	cmd.Flags().String("source", "", "Only list this source")
}

// Execute lists the properties.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
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

	properties, err := it.command.Execute(ctx, settings, commands.ListOptions{SourceName: sourceName})
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	for _, property := range properties {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s=%s\n", property.Source, property.Key, property.Value)
	}
	return nil
}
