package controllers

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// ResolveController handles the "resolve" subcommand.
type ResolveController struct {
	command  commands.Resolve
	gatherer prometheus.Gatherer
}

// NewResolveController creates a new ResolveController.
func NewResolveController(command commands.Resolve, gatherer prometheus.Gatherer) *ResolveController {
	return &ResolveController{command: command, gatherer: gatherer}
}

// GetBind returns the Cobra command metadata for the resolve controller.
func (it *ResolveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "resolve KEY...",
		Short: "Resolve property keys",
		Long: `Resolve property keys through the configured sources, in order.

Each key is printed as key=value. Keys no source knows are reported
as warnings, or fail the command with --strict.`,
	}
}

// AddFlags adds the resolve-specific flags to the given Cobra command.
func (it *ResolveController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.Flags().Bool("strict", false, "Fail when a key cannot be resolved")
	cmd.Flags().Int("concurrency", 0, "Number of keys resolved in parallel (default 4)")
}

// Execute resolves the keys given as arguments.
func (it *ResolveController) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	strict, _ := cmd.Flags().GetBool("strict")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer exportMetrics(cmd, it.gatherer)

	result, err := it.command.Execute(ctx, settings, commands.ResolveOptions{
		Keys:        args,
		Strict:      strict,
		Concurrency: concurrency,
	})
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	for _, property := range result.Properties {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", property.Key, property.Value)
	}
	for _, key := range result.Unresolved {
		logger.Warnf("Property %q not found", key)
	}
	return nil
}
