package controllers

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// loadSettings reads the settings file given by --config or found in the
// default locations.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			return nil, fmt.Errorf(
				"no config file found: %w; specify one with --config or create gitprops.yaml",
				err,
			)
		}
	}

	logger.Debugf("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// exportMetrics writes the gathered metrics as a Prometheus text file when
// --metrics-textfile is set.
func exportMetrics(cmd *cobra.Command, gatherer prometheus.Gatherer) {
	path, _ := cmd.Flags().GetString("metrics-textfile")
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		logger.Warnf("Failed to write metrics to %q: %v", path, err)
		return
	}
	logger.Debugf("Metrics written to %q", path)
}
