//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

const validConfig = `
cache_dir: memory
sources:
  - name: shared
    location: https://example.com/org/config.git
    file: app.properties
`

// newCommand builds a command carrying the global flags of the root command
// plus the controller's own flags, with output captured.
func newCommand(t *testing.T, controller entities.Controller, config string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	//nolint:exhaustruct // test command
	cmd := &cobra.Command{Use: controller.GetBind().Use}
	cmd.Flags().StringP("config", "c", "", "")
	cmd.Flags().String("metrics-textfile", "", "")
	controller.AddFlags(cmd)

	if config != "" {
		path := filepath.Join(t.TempDir(), "gitprops.yaml")
		require.NoError(t, os.WriteFile(path, []byte(config), 0o600))
		require.NoError(t, cmd.Flags().Set("config", path))
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}
