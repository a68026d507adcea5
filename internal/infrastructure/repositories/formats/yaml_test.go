//go:build unit

package formats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
)

func TestYAMLParserParse(t *testing.T) {
	t.Parallel()

	t.Run("should flatten mappings and sequences", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`
server:
  port: 8080
  debug: false
hosts:
  - alpha
  - name: beta
    weight: 2.5
owner: ~
`)

		// when
		result, err := formats.NewYAMLParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"server.port":    "8080",
			"server.debug":   "false",
			"hosts.0":        "alpha",
			"hosts.1.name":   "beta",
			"hosts.1.weight": "2.5",
		}, result)
	})

	t.Run("should return no properties for an empty file", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := formats.NewYAMLParser().Parse([]byte("# nothing yet\n"))

		// then
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should reject malformed documents", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("server:\n  port: [8080\n")

		// when
		_, err := formats.NewYAMLParser().Parse(content)

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})

	t.Run("should reject a scalar root", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := formats.NewYAMLParser().Parse([]byte("just a string\n"))

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})
}

func TestYAMLParserParseKeepsScalarText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		literal string
		want    string
	}{
		{name: "trailing zero float", literal: "1.10", want: "1.10"},
		{name: "leading zero", literal: "0755", want: "0755"},
		{name: "hexadecimal", literal: "0x1F", want: "0x1F"},
		{name: "exponent", literal: "1e3", want: "1e3"},
		{name: "date", literal: "2024-01-01", want: "2024-01-01"},
		{name: "local time", literal: "07:32:00", want: "07:32:00"},
		{name: "timestamp", literal: "2024-01-01T07:32:00Z", want: "2024-01-01T07:32:00Z"},
		{name: "yes is not a boolean", literal: "yes", want: "yes"},
		{name: "quoted", literal: `"1.10"`, want: "1.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			content := []byte("value: " + tt.literal + "\n")

			// when
			result, err := formats.NewYAMLParser().Parse(content)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.want, result["value"])
		})
	}
}

func TestYAMLParserParseFollowsAliases(t *testing.T) {
	t.Parallel()

	// given
	content := []byte(`
defaults: &defaults
  timeout: 30
  retries: 3
primary:
  <<: *defaults
  retries: 5
backup: *defaults
`)

	// when
	result, err := formats.NewYAMLParser().Parse(content)

	// then
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"defaults.timeout": "30",
		"defaults.retries": "3",
		"primary.timeout":  "30",
		"primary.retries":  "5",
		"backup.timeout":   "30",
		"backup.retries":   "3",
	}, result)
}
