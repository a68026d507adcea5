//go:build unit

package formats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
)

func TestJSONParserParse(t *testing.T) {
	t.Parallel()

	t.Run("should flatten nested objects and arrays", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`{
  "server": {"port": 8080, "ratio": 1.50, "tls": true},
  "hosts": ["alpha", "beta"],
  "owner": null
}`)

		// when
		result, err := formats.NewJSONParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"server.port":  "8080",
			"server.ratio": "1.50",
			"server.tls":   "true",
			"hosts.0":      "alpha",
			"hosts.1":      "beta",
		}, result)
	})

	t.Run("should accept comments and trailing commas", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`{
  // connection settings
  "db": {"url": "postgres://db/app",},
}`)

		// when
		result, err := formats.NewJSONParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "postgres://db/app", result["db.url"])
	})

	t.Run("should reject malformed documents", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`{"db": `)

		// when
		_, err := formats.NewJSONParser().Parse(content)

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})

	t.Run("should reject a non-object root", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`["a", "b"]`)

		// when
		_, err := formats.NewJSONParser().Parse(content)

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})
}

func TestJSONParserParseKeepsNumberLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		literal string
		want    string
	}{
		{name: "trailing zero", literal: "1.10", want: "1.10"},
		{name: "exponent", literal: "1e3", want: "1e3"},
		{name: "negative", literal: "-0.50", want: "-0.50"},
		{name: "beyond float precision", literal: "12345678901234567890", want: "12345678901234567890"},
		{name: "quoted octal", literal: `"0755"`, want: "0755"},
		{name: "quoted date", literal: `"2024-01-01"`, want: "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			content := []byte(`{"value": ` + tt.literal + `}`)

			// when
			result, err := formats.NewJSONParser().Parse(content)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.want, result["value"])
		})
	}
}
