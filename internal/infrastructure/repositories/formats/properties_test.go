//go:build unit

package formats_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
)

func TestPropertiesParserParse(t *testing.T) {
	t.Parallel()

	t.Run("should read every separator style and skip comments", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`# database
! legacy comment
db.url=jdbc:postgresql://localhost/app
db.user : admin
db.pool   10

empty=
`)

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"db.url":  "jdbc:postgresql://localhost/app",
			"db.user": "admin",
			"db.pool": "10",
			"empty":   "",
		}, result)
	})

	t.Run("should join continued lines", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("hosts=alpha,\\\n    beta,\\\n    gamma\nnext=1\n")

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "alpha,beta,gamma", result["hosts"])
		assert.Equal(t, "1", result["next"])
	})

	t.Run("should keep an escaped trailing backslash", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("path=C:\\\\\nother=x\n")

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, `C:\`, result["path"])
		assert.Equal(t, "x", result["other"])
	})

	t.Run("should decode escapes in keys and values", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`key\ with\ spaces=tab\there
greeting=caf\u00e9
`)

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "tab\there", result["key with spaces"])
		assert.Equal(t, "café", result["greeting"])
	})

	t.Run("should let later keys win", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("a=1\na=2\n")

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "2", result["a"])
	})

	t.Run("should reject a malformed unicode escape", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("ok=1\nbad=\\u12\n")

		// when
		_, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.ErrorIs(t, err, entities.ErrParse)
	})

	t.Run("should read a value longer than a scanner buffer", func(t *testing.T) {
		t.Parallel()

		// given
		certificate := strings.Repeat("MIIB", 70*1024/4)
		content := []byte("cert=" + certificate + "\nnext=1\n")

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, certificate, result["cert"])
		assert.Equal(t, "1", result["next"])
	})

	t.Run("should combine escaped surrogate pairs", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte(`smile=\uD83D\uDE00
mixed=a\uD83D\uDE00b\u00e9
literal=\\uD83D\uDE00
`)

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "😀", result["smile"])
		assert.Equal(t, "a😀bé", result["mixed"])
		assert.Equal(t, `\uD83D`+"\ufffd", result["literal"])
	})

	t.Run("should leave variable references unexpanded", func(t *testing.T) {
		t.Parallel()

		// given
		content := []byte("host=db\nurl=jdbc://${host}/${missing}\n")

		// when
		result, err := formats.NewPropertiesParser().Parse(content)

		// then
		require.NoError(t, err)
		assert.Equal(t, "jdbc://${host}/${missing}", result["url"])
	})
}
