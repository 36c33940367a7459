package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStatementFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b;c\n"), 0o600))

	t.Run("valid file", func(t *testing.T) {
		assert.NoError(t, ValidateStatementFile(path, 1024))
	})

	t.Run("no size limit when zero", func(t *testing.T) {
		assert.NoError(t, ValidateStatementFile(path, 0))
	})

	t.Run("missing file", func(t *testing.T) {
		err := ValidateStatementFile(filepath.Join(dir, "nope.csv"), 1024)
		assert.Error(t, err)
	})

	t.Run("directory", func(t *testing.T) {
		err := ValidateStatementFile(dir, 1024)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("file too large", func(t *testing.T) {
		err := ValidateStatementFile(path, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "byte limit")
	})

	t.Run("disallowed extension", func(t *testing.T) {
		bad := filepath.Join(dir, "statement.pdf")
		require.NoError(t, os.WriteFile(bad, []byte("x"), 0o600))
		err := ValidateStatementFile(bad, 1024)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extension")
	})
}
