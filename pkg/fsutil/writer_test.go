package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/harborsync/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "nested", "dir", "report.yaml")

	require.NoError(t, fsutil.WriteFileAtomic(output, []byte("totals: {}\n")))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "totals: {}\n", string(data))

	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFileAtomic_ReplacesAndLeavesNoTemporaryFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "report.json")

	require.NoError(t, os.WriteFile(output, []byte("old"), 0o600))
	require.NoError(t, fsutil.WriteFileAtomic(output, []byte("new")))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_EmptyPath(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, fsutil.WriteFileAtomic("", nil), fsutil.ErrEmptyOutputPath)
}

func TestWriteFileAtomic_ParentIsAFile(t *testing.T) {
	t.Parallel()

	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	err := fsutil.WriteFileAtomic(filepath.Join(parent, "report.yaml"), []byte("x"))

	require.ErrorContains(t, err, "failed to create directory")
}
