package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(3, []byte("report body"), ".txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "audit_report_3.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))
}

func TestNewCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(w.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteSameSlotOverwrites(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = w.Write(1, []byte("first"), ".txt")
	require.NoError(t, err)
	path, err := w.Write(1, []byte("second"), ".txt")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
