package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.txt")
	CreateFile(t, path, "hello")

	assert.Equal(t, "hello", ReadFile(t, path))
}

func TestCreateFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	CreateFileBytes(t, path, []byte{0x00, 0x01, 0x02})

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, content)
}

func TestCreateFileWithModTime(t *testing.T) {
	modTime := time.Date(2026, 2, 9, 0, 20, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "nested", "file.txt")
	CreateFileWithModTime(t, path, "content", modTime)

	assert.Equal(t, "content", ReadFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))
}

func TestDirState(t *testing.T) {
	dir := t.TempDir()
	CreateFile(t, filepath.Join(dir, "a.txt"), "a")
	CreateFile(t, filepath.Join(dir, "sub", "ignored.txt"), "nested")

	assert.Equal(t, map[string]string{
		"a.txt": "a",
		"sub":   DirMarker,
	}, DirState(t, dir))
}
