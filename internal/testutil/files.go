package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// DirMarker is the DirState value recorded for subdirectories.
const DirMarker = "<dir>"

func CreateFile(t *testing.T, path, content string) {
	t.Helper()
	createFileBytes(t, path, []byte(content), false, time.Time{})
}

func CreateFileBytes(t *testing.T, path string, content []byte) {
	t.Helper()
	createFileBytes(t, path, content, false, time.Time{})
}

func CreateFileWithModTime(t *testing.T, path, content string, modTime time.Time) {
	t.Helper()
	createFileBytes(t, path, []byte(content), true, modTime)
}

func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

// DirState maps every top-level entry of dir to its content, or DirMarker
// for subdirectories. Two equal states mean nothing was renamed or rewritten.
func DirState(t *testing.T, dir string) map[string]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	state := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			state[entry.Name()] = DirMarker
			continue
		}
		state[entry.Name()] = ReadFile(t, filepath.Join(dir, entry.Name()))
	}

	return state
}

func createFileBytes(t *testing.T, path string, content []byte, setModTime bool, modTime time.Time) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	require.NoError(t, err)

	err = os.WriteFile(path, content, 0o644)
	require.NoError(t, err)

	if !setModTime {
		return
	}

	err = os.Chtimes(path, modTime, modTime)
	require.NoError(t, err)
}
