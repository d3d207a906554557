package usecase

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-renamer/internal/testutil"
	"asset-renamer/pkg/mapping"
	"asset-renamer/pkg/renamer"
)

// memFS serves absolute slash paths from an in-memory map.
type memFS struct {
	files     fstest.MapFS
	renameErr error
}

func key(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "/")
}

func (m *memFS) Stat(name string) (fs.FileInfo, error)  { return fs.Stat(m.files, key(name)) }
func (m *memFS) Lstat(name string) (fs.FileInfo, error) { return fs.Stat(m.files, key(name)) }

func (m *memFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(m.files, key(name))
}

func (m *memFS) Rename(oldPath, newPath string) error {
	if m.renameErr != nil {
		return m.renameErr
	}
	file, ok := m.files[key(oldPath)]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, key(oldPath))
	m.files[key(newPath)] = file
	return nil
}

func TestService_RunRename_InMemory(t *testing.T) {
	t.Parallel()

	fsys := &memFS{files: fstest.MapFS{
		"virtual/assets/report.pdf": {Data: []byte("report")},
		"virtual/assets/final.pdf":  {Data: []byte("final")},
		"virtual/assets/clip.mp4":   {Data: []byte("clip")},
	}}

	var checked string
	var operations []renamer.Operation
	execution, err := New(Options{FS: fsys}).RunRename(RenameRequest{
		TargetDir: "/virtual/assets",
		Mapping: mapping.Mapping{
			{From: "report.pdf", To: "final.pdf"},
			{From: "clip.mp4", To: "demo_video.mp4"},
			{From: "1770564041177.jpg", To: "screenshot_1.jpg"},
		},
		OnCheck: func(rootDir string) { checked = rootDir },
		OnOperation: func(op renamer.Operation) {
			operations = append(operations, op)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.FromSlash("/virtual/assets"), checked)
	assert.Equal(t, checked, execution.RootDir)

	result := execution.Result
	assert.Equal(t, 1, result.RenamedCount)
	assert.Equal(t, 2, result.SkippedCount)
	require.Len(t, operations, 3)
	assert.Equal(t, renamer.StatusTargetExists, operations[0].Status)
	assert.Equal(t, renamer.StatusRenamed, operations[1].Status)
	assert.Equal(t, renamer.StatusSourceMissing, operations[2].Status)

	assert.Equal(t, []byte("clip"), fsys.files["virtual/assets/demo_video.mp4"].Data)
	assert.Equal(t, []byte("report"), fsys.files["virtual/assets/report.pdf"].Data)
}

func TestService_RunRename_RenameFailureLogged(t *testing.T) {
	t.Parallel()

	fsys := &memFS{
		files:     fstest.MapFS{"virtual/assets/clip.mp4": {Data: []byte("clip")}},
		renameErr: &os.LinkError{Op: "rename", Old: "clip.mp4", New: "demo.mp4", Err: fs.ErrPermission},
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	execution, err := New(Options{FS: fsys, Logger: logger}).RunRename(RenameRequest{
		TargetDir: "/virtual/assets",
		Mapping:   mapping.Mapping{{From: "clip.mp4", To: "demo.mp4"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, execution.Result.ErrorCount)
	assert.ErrorIs(t, execution.Result.Operations[0].Error, fs.ErrPermission)
	assert.Contains(t, logs.String(), "rename: entry failed")
	assert.Contains(t, logs.String(), "rename: finished")
}

func TestService_RunRename_DirectoryNotFound(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "submission_assets")

	execution, err := New(Options{}).RunRename(RenameRequest{
		TargetDir: missing,
		Mapping:   mapping.Default(),
	})
	require.ErrorIs(t, err, renamer.ErrDirectoryNotFound)
	assert.Equal(t, missing, execution.RootDir)
	assert.Empty(t, execution.Result.Operations)
}

func TestService_RunRename_InvalidMappingTouchesNothing(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "report.pdf"), "report")

	checked := false
	_, err := New(Options{}).RunRename(RenameRequest{
		TargetDir: tmpDir,
		Mapping:   mapping.Mapping{{From: "report.pdf", To: "../final.pdf"}},
		OnCheck:   func(string) { checked = true },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rename mapping")
	assert.False(t, checked)
	assert.FileExists(t, filepath.Join(tmpDir, "report.pdf"))
}

func TestService_RunRename_EmptyTarget(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).RunRename(RenameRequest{Mapping: mapping.Default()})
	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestService_RunRename_RelativeTargetResolved(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "assets", "report.pdf"), "report")
	t.Chdir(tmpDir)

	execution, err := New(Options{}).RunRename(RenameRequest{
		TargetDir: "assets",
		Mapping:   mapping.Mapping{{From: "report.pdf", To: "final.pdf"}},
	})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(execution.RootDir))
	assert.Equal(t, 1, execution.Result.RenamedCount)
	assert.FileExists(t, filepath.Join(tmpDir, "assets", "final.pdf"))
}
