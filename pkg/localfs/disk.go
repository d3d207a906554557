// Package localfs provides the operating-system filesystem used by the
// batch renamer.
package localfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"asset-renamer/pkg/safepath"
)

// Disk reads and renames entries on the local filesystem. Renames are
// confined to the source's parent directory.
type Disk struct{}

// New returns a Disk.
func New() Disk {
	return Disk{}
}

// Stat follows symlinks, like os.Stat.
func (Disk) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Lstat does not follow a final symlink, like os.Lstat.
func (Disk) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// ReadDir lists name, sorted by filename.
func (Disk) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Rename moves oldPath to newPath inside oldPath's directory. It fails
// without touching the filesystem if newPath leaves that directory or resolves
// through a symlink outside it, or if newPath already exists. A symlink at
// oldPath is moved as a link.
func (Disk) Rename(oldPath, newPath string) error {
	dir := filepath.Dir(oldPath)

	v, err := safepath.New(dir)
	if err != nil {
		return fmt.Errorf("cannot guard rename: %w", err)
	}

	rel, err := filepath.Rel(dir, newPath)
	if err != nil {
		return fmt.Errorf("%w: %s", safepath.ErrPathEscape, newPath)
	}

	// Rebase both paths onto the resolved root so containment checks compare
	// like with like when dir itself contains symlinks.
	dst := filepath.Join(v.Root(), rel)
	if err := v.ValidatePath(dst); err != nil {
		return fmt.Errorf("destination %w: %s", err, newPath)
	}

	return v.SafeRename(filepath.Join(v.Root(), filepath.Base(oldPath)), dst)
}
