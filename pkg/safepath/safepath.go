// Package safepath keeps renames inside a designated root directory.
package safepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates an attempt to access a path outside the root.
	ErrPathEscape = errors.New("path escapes root directory")
	// ErrSymlinkEscape indicates a path resolves through a symlink outside the root.
	ErrSymlinkEscape = errors.New("symlink target escapes root directory")
	// ErrInvalidRoot indicates the root path is invalid.
	ErrInvalidRoot = errors.New("invalid root directory")
	// ErrTargetExists indicates a rename destination is already occupied.
	ErrTargetExists = errors.New("target already exists")
)

// Validator ensures paths are contained within a root directory.
type Validator struct {
	root string // Absolute, symlink-resolved, cleaned.
}

// New creates a Validator for root, which must be an existing directory.
func New(root string) (*Validator, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	cleanRoot := filepath.Clean(resolvedRoot)

	info, err := os.Stat(cleanRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidRoot)
	}

	return &Validator{root: cleanRoot}, nil
}

// Root returns the resolved root directory.
func (v *Validator) Root() string {
	return v.root
}

// ValidatePath returns ErrPathEscape if path lies outside the root.
func (v *Validator) ValidatePath(path string) error {
	return v.containsPath(path)
}

// SafeRename renames oldPath to newPath when both stay inside the root and
// newPath is unoccupied. A symlink at oldPath is renamed as a link and its
// target is never inspected; newPath and the source's parent directory must
// not resolve through a symlink leading outside the root.
func (v *Validator) SafeRename(oldPath, newPath string) error {
	if err := v.containsPath(oldPath); err != nil {
		return fmt.Errorf("source %w: %s", err, oldPath)
	}
	if err := v.validatePathForMutation(filepath.Dir(oldPath)); err != nil {
		return fmt.Errorf("source %w: %s", err, oldPath)
	}
	if _, err := os.Lstat(oldPath); err != nil {
		return err
	}
	if err := v.validatePathForMutation(newPath); err != nil {
		return fmt.Errorf("destination %w: %s", err, newPath)
	}

	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, newPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot check destination: %w", err)
	}

	return os.Rename(oldPath, newPath)
}

func (v *Validator) containsPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathEscape)
	}

	if !isSubPath(v.root, filepath.Clean(absPath)) {
		return ErrPathEscape
	}

	return nil
}

// isSubPath checks if child is parent or below it. Both must be absolute and clean.
func isSubPath(parent, child string) bool {
	if parent == child {
		return true
	}

	parentWithSep := parent
	if !strings.HasSuffix(parentWithSep, string(filepath.Separator)) {
		parentWithSep += string(filepath.Separator)
	}

	return strings.HasPrefix(child, parentWithSep)
}

func (v *Validator) validatePathForMutation(path string) error {
	if err := v.containsPath(path); err != nil {
		return err
	}

	resolvedPath, err := resolveExistingPath(path)
	if err != nil {
		return err
	}

	if err := v.containsPath(resolvedPath); err != nil {
		return fmt.Errorf("%w: %s -> %s", ErrSymlinkEscape, path, resolvedPath)
	}

	return nil
}

// resolveExistingPath follows symlinks on the longest existing prefix of path.
func resolveExistingPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("cannot resolve symlinks: %w", err)
	}

	parent := filepath.Dir(absPath)
	if parent == absPath {
		return "", fmt.Errorf("cannot resolve symlinks: %w", err)
	}

	return resolveExistingPath(parent)
}
