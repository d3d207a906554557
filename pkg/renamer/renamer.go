// Package renamer applies a fixed rename mapping to a single directory.
// The directory is listed once; each mapping entry is then renamed, skipped,
// or recorded as failed independently of the others.
package renamer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"asset-renamer/pkg/mapping"
)

var (
	// ErrDirectoryNotFound indicates the target directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrListDirectory indicates the target directory could not be listed.
	ErrListDirectory = errors.New("cannot list directory")
)

// Status describes how a single mapping entry was handled.
type Status string

// Entry outcomes.
const (
	StatusRenamed       Status = "renamed"
	StatusTargetExists  Status = "skipped: target exists"
	StatusSourceMissing Status = "skipped: source missing"
	StatusFailed        Status = "failed"
)

// FS is the filesystem surface the renamer needs. The os package satisfies
// it through localfs.Disk.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Rename(oldPath, newPath string) error
}

// Operation represents the outcome of one mapping entry.
type Operation struct {
	OriginalName string
	NewName      string
	OriginalPath string
	NewPath      string
	Status       Status
	Error        error
}

// Skipped reports whether the entry was bypassed without an error.
func (op Operation) Skipped() bool {
	return op.Status == StatusTargetExists || op.Status == StatusSourceMissing
}

// Result contains the outcome of a full pass.
type Result struct {
	Directory    string
	Snapshot     Snapshot
	Operations   []Operation
	TotalEntries int
	RenamedCount int
	SkippedCount int
	ErrorCount   int
}

// Options configures a Renamer.
type Options struct {
	// OnSnapshot is called once after the directory has been listed.
	OnSnapshot func(dir string, snapshot Snapshot)
	// OnOperation is called after each entry is handled, in mapping order.
	OnOperation func(op Operation)
}

// Renamer performs a single pass of renames over one directory.
type Renamer struct {
	fsys        FS
	onSnapshot  func(dir string, snapshot Snapshot)
	onOperation func(op Operation)
}

// New creates a Renamer backed by fsys.
func New(fsys FS, opts Options) *Renamer {
	return &Renamer{
		fsys:        fsys,
		onSnapshot:  opts.OnSnapshot,
		onOperation: opts.OnOperation,
	}
}

// Run validates dir, snapshots its contents once, and processes every entry
// of m in order. The returned error is non-nil only when dir is missing or
// cannot be listed; in that case nothing has been renamed.
func (r *Renamer) Run(dir string, m mapping.Mapping) (Result, error) {
	result := Result{
		Directory:    dir,
		TotalEntries: len(m),
	}

	if _, err := r.fsys.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return result, fmt.Errorf("%w: %w", ErrListDirectory, err)
	}

	entries, err := r.fsys.ReadDir(dir)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrListDirectory, err)
	}

	result.Snapshot = NewSnapshot(entries)
	if r.onSnapshot != nil {
		r.onSnapshot(dir, result.Snapshot)
	}

	result.Operations = make([]Operation, 0, len(m))
	for _, entry := range m {
		op := r.processEntry(dir, entry, result.Snapshot)
		result.Operations = append(result.Operations, op)

		switch {
		case op.Error != nil:
			result.ErrorCount++
		case op.Skipped():
			result.SkippedCount++
		default:
			result.RenamedCount++
		}

		if r.onOperation != nil {
			r.onOperation(op)
		}
	}

	return result, nil
}

// processEntry handles one mapping entry against the snapshot.
func (r *Renamer) processEntry(dir string, entry mapping.Entry, snapshot Snapshot) Operation {
	op := Operation{
		OriginalName: entry.From,
		NewName:      entry.To,
		OriginalPath: filepath.Join(dir, entry.From),
		NewPath:      filepath.Join(dir, entry.To),
	}

	// Lstat so a dangling symlink still counts as an occupied target.
	if _, err := r.fsys.Lstat(op.NewPath); err == nil {
		op.Status = StatusTargetExists
		return op
	}

	if !snapshot.Has(entry.From) {
		op.Status = StatusSourceMissing
		return op
	}

	if err := r.fsys.Rename(op.OriginalPath, op.NewPath); err != nil {
		op.Status = StatusFailed
		op.Error = err
		return op
	}

	op.Status = StatusRenamed
	return op
}

// Snapshot is the set of entry names present in a directory when it was
// listed. It is never refreshed.
type Snapshot map[string]struct{}

// NewSnapshot builds a snapshot from directory entries.
func NewSnapshot(entries []fs.DirEntry) Snapshot {
	s := make(Snapshot, len(entries))
	for _, entry := range entries {
		s[entry.Name()] = struct{}{}
	}

	return s
}

// Has reports whether name was present at listing time.
func (s Snapshot) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the snapshot contents sorted by name.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
