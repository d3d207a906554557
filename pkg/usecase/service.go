// Package usecase provides application-level orchestration for the CLI.
package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"asset-renamer/pkg/localfs"
	"asset-renamer/pkg/mapping"
	"asset-renamer/pkg/renamer"
)

// ErrEmptyTarget is returned when no target directory was given.
var ErrEmptyTarget = errors.New("target directory is empty")

// Options configures a Service.
type Options struct {
	// FS defaults to the local disk.
	FS renamer.FS
	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Service orchestrates the rename workflow without Cobra dependencies.
type Service struct {
	fsys   renamer.FS
	logger *slog.Logger
}

// New creates a use-case service.
func New(opts Options) *Service {
	fsys := opts.FS
	if fsys == nil {
		fsys = localfs.New()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		fsys:   fsys,
		logger: logger,
	}
}

// RenameRequest contains inputs for the rename workflow.
type RenameRequest struct {
	TargetDir string
	Mapping   mapping.Mapping
	// OnCheck is called with the resolved directory before it is inspected.
	OnCheck func(rootDir string)
	// OnSnapshot and OnOperation are forwarded to the renamer.
	OnSnapshot  func(rootDir string, snapshot renamer.Snapshot)
	OnOperation func(op renamer.Operation)
}

// RenameExecution contains rename workflow outputs.
type RenameExecution struct {
	RootDir  string
	Duration time.Duration
	Result   renamer.Result
}

// RunRename validates the request and applies the mapping to the target
// directory. A returned error wrapping renamer.ErrDirectoryNotFound or
// renamer.ErrListDirectory means nothing was renamed.
func (s *Service) RunRename(req RenameRequest) (RenameExecution, error) {
	if err := req.Mapping.Validate(); err != nil {
		return RenameExecution{}, fmt.Errorf("invalid rename mapping: %w", err)
	}

	rootDir, err := resolveTargetDir(req.TargetDir)
	if err != nil {
		return RenameExecution{}, err
	}

	s.logger.Debug("rename: starting",
		slog.String("dir", rootDir),
		slog.Int("entries", len(req.Mapping)))

	if req.OnCheck != nil {
		req.OnCheck(rootDir)
	}

	r := renamer.New(s.fsys, renamer.Options{
		OnSnapshot: func(dir string, snapshot renamer.Snapshot) {
			s.logger.Debug("rename: snapshot taken", slog.String("dir", dir), slog.Int("entries", len(snapshot)))
			if req.OnSnapshot != nil {
				req.OnSnapshot(dir, snapshot)
			}
		},
		OnOperation: func(op renamer.Operation) {
			s.logOperation(op)
			if req.OnOperation != nil {
				req.OnOperation(op)
			}
		},
	})

	startTime := time.Now()
	result, err := r.Run(rootDir, req.Mapping)
	execution := RenameExecution{
		RootDir:  rootDir,
		Duration: time.Since(startTime),
		Result:   result,
	}
	if err != nil {
		s.logger.Debug("rename: aborted", slog.String("dir", rootDir), slog.String("error", err.Error()))
		return execution, err
	}

	s.logger.Debug("rename: finished",
		slog.Int("renamed", result.RenamedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("errors", result.ErrorCount),
		slog.Duration("took", execution.Duration))

	return execution, nil
}

func (s *Service) logOperation(op renamer.Operation) {
	if op.Error != nil {
		s.logger.Warn("rename: entry failed",
			slog.String("from", op.OriginalPath),
			slog.String("to", op.NewPath),
			slog.String("error", op.Error.Error()))
		return
	}

	s.logger.Debug("rename: entry handled",
		slog.String("from", op.OriginalName),
		slog.String("to", op.NewName),
		slog.String("status", string(op.Status)))
}

func resolveTargetDir(targetDir string) (string, error) {
	if targetDir == "" {
		return "", ErrEmptyTarget
	}

	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	return absPath, nil
}
