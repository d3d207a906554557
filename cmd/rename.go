package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"asset-renamer/pkg/config"
	"asset-renamer/pkg/renamer"
	"asset-renamer/pkg/usecase"
)

func runRename(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	execution, err := newUseCaseService().RunRename(usecase.RenameRequest{
		TargetDir: cfg.Directory,
		Mapping:   cfg.Renames,
		OnCheck: func(rootDir string) {
			fmt.Printf("Checking directory: %s\n", rootDir)
		},
		OnSnapshot: func(_ string, snapshot renamer.Snapshot) {
			fmt.Printf("Files found: %q\n", snapshot.Names())
			fmt.Println()
		},
		OnOperation: printRenameOperation,
	})
	if err != nil {
		switch {
		case errors.Is(err, renamer.ErrDirectoryNotFound):
			fmt.Printf("Directory not found: %s\n", execution.RootDir)
		case errors.Is(err, renamer.ErrListDirectory):
			fmt.Printf("Error listing directory: %v\n", err)
		}
		return err
	}

	result := execution.Result

	fmt.Println()
	printSummary(
		fmt.Sprintf("Total entries: %d", result.TotalEntries),
		fmt.Sprintf("Renamed:       %d", result.RenamedCount),
		fmt.Sprintf("Skipped:       %d", result.SkippedCount),
		fmt.Sprintf("Errors:        %d", result.ErrorCount),
	)

	return nil
}

// loadConfig layers the built-in defaults, the optional mapping file and
// the --dir flag, in that order.
func loadConfig() (*config.Config, error) {
	cfg := config.NewDefault()

	if mappingFile != "" {
		if err := cfg.LoadFile(mappingFile); err != nil {
			return nil, err
		}
	}

	if targetDir != "" {
		cfg.Directory = targetDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newUseCaseService() *usecase.Service {
	return usecase.New(usecase.Options{
		Logger: newLogger(),
	})
}

func newLogger() *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printRenameOperation(op renamer.Operation) {
	switch op.Status {
	case renamer.StatusRenamed:
		fmt.Printf("RENAMED: %s -> %s\n", op.OriginalName, op.NewName)
	case renamer.StatusTargetExists:
		fmt.Printf("SKIP: %s (target %s already exists)\n", op.OriginalName, op.NewName)
	case renamer.StatusSourceMissing:
		fmt.Printf("SKIP: %s (source not found)\n", op.OriginalName)
	case renamer.StatusFailed:
		fmt.Printf("ERROR: %s -> %s: %v\n", op.OriginalName, op.NewName, op.Error)
	}
}

func printSummary(lines ...string) {
	fmt.Println("=== Summary ===")
	for _, line := range lines {
		fmt.Println(line)
	}
}
