package main

import (
	"github.com/spf13/cobra"

	"asset-renamer/pkg/config"
)

var (
	targetDir   string
	mappingFile string
	verbose     bool
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename-assets",
		Short: "Rename hackathon submission assets to their final names",
		Long: `rename-assets renames a fixed set of files inside one directory.

The directory is listed once, then every mapping entry is handled in order:
  - target name already exists   -> skipped, nothing is overwritten
  - source name was not listed   -> skipped
  - otherwise the file is renamed; a failed rename is reported and the
    remaining entries are still processed

Default mapping:
  16_16bit_KOK_트랙1-1.pdf  -> 16bit_hackathon_presentation.pdf
  2026_02_09 00_20.mp4     -> demo_video.mp4
  1770564041177.jpg        -> screenshot_1.jpg
  1770564039628.jpg        -> screenshot_2.jpg

Examples:
  # Rename assets in ./submission_assets
  rename-assets

  # Rename assets somewhere else
  rename-assets --dir ~/hackathon/submission_assets

  # Use a different mapping
  rename-assets --mapping renames.yaml

Mapping file format:
  directory: ./submission_assets   # optional
  renames:
    - from: report.pdf
      to: final.pdf

A relative directory in the mapping file is resolved against the file's
location. --dir takes precedence over the file, which takes precedence over
$`+config.DirectoryEnvVar+`.

Exit status is 1 only when the directory is missing or cannot be listed
(or the mapping is invalid). Skipped and failed entries still exit 0.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRename,
	}

	cmd.Flags().StringVarP(&targetDir, "dir", "d", "", "Target directory (default $"+config.DirectoryEnvVar+" or "+config.DefaultDirectory+")")
	cmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "YAML file with the rename mapping")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose diagnostics on stderr")

	return cmd
}
