// Package config provides the run configuration for the batch renamer and
// YAML loading with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"asset-renamer/pkg/mapping"
)

const (
	// DefaultDirectory is the submission assets folder, relative to the
	// working directory.
	DefaultDirectory = "./submission_assets"
	// DirectoryEnvVar overrides DefaultDirectory when set.
	DirectoryEnvVar = "RENAME_ASSETS_DIR"
)

// Validator is implemented by configuration types that can check themselves.
type Validator interface {
	Validate() error
}

// Config is the full input of a rename run.
type Config struct {
	Directory string          `yaml:"directory"`
	Renames   mapping.Mapping `yaml:"renames"`
}

// NewDefault returns the built-in configuration: the hackathon asset mapping
// applied to DefaultDirectory, or to $RENAME_ASSETS_DIR when it is set.
func NewDefault() *Config {
	dir := os.Getenv(DirectoryEnvVar)
	if dir == "" {
		dir = DefaultDirectory
	}

	return &Config{
		Directory: dir,
		Renames:   mapping.Default(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Directory, validation.Required),
	); err != nil {
		return err
	}

	return c.Renames.Validate()
}

// LoadFile layers the mapping file filename over c. Keys absent from the
// file keep their current values. A relative directory in the file is
// resolved against the file's own location, not the working directory.
func (c *Config) LoadFile(filename string) error {
	var file struct {
		Directory *string          `yaml:"directory"`
		Renames   *mapping.Mapping `yaml:"renames"`
	}
	if err := Load(filename, &file); err != nil {
		return err
	}

	if file.Directory != nil {
		dir := *file.Directory
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(filename), dir)
		}
		c.Directory = dir
	}
	if file.Renames != nil {
		c.Renames = *file.Renames
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Load reads a YAML file into target, expanding ${VAR} references first.
// Keys absent from the file keep the values already in target. When target
// implements Validator it is validated after decoding.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}
