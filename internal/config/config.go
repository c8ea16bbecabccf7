package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".jprune.toml"

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds user defaults for the CLI. Command-line flags take precedence.
type Config struct {
	Indent      int    `toml:"indent"`
	Format      string `toml:"format"`
	SampleWidth int    `toml:"sample_width"`
	NoColor     bool   `toml:"no_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Indent:      2,
		Format:      FormatJSON,
		SampleWidth: 48,
	}
}

// Load reads the configuration at path. An empty path means FileName inside
// dir; a missing file there yields Default. An explicit path must exist.
func Load(dir, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	cfg := Default()

	contents, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatJSON, FormatYAML, c.Format)
	}
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	if c.SampleWidth < 8 {
		return fmt.Errorf("sample_width must be at least 8, got %d", c.SampleWidth)
	}
	return nil
}
