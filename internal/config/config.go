package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the optional attribution.toml settings read from the repo
// root. All fields have zero-value defaults so a missing file is fine.
type Config struct {
	// Ignore lists doublestar globs; diff files matching any of them are
	// excluded from attribution.
	Ignore []string `toml:"ignore"`
	// Strict makes the run exit non-zero when any parse warnings were
	// emitted instead of degrading silently.
	Strict bool `toml:"strict"`
}

// ReadConfig loads attribution.toml from dir, returning defaults when the
// file does not exist. A file that exists but cannot be read or decoded also
// yields defaults, alongside the error.
func ReadConfig(dir string) (*Config, error) {
	defaultConfig := &Config{
		Ignore: []string{},
		Strict: false,
	}

	fileName := filepath.Join(dir, "attribution.toml")
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	file, err := os.ReadFile(fileName)
	if err != nil {
		return defaultConfig, err
	}
	config := defaultConfig
	if err := toml.Unmarshal(file, &config); err != nil {
		return &Config{Ignore: []string{}, Strict: false}, err
	}
	return config, nil
}
