// Package config provides the configuration loader for mdunits.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mdunits/internal/adapters/logger"
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration file version understood by Load.
const SupportedVersion = "1"

// maxPrecision is the number of significant digits that round-trips a float64.
const maxPrecision = 17

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: log}
}

// Load reads the configuration at path. A missing file yields the defaults.
func (l *FileConfigLoader) Load(path string) (*domain.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("no configuration file, using defaults", "path", path)
		return domain.DefaultConfig(), nil
	}
	return Load(path)
}

// Load reads a configuration file from the given path.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.New("unsupported config version"), "version", file.Version)
	}
	if _, err := logger.ParseLevel(file.Log.Level); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if file.Output.Precision < 0 || file.Output.Precision > maxPrecision {
		return nil, zerr.With(zerr.New("output precision out of range"), "precision", file.Output.Precision)
	}

	cfg := domain.DefaultConfig()
	if file.Log.Level != "" {
		cfg.LogLevel = file.Log.Level
	}
	cfg.Precision = file.Output.Precision

	// Definition paths are relative to the config file.
	dir := filepath.Dir(path)
	if file.Definitions.Defaults != "" {
		cfg.DefaultsPath = resolvePath(dir, file.Definitions.Defaults)
	}
	for _, extra := range file.Definitions.Extra {
		cfg.ExtraDefinitions = append(cfg.ExtraDefinitions, resolvePath(dir, extra))
	}

	return cfg, nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
