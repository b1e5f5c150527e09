package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mdunits/internal/adapters/config"
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdunits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `version: "1"
definitions:
  defaults: units/base.yaml
  extra:
    - extra.yaml
    - /abs/more.yaml
log:
  level: debug
output:
  precision: 6
`)
	dir := filepath.Dir(path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "units", "base.yaml"), cfg.DefaultsPath)
	assert.Equal(t, []string{filepath.Join(dir, "extra.yaml"), "/abs/more.yaml"}, cfg.ExtraDefinitions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Precision)
}

func TestLoad_Minimal(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "version: \"1\"\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "version: [1"},
		{"unsupported version", "version: \"2\"\n"},
		{"unknown log level", "log:\n  level: chatty\n"},
		{"negative precision", "output:\n  precision: -1\n"},
		{"precision too large", "output:\n  precision: 30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestFileConfigLoader_MissingFileUsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug("no configuration file, using defaults", "path", gomock.Any())

	loader := config.NewLoader(mockLogger)
	cfg, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestFileConfigLoader_PropagatesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	_, err := loader.Load(writeConfig(t, "version: \"9\"\n"))
	require.Error(t, err)
}
