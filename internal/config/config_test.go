package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/jsmangle/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "explicit config path must exist")
	assert.Nil(t, cfg)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jsmangle.yaml")
	content := []byte("output:\n  format: json\n  color: false\nanalysis:\n  workers: 4\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "unset keys keep defaults")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:    "bad format",
			mutate:  func(c *config.Config) { c.Output.Format = "yaml" },
			wantErr: config.ErrInvalidFormat,
		},
		{
			name:    "negative workers",
			mutate:  func(c *config.Config) { c.Analysis.Workers = -1 },
			wantErr: config.ErrInvalidWorkers,
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "trace" },
			wantErr: config.ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{
				Output:  config.OutputConfig{Format: "text", Color: true},
				Logging: config.LoggingConfig{Level: "info", Format: "text"},
			}
			tt.mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
