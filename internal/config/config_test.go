package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks format validations and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config is valid and gets defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)

	// Bad address.
	cfg = &Config{ServerAddress: "bad:address"}
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = &Config{LogLevel: "chatty"}
	require.Error(t, Validate(cfg))

	// Nil config.
	require.Error(t, Validate(nil))
}

// TestLoad_MissingFileUsesDefaults ensures the binaries run without a config file.
func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		ServerAddress: "127.0.0.1:9090",
		LogLevel:      "debug",
		Timeout:       2 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ServerAddress, loaded.ServerAddress)
	require.Equal(t, cfg.LogLevel, loaded.LogLevel)
	require.Equal(t, cfg.Timeout, loaded.Timeout)
}
