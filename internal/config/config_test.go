// SPDX-License-Identifier: EPL-2.0

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "sessions/LRMonoPhase4.wav", cfg.File)
	assert.Equal(t, 1.0, cfg.Volume)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("AUDPLAY_VOLUME", "0.5")
	t.Setenv("AUDPLAY_FILE", "voice.wav")
	t.Setenv("AUDPLAY_SAMPLE_RATE", "44100")
	t.Setenv("AUDPLAY_BACKEND", "WAV")
	t.Setenv("AUDPLAY_OUTPUT", "out.wav")
	t.Setenv("AUDPLAY_TUI", "true")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Volume)
	assert.Equal(t, "voice.wav", cfg.File)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, BackendWAV, cfg.Backend)
	assert.Equal(t, "out.wav", cfg.Output)
	assert.True(t, cfg.TUI)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`file: click.wav
volume: 0
block_size: 256
log_level: debug
`), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "click.wav", cfg.File)
	assert.Zero(t, cfg.Volume)
	assert.Equal(t, 256, cfg.BlockSize)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("volume: 0.25\n"), 0o600))
	t.Setenv("AUDPLAY_VOLUME", "2")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Volume)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"negative volume", func(c *Config) { c.Volume = -1 }, nil},
		{"wav with output", func(c *Config) { c.Backend = BackendWAV; c.Output = "x.wav" }, nil},
		{"wav without output", func(c *Config) { c.Backend = BackendWAV }, ErrMissingOutput},
		{"unknown backend", func(c *Config) { c.Backend = "alsa" }, ErrUnknownBackend},
		{"nan volume", func(c *Config) { c.Volume = math.NaN() }, ErrInvalidValue},
		{"inf volume", func(c *Config) { c.Volume = math.Inf(1) }, ErrInvalidValue},
		{"empty file", func(c *Config) { c.File = "" }, ErrInvalidValue},
		{"negative rate", func(c *Config) { c.SampleRate = -8000 }, ErrInvalidValue},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUDPLAY_VOLUME=0.75\nAUDPLAY_FILE=from-dotenv.wav\n"), 0o600))

	// variables already present win over the file
	t.Setenv("AUDPLAY_FILE", "from-env.wav")
	t.Setenv("AUDPLAY_VOLUME", "")
	require.NoError(t, os.Unsetenv("AUDPLAY_VOLUME"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Volume)
	assert.Equal(t, "from-env.wav", cfg.File)
}
