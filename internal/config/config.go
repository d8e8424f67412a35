// SPDX-License-Identifier: EPL-2.0

// Package config resolves player settings from flags, AUDPLAY_* environment
// variables, an optional .env file and an optional config file, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "AUDPLAY"

const (
	BackendPortAudio = "portaudio"
	BackendWAV       = "wav"
)

const (
	KeyFile       = "file"
	KeyVolume     = "volume"
	KeyBackend    = "backend"
	KeyOutput     = "output"
	KeySampleRate = "sample_rate"
	KeyBlockSize  = "block_size"
	KeyChannels   = "channels"
	KeyTUI        = "tui"
	KeyLogLevel   = "log_level"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrMissingOutput  = errors.New("wav backend needs an output path")
	ErrInvalidValue   = errors.New("invalid value")
)

type Config struct {
	File    string  `mapstructure:"file"`
	Volume  float64 `mapstructure:"volume"`
	Backend string  `mapstructure:"backend"`
	// Output is the file written by the wav backend.
	Output string `mapstructure:"output"`
	// SampleRate, BlockSize and Channels of the backend; 0 picks the
	// backend default.
	SampleRate int    `mapstructure:"sample_rate"`
	BlockSize  int    `mapstructure:"block_size"`
	Channels   int    `mapstructure:"channels"`
	TUI        bool   `mapstructure:"tui"`
	LogLevel   string `mapstructure:"log_level"`
}

func Default() Config {
	return Config{
		File:     "sessions/LRMonoPhase4.wav",
		Volume:   1.0,
		Backend:  BackendPortAudio,
		LogLevel: "info",
	}
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyFile, d.File)
	v.SetDefault(KeyVolume, d.Volume)
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeySampleRate, d.SampleRate)
	v.SetDefault(KeyBlockSize, d.BlockSize)
	v.SetDefault(KeyChannels, d.Channels)
	v.SetDefault(KeyTUI, d.TUI)
	v.SetDefault(KeyLogLevel, d.LogLevel)
}

// LoadDotEnv loads the given .env files into the environment. Missing files
// are skipped and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	return nil
}

// Load reads configFile when set, merges the environment and returns the
// validated result.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Backend = strings.ToLower(cfg.Backend)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	switch c.Backend {
	case BackendPortAudio:
	case BackendWAV:
		if c.Output == "" {
			return ErrMissingOutput
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if c.File == "" {
		return fmt.Errorf("%w: empty file", ErrInvalidValue)
	}
	if math.IsNaN(c.Volume) || math.IsInf(c.Volume, 0) {
		return fmt.Errorf("%w: volume %v", ErrInvalidValue, c.Volume)
	}
	if c.SampleRate < 0 || c.BlockSize < 0 || c.Channels < 0 {
		return fmt.Errorf("%w: negative stream parameter", ErrInvalidValue)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidValue, c.LogLevel)
	}

	return nil
}

// Level is the parsed LogLevel; invalid levels fall back to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
