// Package config loads playbackctl settings from defaults, an optional .env
// file, an optional YAML file and PLAYBACK_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/enetx/playback"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PLAYBACK_"

var (
	ErrInvalidInitialState = errors.New("config: initial state must be an occupiable state")
	ErrInvalidLogFormat    = errors.New("config: log format must be \"json\" or \"console\"")
	ErrInvalidLogLevel     = errors.New("config: invalid log level")
)

// Config describes a simulated playback session.
type Config struct {
	// InitialState is the state the machine starts in.
	InitialState playback.State `env:"INITIAL_STATE" yaml:"initial_state"`
	// Autoplay starts playback as soon as the media is prepared.
	Autoplay bool `env:"AUTOPLAY" yaml:"autoplay"`
	// Downloaded marks the media as available locally.
	Downloaded bool `env:"DOWNLOADED" yaml:"downloaded"`
	// AutoAdvance makes the simulated player complete downloads and
	// preparation immediately by posting the follow-up event.
	AutoAdvance bool `env:"AUTO_ADVANCE" yaml:"auto_advance"`

	LogLevel  string `env:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string `env:"LOG_FORMAT" yaml:"log_format"`

	MetricsNamespace string `env:"METRICS_NAMESPACE" yaml:"metrics_namespace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InitialState:     playback.StateStopped,
		Autoplay:         true,
		AutoAdvance:      true,
		LogLevel:         "info",
		LogFormat:        "console",
		MetricsNamespace: "playbackctl",
	}
}

// Load builds the configuration. A missing .env file is not an error; a
// missing YAML file is, when path is not empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the player cannot use.
func (c Config) Validate() error {
	if !c.InitialState.IsLeaf() {
		return fmt.Errorf("%w: %q", ErrInvalidInitialState, c.InitialState)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Join(ErrInvalidLogLevel, err)
	}

	return nil
}
