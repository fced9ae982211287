// Package config loads the settings of the email-cleanse command from an
// optional YAML file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the YAML configuration.
const (
	EnvLogLevel      = "EMAIL_CLEANSE_LOG_LEVEL"
	EnvMinConfidence = "EMAIL_CLEANSE_MIN_CONFIDENCE"
)

// Config holds the complete command configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Decode  DecodeConfig  `yaml:"decode"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DecodeConfig holds settings for header and part decoding.
type DecodeConfig struct {
	// MinConfidence is the lowest charset detection confidence (0 to 100)
	// accepted when a declared charset fails.
	MinConfidence int `yaml:"min_confidence"`

	// AttachmentHeaders lists the header fields kept on attachments. When
	// empty, the walker defaults are used.
	AttachmentHeaders []string `yaml:"attachment_headers"`
}

// OutputConfig holds settings for the JSON output.
type OutputConfig struct {
	Indent bool `yaml:"indent"`
}

// Load returns the default configuration with environment overrides applied.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults,
// then applies environment overrides. It fails if the file cannot be read or
// parsed.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnvVars(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SlogLevel returns the configured log level. Unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) applyDefaults() {
	c.Logging.Level = "warn"
	c.Decode.MinConfidence = 10
}

// applyEnvVars overrides configuration with environment variable values. Only
// non-empty variables override existing values.
func (c *Config) applyEnvVars() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvMinConfidence); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", EnvMinConfidence, err)
		}
		c.Decode.MinConfidence = n
	}

	return nil
}
