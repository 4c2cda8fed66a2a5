// Package config provides configuration loading and validation for pmsrp.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the system-wide configuration file. Without an explicit path,
// Load reads the user's config.yaml under UserConfigDir, then DefaultPath,
// and falls back to defaults when neither exists.
const DefaultPath = "/etc/pmsrp/config.yaml"

// Environment variables that override file settings.
const (
	EnvLogLevel  = "PMSRP_LOG_LEVEL"
	EnvLogFormat = "PMSRP_LOG_FORMAT"
	EnvWorkers   = "PMSRP_WORKERS"
)

// Config represents the pmsrp configuration.
type Config struct {
	Logging LoggingSettings `yaml:"logging"`
	Workers WorkerSettings  `yaml:"workers"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WorkerSettings bounds CPU-heavy batch work.
type WorkerSettings struct {
	// VerifierPool is the number of verifiers generated concurrently.
	VerifierPool int `yaml:"verifier_pool"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
		Workers: WorkerSettings{
			VerifierPool: runtime.NumCPU(),
		},
	}
}

// Load reads the configuration file at path over the defaults, applies
// environment overrides and validates the result. An empty path searches the
// user and system locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// readConfigFile returns the contents of path, or of the first existing search
// path when path is empty. It returns nil data when nothing was found.
//
//nolint:gosec // G304: Config path is from command-line argument
func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return data, nil
	}

	for _, candidate := range searchPaths() {
		data, err := os.ReadFile(candidate)
		switch {
		case err == nil:
			return data, nil
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil, nil
}

func (c *Config) applyEnv() error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}

	if format := os.Getenv(EnvLogFormat); format != "" {
		c.Logging.Format = format
	}

	if workers := os.Getenv(EnvWorkers); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		c.Workers.VerifierPool = n
	}

	return nil
}
