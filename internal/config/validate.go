package config

import (
	"fmt"
	"slices"
	"strings"
)

// maxVerifierPool caps the pool well above any sensible core count.
const maxVerifierPool = 256

// Validate performs comprehensive validation on the configuration.
func Validate(cfg *Config) error {
	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	if err := validateWorkers(cfg); err != nil {
		return fmt.Errorf("worker validation failed: %w", err)
	}

	return nil
}

func validateLogging(cfg *Config) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "human"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %s", strings.Join(validFormats, ", "))
	}

	return nil
}

func validateWorkers(cfg *Config) error {
	if cfg.Workers.VerifierPool < 1 || cfg.Workers.VerifierPool > maxVerifierPool {
		return fmt.Errorf("workers.verifier_pool must be between 1 and %d", maxVerifierPool)
	}

	return nil
}
