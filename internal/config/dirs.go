package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "pmsrp"

// UserConfigDir returns the OS-specific user configuration directory for pmsrp.
// On Linux: ~/.config/pmsrp
// On macOS: ~/Library/Application Support/pmsrp
// On Windows: %APPDATA%\pmsrp
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, appName), nil
}

// searchPaths lists the files Load tries, in order, when no path is given.
func searchPaths() []string {
	var paths []string
	if dir, err := UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return append(paths, DefaultPath)
}
