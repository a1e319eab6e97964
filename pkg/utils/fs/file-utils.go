package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetUserAppDataDir returns (and creates if needed) the per-user data
// directory for the given app, e.g. ~/.config/loadbearer on Linux.
func GetUserAppDataDir(appName string) (string, error) {
	var base string

	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support")
	default: // Linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}

	if base == "" {
		return "", fmt.Errorf("could not determine base config path")
	}

	appDataPath := filepath.Join(base, appName)
	if err := os.MkdirAll(appDataPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create app data dir: %w", err)
	}

	return appDataPath, nil
}

func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
