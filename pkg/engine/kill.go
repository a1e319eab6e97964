package engine

import (
	"fmt"
	"loadbearer/pkg/models"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"gopkg.in/yaml.v3"
)

// KillLoadBearer signals the running server started from the same config.
// The pid file lives under the config's storage dir, resolved the same way
// the engine resolves it on startup.
func KillLoadBearer(configPath string) error {
	var config models.LoadBearerConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := resolveStorage(&config, configPath); err != nil {
		return fmt.Errorf("failed to resolve storage path: %w", err)
	}

	pidPath := filepath.Join(config.Storage.Path, pidFileName)
	pidData, err := os.ReadFile(pidPath)
	if err != nil {
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(string(pidData))
	if err != nil {
		return fmt.Errorf("invalid PID content in %s: %w", pidPath, err)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process with PID %d: %w", pid, err)
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM to process %d: %w", pid, err)
	}

	return nil
}
