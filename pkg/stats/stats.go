package stats

import (
	"fmt"
	"loadbearer/pkg/models"
	"loadbearer/pkg/utils/logger"
	"strings"
	"time"
)

// PathStats accumulates per-path request totals.
type PathStats struct {
	Requests int64 `json:"requests"`
	WaitedMs int64 `json:"waitedMs"`
}

// IStatsRecorder defines the interface for request-stat backends.
type IStatsRecorder interface {
	Record(path string, wait time.Duration)
	Snapshot() map[string]PathStats
	Health() error
	Close() error
}

// SetDefaults fills in defaults for any unset fields in the StatsConfig.
func SetDefaults(config *models.StatsConfig) {
	if config == nil {
		return
	}

	if config.Storage == "" {
		config.Storage = models.STATS_STORAGE_MEMORY
	}
	if config.Path == "" {
		config.Path = "/stats"
	}
}

// NewStatsRecorder creates a stats backend based on configuration. A nil or
// disabled config yields a nil recorder, which callers treat as "don't
// record".
func NewStatsRecorder(config *models.StatsConfig, logger *logger.Logger) (IStatsRecorder, error) {
	if config == nil || !config.Enabled {
		return nil, nil
	}

	SetDefaults(config)

	switch strings.ToLower(config.Storage) {
	case models.STATS_STORAGE_MEMORY:
		return NewMemoryStatsRecorder(logger), nil
	case models.STATS_STORAGE_REDIS:
		if config.Redis == nil {
			return nil, fmt.Errorf("redis configuration required for redis stats storage")
		}
		return NewRedisStatsRecorder(config.Redis, logger), nil
	default:
		return nil, fmt.Errorf("unsupported stats storage type: %s", config.Storage)
	}
}
