package engine

import (
	"loadbearer/pkg/metrics"
	"loadbearer/pkg/models"
	"loadbearer/pkg/reactor"
	"loadbearer/pkg/stats"
	"loadbearer/pkg/utils/fs"
	"loadbearer/pkg/utils/hash"
	"loadbearer/pkg/utils/logger"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Engine struct {
	config  *models.LoadBearerConfig
	logger  *logger.Logger
	reactor *reactor.Reactor
	stats   stats.IStatsRecorder
	metrics *metrics.Metrics
	pid     int
}

// InstantiateLoadBearerEngine builds an engine from the config at configPath.
// An empty path means "no config file": the compiled-in defaults (all
// interfaces, port 5000) apply, matching how the server has always run when
// started bare.
func InstantiateLoadBearerEngine(configPath string) *Engine {
	var config models.LoadBearerConfig

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			log.Fatalf("Unable to read the config-path %s: %v", configPath, err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			log.Fatalf("Unable to parse the config at %s: %v", configPath, err)
		}
	}

	applyDefaults(&config)

	if err := resolveStorage(&config, configPath); err != nil {
		log.Fatalf("Unable to resolve storage path: %v", err)
	}

	logger_, err := logger.NewLogger(config.Log)
	if err != nil {
		log.Fatalf("Unable to instantiate the logger: %v", err)
	}

	statsRecorder, err := stats.NewStatsRecorder(config.Stats, logger_)
	if err != nil {
		log.Fatalf("Unable to instantiate the stats recorder: %v", err)
	}

	var metrics_ *metrics.Metrics
	if config.Metrics.Enabled {
		metrics_ = metrics.NewMetrics()
	}

	return &Engine{
		config:  &config,
		logger:  logger_,
		reactor: reactor.New(0),
		stats:   statsRecorder,
		metrics: metrics_,
		pid:     os.Getpid(),
	}
}

// Intelligent defaults
func applyDefaults(config *models.LoadBearerConfig) {
	if config.Server == nil {
		config.Server = &models.ServerConfig{}
	}
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 5000
	}
	if config.Log == nil {
		config.Log = &models.LogConfig{
			ToStdout: true,
			Prefix:   "[LoadBearer]",
			Flags:    0,
		}
	}
	if config.Metrics == nil {
		config.Metrics = &models.MetricsConfig{}
	}
	if config.Metrics.Path == "" {
		config.Metrics.Path = "/metrics"
	}
	if config.Stats == nil {
		config.Stats = &models.StatsConfig{}
	}
	stats.SetDefaults(config.Stats)
}

// resolveStorage fills in the pid-file directory when the config doesn't name
// one: a per-config subdir of the user app-data dir, keyed by a hash of the
// absolute config path so distinct configs never share a pid file.
func resolveStorage(config *models.LoadBearerConfig, configPath string) error {
	if config.Storage != nil && config.Storage.Path != "" {
		return nil
	}

	storageRoot, err := fs.GetUserAppDataDir("loadbearer")
	if err != nil {
		return err
	}

	key := "default"
	if configPath != "" {
		absConfigPath, err := filepath.Abs(configPath)
		if err != nil {
			return err
		}
		key = hash.HashString(absConfigPath)
	}

	config.Storage = &models.StorageConfig{Path: filepath.Join(storageRoot, key)}
	return nil
}
