package models

const (
	STATS_STORAGE_MEMORY = "memory"
	STATS_STORAGE_REDIS  = "redis"
)

type LogConfig struct {
	ToFile       bool   `yaml:"toFile"`
	FilePath     string `yaml:"filePath"`
	ToStdout     bool   `yaml:"toStdout"`
	Prefix       string `yaml:"prefix"`
	Flags        int    `yaml:"flags"`
	DebugEnabled bool   `yaml:"debugEnabled"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port uint16 `yaml:"port"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type RedisConfig struct {
	Address      string `yaml:"address"`
	Password     string `yaml:"password"`
	DB           *int   `yaml:"db"`
	KeyNamespace string `yaml:"keyNamespace"`
}

type StatsConfig struct {
	Enabled bool         `yaml:"enabled"`
	Path    string       `yaml:"path"`
	Storage string       `yaml:"storage"`
	Redis   *RedisConfig `yaml:"redis"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LoadBearerConfig struct {
	Log     *LogConfig     `yaml:"log"`
	Server  *ServerConfig  `yaml:"server"`
	Metrics *MetricsConfig `yaml:"metrics"`
	Stats   *StatsConfig   `yaml:"stats"`
	Storage *StorageConfig `yaml:"storage"`
}
