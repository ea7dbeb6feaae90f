package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable names, fixed IMBIBED_ prefix.
const (
	EnvDbURL              = "IMBIBED_DB_URL"
	EnvDbMaxConn          = "IMBIBED_DB_MAX_CONN"
	EnvIndexerNodeURL     = "IMBIBED_INDEXER_NODE_URL"
	EnvIndexerBatch       = "IMBIBED_INDEXER_BATCH"
	EnvIndexerWorkers     = "IMBIBED_INDEXER_WORKERS"
	EnvAppName            = "IMBIBED_APP_NAME"
	EnvTelemetryEndpoint  = "IMBIBED_TELEMETRY_EXPORTER_ENDPOINT"
	EnvTelemetryTimeoutMs = "IMBIBED_TELEMETRY_TIMEOUT_MILLIS"
)

// Loader loads a Config from defaults, an optional TOML file, then
// environment variables, in that priority order.
type Loader struct {
	ConfigPath string
}

func NewLoader(configPath string) *Loader {
	return &Loader{ConfigPath: configPath}
}

func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.ConfigPath != "" {
		file, err := l.loadFile()
		if err != nil {
			return nil, err
		}
		if file != nil {
			mergeFileConfig(cfg, file)
		}
	}

	applyEnvVars(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFile() (*FileConfig, error) {
	data, err := os.ReadFile(l.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", l.ConfigPath, err)
	}
	var fileCfg FileConfig
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("invalid TOML in %s: %w", l.ConfigPath, err)
	}
	return &fileCfg, nil
}

func applyEnvVars(cfg *Config) {
	if v := os.Getenv(EnvDbURL); v != "" {
		cfg.Db.URL = v
	}
	if v := os.Getenv(EnvDbMaxConn); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Db.MaxConn = i
		}
	}
	if v := os.Getenv(EnvIndexerNodeURL); v != "" {
		cfg.Indexer.NodeURL = v
	}
	if v := os.Getenv(EnvIndexerBatch); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.Batch = i
		}
	}
	if v := os.Getenv(EnvIndexerWorkers); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Indexer.Workers = i
		}
	}
	if v := os.Getenv(EnvAppName); v != "" {
		cfg.App.Name = v
	}
	if v := os.Getenv(EnvTelemetryEndpoint); v != "" {
		cfg.Telemetry.ExporterEndpoint = v
	}
	if v := os.Getenv(EnvTelemetryTimeoutMs); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Telemetry.TimeoutMillis = i
		}
	}
}
