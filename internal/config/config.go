// Package config is the single source of truth for imbibed configuration.
// Priority: defaults < config file < environment variables.
package config

// Config mirrors the recognized configuration options of the query/index
// service: db, indexer, app and telemetry sections.
type Config struct {
	Db        DbConfig        `toml:"db"`
	Indexer   IndexerConfig   `toml:"indexer"`
	App       AppConfig       `toml:"app"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type DbConfig struct {
	URL      string `toml:"url"`
	MaxConn  int    `toml:"max_conn"`
}

type IndexerConfig struct {
	NodeURL string `toml:"node_url"`
	Batch   int    `toml:"batch"`
	Workers int    `toml:"workers"`
}

type AppConfig struct {
	Name string `toml:"name"`
}

type TelemetryConfig struct {
	ExporterEndpoint string `toml:"exporter_endpoint"`
	TimeoutMillis    int    `toml:"timeout_millis"`
}

func DefaultConfig() *Config {
	return &Config{
		Db: DbConfig{
			URL:     "postgres://localhost:5432/imbibe?sslmode=disable",
			MaxConn: 10,
		},
		Indexer: IndexerConfig{
			NodeURL: "http://localhost:26657",
			Batch:   50,
			Workers: 4,
		},
		App: AppConfig{
			Name: "imbibed",
		},
		Telemetry: TelemetryConfig{
			ExporterEndpoint: "",
			TimeoutMillis:    5000,
		},
	}
}
