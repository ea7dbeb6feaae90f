package config

// FileConfig is the raw imbibed.toml representation. All fields are
// pointers to distinguish "not set" from "set to zero", mirroring the
// devnetd config loader's FileConfig convention.
type FileConfig struct {
	Db        FileDbConfig        `toml:"db"`
	Indexer   FileIndexerConfig   `toml:"indexer"`
	App       FileAppConfig       `toml:"app"`
	Telemetry FileTelemetryConfig `toml:"telemetry"`
}

type FileDbConfig struct {
	URL     *string `toml:"url"`
	MaxConn *int    `toml:"max_conn"`
}

type FileIndexerConfig struct {
	NodeURL *string `toml:"node_url"`
	Batch   *int    `toml:"batch"`
	Workers *int    `toml:"workers"`
}

type FileAppConfig struct {
	Name *string `toml:"name"`
}

type FileTelemetryConfig struct {
	ExporterEndpoint *string `toml:"exporter_endpoint"`
	TimeoutMillis    *int    `toml:"timeout_millis"`
}

func mergeFileConfig(cfg *Config, file *FileConfig) {
	if file.Db.URL != nil {
		cfg.Db.URL = *file.Db.URL
	}
	if file.Db.MaxConn != nil {
		cfg.Db.MaxConn = *file.Db.MaxConn
	}
	if file.Indexer.NodeURL != nil {
		cfg.Indexer.NodeURL = *file.Indexer.NodeURL
	}
	if file.Indexer.Batch != nil {
		cfg.Indexer.Batch = *file.Indexer.Batch
	}
	if file.Indexer.Workers != nil {
		cfg.Indexer.Workers = *file.Indexer.Workers
	}
	if file.App.Name != nil {
		cfg.App.Name = *file.App.Name
	}
	if file.Telemetry.ExporterEndpoint != nil {
		cfg.Telemetry.ExporterEndpoint = *file.Telemetry.ExporterEndpoint
	}
	if file.Telemetry.TimeoutMillis != nil {
		cfg.Telemetry.TimeoutMillis = *file.Telemetry.TimeoutMillis
	}
}
