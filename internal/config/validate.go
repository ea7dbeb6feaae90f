package config

import (
	"fmt"
	"strings"
)

// Validate checks the recognized configuration options: db.max_conn,
// indexer.batch and indexer.workers must be positive, node_url and db.url
// must be set.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Db.URL == "" {
		errs = append(errs, "db.url must not be empty")
	}
	if cfg.Db.MaxConn < 1 {
		errs = append(errs, "db.max_conn must be positive")
	}
	if cfg.Indexer.NodeURL == "" {
		errs = append(errs, "indexer.node_url must not be empty")
	}
	if cfg.Indexer.Batch < 1 {
		errs = append(errs, "indexer.batch must be positive")
	}
	if cfg.Indexer.Workers < 1 {
		errs = append(errs, "indexer.workers must be positive")
	}
	if cfg.Telemetry.TimeoutMillis < 0 {
		errs = append(errs, "telemetry.timeout_millis must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
