package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	l := NewLoader("")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Db.MaxConn != 10 {
		t.Errorf("expected default max_conn 10, got %d", cfg.Db.MaxConn)
	}
	if cfg.Indexer.Batch != 50 {
		t.Errorf("expected default batch 50, got %d", cfg.Indexer.Batch)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imbibed.toml")
	contents := `
[db]
url = "postgres://example/imbibe"
max_conn = 25

[indexer]
node_url = "http://node:26657"
batch = 100
workers = 8
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Db.URL != "postgres://example/imbibe" {
		t.Errorf("unexpected db.url: %s", cfg.Db.URL)
	}
	if cfg.Indexer.Workers != 8 {
		t.Errorf("unexpected indexer.workers: %d", cfg.Indexer.Workers)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv(EnvIndexerBatch, "7")
	cfg, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Indexer.Batch != 7 {
		t.Errorf("expected env override batch=7, got %d", cfg.Indexer.Batch)
	}
}

func TestValidateRejectsNonPositiveBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Indexer.Batch = 0
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for batch=0")
	}
}
