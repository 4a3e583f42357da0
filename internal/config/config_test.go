package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Path == "" {
		t.Error("default storage path not filled in")
	}
}

func TestLoadParsesTOML(t *testing.T) {
	path := writeConfig(t, `
debug = true

[storage]
backend = "json"
path = "/tmp/recite.json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug flag not parsed")
	}
	if cfg.Storage.Backend != BackendJSON || cfg.Storage.Path != "/tmp/recite.json" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestLoadFillsPathForChosenBackend(t *testing.T) {
	path := writeConfig(t, "[storage]\nbackend = \"json\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if filepath.Ext(cfg.Storage.Path) != ".json" {
		t.Errorf("path = %q, want a .json default", cfg.Storage.Path)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "[storage]\nbackend = \"cassandra\"\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty config path")
	}
}
