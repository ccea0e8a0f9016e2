package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMaterializesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not materialized: %v", err)
	}

	wantDir := filepath.Dir(path)
	if cfg.Database != filepath.Join(wantDir, "database.json") {
		t.Errorf("Database = %q, want it next to the config file", cfg.Database)
	}
	if cfg.Index != filepath.Join(wantDir, "index.db") {
		t.Errorf("Index = %q, want it next to the config file", cfg.Index)
	}

	// A second load reads the materialized file back.
	again, err := Load("")
	if err != nil {
		t.Fatalf("Load (second): %v", err)
	}
	if *again != *cfg {
		t.Errorf("second Load = %+v, want %+v", again, cfg)
	}
}

func TestLoadExplicitMissingPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded for a missing explicit path")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{Database: "/data/stund.json", Index: "/data/stund.db"}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Errorf("Load = %+v, want %+v", *out, *in)
	}
}

func TestLoadRejectsEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database: \"\"\nindex: /tmp/index.db\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an empty database path")
	}
}
