package fol

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	if cfg.SubsumeOnAdd {
		t.Fatal("expected SubsumeOnAdd to default to false")
	}
	if cfg.MaxWorkers <= 0 {
		t.Fatalf("expected a positive default MaxWorkers, got %d", cfg.MaxWorkers)
	}
	if cfg.CNFCacheSize <= 0 {
		t.Fatalf("expected a positive default CNFCacheSize, got %d", cfg.CNFCacheSize)
	}
	if cfg.ResolutionLimit != 0 {
		t.Fatalf("expected ResolutionLimit to default to unbounded (0), got %d", cfg.ResolutionLimit)
	}
}

func TestLoadEngineConfig_OverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte("subsumeOnAdd: true\nmaxWorkers: 4\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadEngineConfig(path)
	if err != nil {
		t.Fatalf("LoadEngineConfig: %v", err)
	}
	if !cfg.SubsumeOnAdd {
		t.Fatal("expected subsumeOnAdd to be overridden to true")
	}
	if cfg.MaxWorkers != 4 {
		t.Fatalf("expected maxWorkers overridden to 4, got %d", cfg.MaxWorkers)
	}
	if cfg.CNFCacheSize != DefaultEngineConfig().CNFCacheSize {
		t.Fatalf("expected cnfCacheSize to keep its default, got %d", cfg.CNFCacheSize)
	}
}

func TestLoadEngineConfig_MissingFile(t *testing.T) {
	if _, err := LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
