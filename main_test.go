package main

import (
	"os"
	"path/filepath"
	"testing"

	"esstat/config"
)

func TestResolveConfigFlagOverrides(t *testing.T) {
	cfg, err := resolveConfig("", 30, true)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Poll.IntervalSeconds != 30 {
		t.Errorf("interval = %d, want 30", cfg.Poll.IntervalSeconds)
	}
	if cfg.UI.Color {
		t.Errorf("color not disabled by --no-color")
	}
}

func TestResolveConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esstat.yaml")
	data := "poll:\n  interval_seconds: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(path, 0, false)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Poll.IntervalSeconds != 10 {
		t.Errorf("interval = %d, want 10 from file", cfg.Poll.IntervalSeconds)
	}
	// Untouched sections keep their defaults.
	if len(cfg.Fields.Health) == 0 {
		t.Errorf("health whitelist lost its default")
	}

	if _, err := resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), 0, false); err == nil {
		t.Errorf("missing config file did not error")
	}
}

func TestRunRejectsBadScheme(t *testing.T) {
	if err := run("localhost", 9200, "ftp", config.Default()); err == nil {
		t.Fatalf("bad scheme accepted")
	}
}
