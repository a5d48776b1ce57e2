package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultWhitelists(t *testing.T) {
	cfg := Default()

	if len(cfg.Fields.Health) == 0 {
		t.Fatal("default health whitelist is empty")
	}
	if len(cfg.Fields.Settings) == 0 {
		t.Fatal("default settings whitelist is empty")
	}
	if cfg.Poll.Interval() != 5*time.Second {
		t.Fatalf("default poll interval = %v, want 5s", cfg.Poll.Interval())
	}

	found := false
	for _, f := range cfg.Fields.Health {
		if f == "cluster_name" {
			found = true
		}
	}
	if !found {
		t.Fatal("health whitelist must retain cluster_name for the header")
	}
}

func TestIntervalFloor(t *testing.T) {
	p := PollConfig{IntervalSeconds: 0}
	if p.Interval() != time.Second {
		t.Fatalf("zero interval = %v, want floor of 1s", p.Interval())
	}
	p = PollConfig{IntervalSeconds: -3}
	if p.Interval() != time.Second {
		t.Fatalf("negative interval = %v, want floor of 1s", p.Interval())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "esstat.yaml")
	body := []byte("poll:\n  interval_seconds: 10\nui:\n  color: false\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Poll.IntervalSeconds != 10 {
		t.Fatalf("interval = %d, want 10", cfg.Poll.IntervalSeconds)
	}
	if cfg.UI.Color {
		t.Fatal("color should be disabled by overlay")
	}
	// Sections absent from the file keep their defaults.
	if len(cfg.Fields.Settings) == 0 {
		t.Fatal("settings whitelist lost during overlay")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("poll: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
