package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete dashboard configuration. It is resolved once
// at startup and passed by value to the components that need it; nothing
// mutates it afterwards.
type Config struct {
	Poll   PollConfig   `yaml:"poll"`
	HTTP   HTTPConfig   `yaml:"http"`
	UI     UIConfig     `yaml:"ui"`
	Fields FieldsConfig `yaml:"fields"`
}

// PollConfig controls the data refresh cadence.
type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// HTTPConfig contains transport settings for the Elasticsearch client.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// UIConfig contains terminal rendering settings.
type UIConfig struct {
	Color bool `yaml:"color"`
}

// FieldsConfig holds the response field whitelists. Keys not listed here are
// dropped at the client boundary before anything reaches the UI.
type FieldsConfig struct {
	Health   []string `yaml:"health"`
	Settings []string `yaml:"settings"`
}

// Interval returns the poll interval as a duration, never below one second.
func (p PollConfig) Interval() time.Duration {
	if p.IntervalSeconds < 1 {
		return time.Second
	}
	return time.Duration(p.IntervalSeconds) * time.Second
}

// Timeout returns the per-request HTTP timeout.
func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds < 1 {
		return 5 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration. The whitelists mirror the
// fields the panels actually render; everything else in the cluster health
// and settings responses is noise at dashboard scale.
func Default() Config {
	return Config{
		Poll: PollConfig{IntervalSeconds: 5},
		HTTP: HTTPConfig{TimeoutSeconds: 5},
		UI:   UIConfig{Color: true},
		Fields: FieldsConfig{
			Health: []string{
				"active_primary_shards",
				"active_shards",
				"active_shards_percent_as_number",
				"delayed_unassigned_shards",
				"initializing_shards",
				"number_of_data_nodes",
				"number_of_in_flight_fetch",
				"number_of_nodes",
				"number_of_pending_tasks",
				"relocating_shards",
				"task_max_waiting_in_queue_millis",
				"unassigned_shards",
				"cluster_name",
				"status",
				"timed_out",
			},
			Settings: []string{
				"cluster.name",
				"cluster.routing.allocation.disk.watermark.flood_stage",
				"cluster.routing.allocation.disk.watermark.high",
				"cluster.routing.allocation.disk.watermark.low",
				"cluster.routing.allocation.enable",
				"cluster.routing.allocation.type",
				"cluster.routing.rebalance.enable",
				"indices.recovery.max_bytes_per_sec",
				"cluster.routing.allocation.balance.index",
				"cluster.routing.allocation.balance.shard",
				"cluster.routing.allocation.balance.threshold",
				"cluster.routing.allocation.cluster_concurrent_rebalance",
				"cluster.routing.allocation.node_concurrent_recoveries",
			},
		},
	}
}

// Load reads a YAML configuration file layered over the defaults.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
