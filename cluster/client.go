// Package cluster implements the Elasticsearch client feeding the dashboard.
//
// Every query returns a plain snapshot filtered down to the whitelisted
// fields, or its empty default when the node is unreachable or answers with
// a non-200 status. Transport errors never propagate as failures: the caller
// gets the empty default plus an error that is only ever used as footer text.
package cluster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"esstat/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Health is the whitelist-filtered _cluster/health response. Missing keys
// read as zero values so renderers never have to guard lookups.
type Health map[string]any

// Str returns the named field as a string.
func (h Health) Str(key string) string {
	v, ok := h[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the named field as an integer. JSON numbers decode as float64.
func (h Health) Int(key string) int {
	switch v := h[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Float returns the named field as a float64.
func (h Health) Float(key string) float64 {
	switch v := h[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the named field as a bool.
func (h Health) Bool(key string) bool {
	v, _ := h[key].(bool)
	return v
}

// Setting is one flattened cluster setting key/value pair.
type Setting struct {
	Key   string
	Value string
}

// RecoveryRow is one active shard recovery from _cat/recovery.
type RecoveryRow struct {
	Index           string `json:"index"`
	Shard           string `json:"shard"`
	Stage           string `json:"stage"`
	SourceNode      string `json:"source_node"`
	TargetNode      string `json:"target_node"`
	FilesPercent    string `json:"files_percent"`
	BytesPercent    string `json:"bytes_percent"`
	TranslogPercent string `json:"translog_ops_percent"`
}

// ShardRow is one shard from _cat/shards with the node field already split
// into relocation source and target.
type ShardRow struct {
	Index  string `json:"index"`
	Shard  string `json:"shard"`
	Prirep string `json:"prirep"`
	State  string `json:"state"`
	Store  string `json:"store"`
	Docs   string `json:"docs"`
	IP     string `json:"ip"`
	Node   string `json:"node"`
	Source string `json:"-"`
	Target string `json:"-"`
}

// Result bundles one complete fetch cycle. Err carries the first failure as
// display text; the individual snapshots are always usable.
type Result struct {
	Health      Health
	Settings    []Setting
	Recoveries  []RecoveryRow
	Relocations []ShardRow
	Err         string
}

// Client queries a single Elasticsearch node over HTTP.
type Client struct {
	base           string
	http           *http.Client
	healthFields   map[string]struct{}
	settingsFields map[string]struct{}
}

// New builds a client for scheme://host:port using the whitelists and
// timeout from cfg.
func New(host string, port int, scheme string, cfg config.Config) *Client {
	return &Client{
		base:           fmt.Sprintf("%s://%s:%d", scheme, host, port),
		http:           &http.Client{Timeout: cfg.HTTP.Timeout()},
		healthFields:   fieldSet(cfg.Fields.Health),
		settingsFields: fieldSet(cfg.Fields.Settings),
	}
}

func fieldSet(fields []string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// get fetches one endpoint and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	return nil
}

// Health returns the whitelisted cluster health fields, or an empty map.
func (c *Client) Health(ctx context.Context) (Health, error) {
	raw := map[string]any{}
	if err := c.get(ctx, "_cluster/health", &raw); err != nil {
		return Health{}, fmt.Errorf("cluster health: %w", err)
	}
	out := Health{}
	for k, v := range raw {
		if _, ok := c.healthFields[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Settings returns the whitelisted cluster settings sorted by key, merging
// defaults, persistent and transient sections in that order of precedence.
func (c *Client) Settings(ctx context.Context) ([]Setting, error) {
	var raw struct {
		Defaults   map[string]any `json:"defaults"`
		Persistent map[string]any `json:"persistent"`
		Transient  map[string]any `json:"transient"`
	}
	err := c.get(ctx, "_cluster/settings?include_defaults=true&flat_settings=true", &raw)
	if err != nil {
		return nil, fmt.Errorf("cluster settings: %w", err)
	}

	merged := map[string]any{}
	for _, section := range []map[string]any{raw.Defaults, raw.Persistent, raw.Transient} {
		for k, v := range section {
			merged[k] = v
		}
	}

	out := make([]Setting, 0, len(c.settingsFields))
	for k, v := range merged {
		if _, ok := c.settingsFields[k]; ok {
			out = append(out, Setting{Key: k, Value: fmt.Sprint(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Recoveries returns the active shard recoveries, or an empty slice.
func (c *Client) Recoveries(ctx context.Context) ([]RecoveryRow, error) {
	var rows []RecoveryRow
	err := c.get(ctx, "_cat/recovery?active_only=true&format=json", &rows)
	if err != nil {
		return nil, fmt.Errorf("shard recovery: %w", err)
	}
	return rows, nil
}

// Relocations returns the shards that are not in STARTED state. A node field
// of the form "source -> target" is split into the two endpoints; otherwise
// the node is the source and the target stays empty.
func (c *Client) Relocations(ctx context.Context) ([]ShardRow, error) {
	var rows []ShardRow
	err := c.get(ctx, "_cat/shards?v=true&format=json", &rows)
	if err != nil {
		return nil, fmt.Errorf("shard relocation: %w", err)
	}

	out := rows[:0]
	for _, row := range rows {
		if src, dst, ok := strings.Cut(row.Node, "->"); ok {
			row.Source = strings.TrimSpace(src)
			row.Target = strings.TrimSpace(dst)
		} else {
			row.Source = row.Node
		}
		if row.State == "STARTED" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// FetchAll runs the four panel queries concurrently and merges them into a
// single Result. Individual failures degrade to empty defaults; the first
// error message is kept for the footer.
func (c *Client) FetchAll(ctx context.Context) Result {
	var (
		res  Result
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		h, err := c.Health(ctx)
		res.Health = h
		record(err)
	}()
	go func() {
		defer wg.Done()
		s, err := c.Settings(ctx)
		res.Settings = s
		record(err)
	}()
	go func() {
		defer wg.Done()
		r, err := c.Recoveries(ctx)
		res.Recoveries = r
		record(err)
	}()
	go func() {
		defer wg.Done()
		r, err := c.Relocations(ctx)
		res.Relocations = r
		record(err)
	}()
	wg.Wait()

	if len(errs) > 0 {
		res.Err = errs[0].Error()
	}
	return res
}

// Base returns the node URL the client talks to, for the startup log line.
func (c *Client) Base() string {
	return c.base
}
