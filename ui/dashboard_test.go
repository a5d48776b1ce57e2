package ui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"esstat/cluster"
	"esstat/input"
)

type staticSource struct {
	res cluster.Result
}

func (s staticSource) FetchAll(context.Context) cluster.Result {
	return s.res
}

func testClock() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func newTestDashboard(res cluster.Result) *Dashboard {
	d := NewDashboard(staticSource{res: res}, NewRenderer("esstat", false), NewFrameWriter(io.Discard), nil, 5*time.Second)
	d.size = func() (int, int) { return 160, 50 }
	d.now = testClock
	return d
}

func greenResult() cluster.Result {
	return cluster.Result{
		Health: cluster.Health{"cluster_name": "prod-es", "status": "green"},
		Settings: []cluster.Setting{
			{Key: "cluster.routing.allocation.enable", Value: "all"},
			{Key: "cluster.routing.rebalance.enable", Value: "all"},
		},
	}
}

func TestComposeWaitsForFirstCycle(t *testing.T) {
	d := newTestDashboard(greenResult())

	frame := d.compose()
	if !strings.Contains(frame, "Waiting for data from Elasticsearch...") {
		t.Fatalf("waiting screen missing before first merge:\n%s", frame)
	}

	d.cache.Merge(greenResult())
	frame = d.compose()
	if strings.Contains(frame, "Waiting for data") {
		t.Fatalf("waiting screen still shown after merge")
	}
	for _, want := range []string{"prod-es", "Cluster settings", "Shards relocation in progress...", "Shards recovery in progress..."} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestComposeEmptyPanelsShowPlaceholders(t *testing.T) {
	d := newTestDashboard(cluster.Result{})
	d.cache.Merge(cluster.Result{Health: cluster.Health{"cluster_name": "prod-es"}})

	frame := d.compose()
	for _, want := range []string{"No settings retrieved", "No active shards relocation", "No ongoing shards recovery"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestComposeFooterOnError(t *testing.T) {
	d := newTestDashboard(cluster.Result{})
	d.cache.Merge(cluster.Result{Err: "dial tcp 10.0.0.1:9200: connection refused"})

	frame := d.compose()
	if !strings.Contains(frame, "connection refused") {
		t.Fatalf("footer message missing:\n%s", frame)
	}

	d.cache.Merge(greenResult())
	if strings.Contains(d.compose(), "connection refused") {
		t.Fatalf("footer survived a clean cycle")
	}
}

func TestComposeCountdownStates(t *testing.T) {
	d := newTestDashboard(greenResult())
	d.cache.Merge(greenResult())
	d.countdown = 4

	if !strings.Contains(d.compose(), "Next refresh in 4 seconds") {
		t.Fatalf("ticking countdown missing")
	}

	d.fetching = true
	if !strings.Contains(d.compose(), "Refreshing data...") {
		t.Fatalf("refreshing state missing")
	}
	d.fetching = false

	d.applyKeys(input.Event{Key: input.KeyRune, Rune: 'p'})
	if !strings.Contains(d.compose(), "PAUSED") {
		t.Fatalf("paused state missing")
	}
}

func TestHelpFreezesView(t *testing.T) {
	d := newTestDashboard(greenResult())
	d.cache.Merge(greenResult())

	d.applyKeys(input.Event{Key: input.KeyRune, Rune: 'h'})
	frame := d.compose()
	if !strings.Contains(frame, "Shortcuts") {
		t.Fatalf("help panel missing")
	}

	// Cycles still land in the live cache while help is open, but the view
	// stays pinned to the snapshot taken when help opened.
	d.cache.Merge(cluster.Result{Health: cluster.Health{"cluster_name": "other-cluster"}})
	frame = d.compose()
	if !strings.Contains(frame, "prod-es") || strings.Contains(frame, "other-cluster") {
		t.Fatalf("help view not frozen:\n%s", frame)
	}

	d.applyKeys(input.Event{Key: input.KeyRune, Rune: 'h'})
	frame = d.compose()
	if strings.Contains(frame, "Shortcuts") || !strings.Contains(frame, "other-cluster") {
		t.Fatalf("closing help did not restore the live view")
	}
}

func TestComposeEditMode(t *testing.T) {
	d := newTestDashboard(greenResult())
	d.cache.Merge(greenResult())

	d.applyKeys(input.Event{Key: input.KeyRune, Rune: 'e'})
	if d.sm.Mode() != ModeEdit {
		t.Fatalf("mode = %v, want edit", d.sm.Mode())
	}
	if !strings.Contains(d.compose(), "[EDIT MODE]") {
		t.Fatalf("edit marker missing from settings title")
	}
}

func TestApplyKeysQuit(t *testing.T) {
	d := newTestDashboard(greenResult())
	if !d.applyKeys(input.Event{Key: input.KeyCtrlC}) {
		t.Fatalf("ctrl-c did not quit")
	}
	if !d.applyKeys(input.Event{Key: input.KeyRune, Rune: 'q'}) {
		t.Fatalf("q did not quit")
	}
}

func TestRunPausedSkipsFetch(t *testing.T) {
	calls := make(chan struct{}, 16)
	src := countingSource{calls: calls}

	keys := make(chan input.Event, 4)
	d := NewDashboard(src, NewRenderer("esstat", false), NewFrameWriter(io.Discard), keys, time.Second)
	d.size = func() (int, int) { return 160, 50 }
	d.now = testClock

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	// The first cycle fires immediately.
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("initial fetch never started")
	}

	keys <- input.Event{Key: input.KeyRune, Rune: 'p'}
	// Paused: the one-second countdown stops, so the refresh that would
	// otherwise fire within the wait below never starts.
	select {
	case <-calls:
		t.Fatal("fetch started while paused")
	case <-time.After(2500 * time.Millisecond):
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

type countingSource struct {
	calls chan struct{}
}

func (s countingSource) FetchAll(context.Context) cluster.Result {
	s.calls <- struct{}{}
	return cluster.Result{Health: cluster.Health{"cluster_name": "prod-es"}}
}
