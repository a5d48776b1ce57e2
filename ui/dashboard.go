// Package ui implements the dashboard: the coordination loop interleaving
// polls, key input and rendering, the layout engine, and the panel
// renderers.
//
// All mutable state (mode, selection, snapshot cache, countdown) is owned by
// the single Run goroutine. Fetch cycles and the key listener run
// concurrently but communicate exclusively through channels, so no locks
// guard the state.
package ui

import (
	"context"
	"strings"
	"time"

	"esstat/cluster"
	"esstat/input"

	"github.com/charmbracelet/lipgloss"
)

// DataSource is the collaborator delivering snapshot cycles. It never fails:
// errors degrade to empty defaults inside the Result.
type DataSource interface {
	FetchAll(ctx context.Context) cluster.Result
}

// Dashboard drives the whole terminal UI.
type Dashboard struct {
	source   DataSource
	renderer *Renderer
	layout   Layout
	frame    *FrameWriter
	cache    *Cache
	sm       StateMachine

	keys     <-chan input.Event
	interval int // poll interval in seconds

	countdown int  // seconds until the next fetch cycle
	fetching  bool // one cycle may be outstanding at a time

	// frozen holds a copy of the cache taken when Help opens, so panels
	// stop moving under the shortcut list while polls continue.
	frozen *Cache

	size func() (width, height int)
	now  func() time.Time
}

// NewDashboard wires the dashboard together. keys may be nil for the
// degraded input-less mode; size and now exist as fields for tests and
// default to the real terminal and clock.
func NewDashboard(source DataSource, renderer *Renderer, frame *FrameWriter, keys <-chan input.Event, pollInterval time.Duration) *Dashboard {
	secs := int(pollInterval / time.Second)
	if secs < 1 {
		secs = 1
	}
	return &Dashboard{
		source:   source,
		renderer: renderer,
		layout:   DefaultLayout(),
		frame:    frame,
		cache:    NewCache(),
		keys:     keys,
		interval: secs,
		size:     input.TerminalSize,
		now:      time.Now,
	}
}

// Run executes the coordination loop until a quit key arrives or the context
// is cancelled. One iteration drains pending key events, merges at most one
// completed fetch cycle, advances the countdown, and repaints.
func (d *Dashboard) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	polls := make(chan cluster.Result, 1)
	d.countdown = d.interval

	startFetch := func() {
		d.fetching = true
		go func() {
			polls <- d.source.FetchAll(ctx)
		}()
	}

	// First cycle fires immediately; the UI shows the waiting screen until
	// it lands.
	startFetch()
	d.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-d.keys:
			if !ok {
				// Input stream ended (stdin EOF); keep polling and rendering.
				d.keys = nil
				continue
			}
			if d.applyKeys(ev) {
				return nil
			}
			d.draw()

		case res := <-polls:
			d.fetching = false
			d.cache.Merge(res)
			d.sm.ClampSelection(len(d.cache.Settings))
			d.countdown = d.interval
			d.draw()

		case <-ticker.C:
			if !d.fetching && d.sm.Mode() != ModePaused {
				d.countdown--
				if d.countdown <= 0 {
					startFetch()
				}
			}
			d.draw()
		}
	}
}

// applyKeys applies one key event plus everything else already queued, in
// arrival order, before the next repaint. Reports whether quit was pressed.
func (d *Dashboard) applyKeys(first input.Event) bool {
	ev := first
	for {
		before := d.sm.Mode()
		if d.sm.Apply(ev, len(d.cache.Settings)) {
			return true
		}
		d.trackHelpFreeze(before)

		select {
		case next, ok := <-d.keys:
			if !ok {
				d.keys = nil
				return false
			}
			ev = next
		default:
			return false
		}
	}
}

// trackHelpFreeze snapshots or releases the frozen cache on Help
// transitions. While Help is open the panels render from the frozen copy;
// polls keep updating the live cache invisibly.
func (d *Dashboard) trackHelpFreeze(before Mode) {
	after := d.sm.Mode()
	if before != ModeHelp && after == ModeHelp {
		frozen := *d.cache
		d.frozen = &frozen
	}
	if before == ModeHelp && after != ModeHelp {
		d.frozen = nil
	}
}

// draw composes and paints one frame from the current state.
func (d *Dashboard) draw() {
	d.frame.Draw(d.compose())
}

// compose renders the full frame string for the current terminal size.
func (d *Dashboard) compose() string {
	width, height := d.size()
	if width <= 0 || height <= 0 {
		return ""
	}
	if !d.cache.AnyReady() {
		return d.renderer.Waiting(width, height)
	}

	view := d.cache
	if d.sm.Mode() == ModeHelp && d.frozen != nil {
		view = d.frozen
	}

	errMsg := d.cache.Err()
	geom := d.layout.Compute(width, height, d.renderer.StatusNaturalHeight(view.Health), errMsg != "")

	specs := specsByKind()

	var statusBlock string
	if d.sm.Mode() == ModeHelp {
		statusBlock = d.renderer.Help(geom.Status)
	} else {
		statusBlock = d.renderer.Status(view.Health, geom.Status, specs[PanelStatus])
	}

	editMode := d.sm.Mode() == ModeEdit
	settingsBlock := d.renderer.Settings(view.Settings, editMode, d.sm.Selected(), geom.Settings, specs[PanelSettings])

	state := CountdownTicking
	switch {
	case d.sm.Mode() == ModePaused:
		state = CountdownPaused
	case d.fetching:
		state = CountdownRefreshing
	}
	secs := d.countdown
	if secs < 0 {
		secs = 0
	}
	countdownBlock := d.renderer.Countdown(state, secs, geom.Countdown)

	relocBlock := d.renderer.Relocations(view.Relocations, geom.Reloc, specs[PanelRelocations])
	recovBlock := d.renderer.Recoveries(view.Recoveries, geom.Recov, specs[PanelRecoveries])

	side := joinVertical(statusBlock, settingsBlock, countdownBlock)
	body := joinVertical(relocBlock, recovBlock)
	main := lipgloss.JoinHorizontal(lipgloss.Top, side, body)

	parts := []string{
		d.renderer.Header(view.Health.Str("cluster_name"), d.now(), geom.Header),
		main,
	}
	if !geom.Footer.Empty() {
		parts = append(parts, d.renderer.Footer(errMsg, geom.Footer))
	}
	return joinVertical(parts...)
}

func specsByKind() map[PanelKind]PanelSpec {
	m := make(map[PanelKind]PanelSpec, len(panelSpecs))
	for _, s := range panelSpecs {
		m[s.Kind] = s
	}
	return m
}

func joinVertical(blocks ...string) string {
	nonEmpty := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			nonEmpty = append(nonEmpty, b)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
