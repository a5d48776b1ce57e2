package ui

import "esstat/cluster"

// Cache holds the latest snapshot per panel. It is owned by the dashboard
// loop goroutine: every merge replaces values wholesale, so renders always
// see one coherent fetch cycle and never a torn mix of two.
type Cache struct {
	Health      cluster.Health
	Settings    []cluster.Setting
	Recoveries  []cluster.RecoveryRow
	Relocations []cluster.ShardRow

	ready map[PanelKind]bool
	err   string
}

// NewCache returns an empty cache; every panel starts in its not-ready
// placeholder state.
func NewCache() *Cache {
	return &Cache{
		Health: cluster.Health{},
		ready:  make(map[PanelKind]bool),
	}
}

// Merge installs one completed fetch cycle. Panels become ready on their
// first merge even when the payload is the empty default; "ready but empty"
// renders the panel's empty-state text instead of the waiting screen.
func (c *Cache) Merge(res cluster.Result) {
	c.Health = res.Health
	c.Settings = res.Settings
	c.Recoveries = res.Recoveries
	c.Relocations = res.Relocations
	c.err = res.Err

	for _, spec := range PanelSpecs() {
		c.ready[spec.Kind] = true
	}
}

// Ready reports whether the panel has received at least one snapshot.
func (c *Cache) Ready(kind PanelKind) bool {
	return c.ready[kind]
}

// AnyReady reports whether the first fetch cycle has landed; before that the
// dashboard shows the full-screen waiting state.
func (c *Cache) AnyReady() bool {
	return len(c.ready) > 0
}

// Err returns the footer error text from the latest cycle, empty when the
// last cycle was clean.
func (c *Cache) Err() string {
	return c.err
}
