package ui

// PanelKind enumerates the closed set of dashboard panels. Fetching and
// rendering dispatch over this set; there are no ad hoc callback panels.
type PanelKind int

const (
	PanelStatus PanelKind = iota
	PanelSettings
	PanelRelocations
	PanelRecoveries
)

// PanelSpec is the static descriptor for one panel. Specs are created once
// at startup and never change.
type PanelSpec struct {
	Kind       PanelKind
	Key        string
	Title      string
	Border     string // color name understood by the style table
	AutoHeight bool
	MinHeight  int
}

var panelSpecs = []PanelSpec{
	{
		Kind:       PanelStatus,
		Key:        "status",
		Title:      "Status",
		AutoHeight: true,
		MinHeight:  12,
	},
	{
		Kind:      PanelSettings,
		Key:       "settings",
		Title:     "Cluster settings",
		Border:    "cyan",
		MinHeight: 5,
	},
	{
		Kind:      PanelRelocations,
		Key:       "reloc",
		Title:     "Shards relocation in progress...",
		Border:    "magenta",
		MinHeight: 3,
	},
	{
		Kind:      PanelRecoveries,
		Key:       "recov",
		Title:     "Shards recovery in progress...",
		Border:    "yellow",
		MinHeight: 3,
	},
}

// PanelSpecs returns the static panel set in display order.
func PanelSpecs() []PanelSpec {
	return panelSpecs
}
