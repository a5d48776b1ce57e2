package ui

import (
	"fmt"
	"strings"

	"esstat/cluster"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// statusRow is one health counter with its severity rule. ok=true renders
// green, ok=false renders red, warn-only rules render yellow when violated.
type statusRow struct {
	label string
	value string
	good  bool
	warn  bool // violated rule is a warning, not a failure
}

// Status renders the cluster state panel.
func (r *Renderer) Status(h cluster.Health, rect Rect, spec PanelSpec) string {
	if rect.Empty() {
		return ""
	}
	if len(h) == 0 {
		return r.emptyBox(spec, "No status retrieved", false, rect)
	}
	return r.boxForSpec(spec, false, r.statusLines(h, rect.W-2), rect)
}

// StatusNaturalHeight reports the panel's natural height: content rows plus
// the two border rows. The layout engine clamps it into the side column.
func (r *Renderer) StatusNaturalHeight(h cluster.Health) int {
	if len(h) == 0 {
		return 5
	}
	return len(r.statusLines(h, 80)) + 2
}

func (r *Renderer) statusLines(h cluster.Health, width int) []string {
	banner := r.styles.statusBanner(h.Str("status")).Render(" " + strings.ToUpper(h.Str("status")) + " ")
	lines := []string{
		"",
		centerLine(banner, width),
		centerLine(r.styles.BoldText.Render(h.Str("cluster_name")), width),
		"",
	}

	groups := []struct {
		name string
		rows []statusRow
	}{
		{"Shards", []statusRow{
			counterRow("Active primary", h.Int("active_primary_shards"), h.Int("active_primary_shards") > 0, false),
			counterRow("Active", h.Int("active_shards"), h.Int("active_shards") > 0, false),
			percentRow("Active as percent", h.Float("active_shards_percent_as_number")),
			counterRow("Initializing", h.Int("initializing_shards"), h.Int("initializing_shards") == 0, true),
			counterRow("Delayed unassigned", h.Int("delayed_unassigned_shards"), h.Int("delayed_unassigned_shards") == 0, true),
			counterRow("Unassigned", h.Int("unassigned_shards"), h.Int("unassigned_shards") == 0, false),
			counterRow("Relocating", h.Int("relocating_shards"), h.Int("relocating_shards") == 0, false),
		}},
		{"Datanodes", []statusRow{
			counterRow("Nodes", h.Int("number_of_nodes"), h.Int("number_of_nodes") > 0, false),
			counterRow("Data nodes", h.Int("number_of_data_nodes"), h.Int("number_of_data_nodes") > 0, false),
		}},
		{"Tasks", []statusRow{
			counterRow("Pending tasks", h.Int("number_of_pending_tasks"), h.Int("number_of_pending_tasks") == 0, true),
			counterRow("Task max waiting in queue", h.Int("task_max_waiting_in_queue_millis"), h.Int("task_max_waiting_in_queue_millis") == 0, true),
		}},
		{"General", []statusRow{
			counterRow("In flight fetch", h.Int("number_of_in_flight_fetch"), h.Int("number_of_in_flight_fetch") == 0, true),
			boolRow("Timed out", h.Bool("timed_out")),
		}},
	}

	for _, g := range groups {
		lines = append(lines, " "+r.styles.BoldText.Render(g.name))
		for _, row := range g.rows {
			lines = append(lines, r.formatStatusRow(row, width))
		}
	}
	return lines
}

func (r *Renderer) formatStatusRow(row statusRow, width int) string {
	labelStyle := r.styles.Good
	if !row.good {
		labelStyle = r.styles.Bad
		if row.warn {
			labelStyle = r.styles.Warn
		}
	}
	value := ljust(row.value, 7)
	line := "   " + r.styles.BoldText.Render(value) + labelStyle.Render(row.label)
	return truncateIfWider(line, width)
}

func counterRow(label string, value int, good, warnOnly bool) statusRow {
	return statusRow{
		label: label,
		value: humanize.Comma(int64(value)),
		good:  good,
		warn:  warnOnly,
	}
}

func percentRow(label string, pct float64) statusRow {
	return statusRow{
		label: label,
		value: fmt.Sprintf("%.2f", pct),
		good:  pct == 100,
	}
}

func boolRow(label string, bad bool) statusRow {
	value := "✓"
	if bad {
		value = "✖"
	}
	return statusRow{label: label, value: value, good: !bad}
}

func ljust(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncateIfWider(line string, width int) string {
	if lipgloss.Width(line) <= width {
		return line
	}
	return truncateStyled(line, width)
}
