package ui

import (
	"strings"

	"esstat/cluster"
)

// Settings renders the cluster settings panel: the key/value table with
// abbreviated keys, the abbreviation legend, and the edit-mode highlight.
func (r *Renderer) Settings(rows []cluster.Setting, editMode bool, selected int, rect Rect, spec PanelSpec) string {
	if rect.Empty() {
		return ""
	}
	if len(rows) == 0 {
		return r.emptyBox(spec, "No settings retrieved", editMode, rect)
	}

	cw := rect.W - 2
	ch := rect.H - 2

	cells := make([][]cell, 0, len(rows))
	for i, s := range rows {
		key := plainCell(r.shortenKey(s.Key))
		val := plainCell(s.Value)
		if editMode && i == selected {
			key.style = r.styles.Selected
			val.style = r.styles.Selected
		}
		cells = append(cells, []cell{key, val})
	}

	// Reserve room for the legend when the panel is tall enough.
	legend := r.legendLines(cw)
	maxRows := ch - 1 // header line
	if ch > len(legend)+6 {
		maxRows -= len(legend)
	} else {
		legend = nil
	}

	lines := r.renderTable([]string{"Setting", "Value"}, cells, cw, maxRows)
	lines = append(lines, legend...)
	return r.boxForSpec(spec, editMode, lines, rect)
}

// shortenKey compresses a dotted settings key using the abbreviation list,
// keeping long keys readable inside the narrow side column.
func (r *Renderer) shortenKey(key string) string {
	for _, a := range r.abbrevs {
		key = strings.ReplaceAll(key, a.Word, a.Short)
	}
	return key
}

// legendLines renders the abbreviation legend, two mappings per line.
func (r *Renderer) legendLines(width int) []string {
	lines := []string{"", r.styles.BoldText.Render(" Legend")}
	for i := 0; i < len(r.abbrevs); i += 2 {
		left := r.abbrevs[i]
		line := " " + r.styles.BoldText.Render(ljust(left.Short, 4)) + ljust(left.Word, 14)
		if i+1 < len(r.abbrevs) {
			right := r.abbrevs[i+1]
			line += r.styles.BoldText.Render(ljust(right.Short, 4)) + right.Word
		}
		lines = append(lines, truncateIfWider(line, width))
	}
	return lines
}
