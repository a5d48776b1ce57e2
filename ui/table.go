package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const colGap = 2

// cell is one table cell: plain text plus the style applied after the text
// has been truncated and padded, keeping width math ANSI-free.
type cell struct {
	text  string
	style lipgloss.Style
}

func plainCell(text string) cell {
	return cell{text: text}
}

// renderTable lays out headers and rows into lines fitting the given width.
// Column widths derive from content; when the table is too wide the widest
// column shrinks first (left-most on ties), which keeps the result stable
// across identical inputs.
func (r *Renderer) renderTable(headers []string, rows [][]cell, width, maxRows int) []string {
	n := len(headers)
	if n == 0 || width <= 0 {
		return nil
	}

	widths := make([]int, n)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < n && i < len(row); i++ {
			if w := runewidth.StringWidth(row[i].text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := func() int {
		t := colGap * (n - 1)
		for _, w := range widths {
			t += w
		}
		return t
	}
	for total() > width {
		widest := 0
		for i := 1; i < n; i++ {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 3 {
			break
		}
		widths[widest]--
	}

	lines := make([]string, 0, len(rows)+1)
	headerCells := make([]cell, n)
	for i, h := range headers {
		headerCells[i] = cell{text: h, style: r.styles.Muted}
	}
	lines = append(lines, renderRow(headerCells, widths))

	// The overflow marker takes one of the visible rows.
	count := len(rows)
	if maxRows > 0 && count > maxRows {
		count = maxRows - 1
		if count < 0 {
			count = 0
		}
	}
	for _, row := range rows[:count] {
		lines = append(lines, renderRow(row, widths))
	}
	if count < len(rows) {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("… %d more", len(rows)-count)))
	}
	return lines
}

func renderRow(row []cell, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		text := ""
		style := lipgloss.Style{}
		if i < len(row) {
			text = row[i].text
			style = row[i].style
		}
		text = runewidth.Truncate(text, w, "…")
		pad := w - runewidth.StringWidth(text)
		b.WriteString(style.Render(text))
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
