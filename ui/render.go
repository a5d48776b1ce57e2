package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Renderer turns cached snapshots into sized text blocks, one per panel.
// All width math happens on plain text before styling, so ANSI codes never
// distort the layout.
type Renderer struct {
	appName string
	styles  Styles
	abbrevs []abbrev
}

// abbrev is one settings-key abbreviation: a long word and the short token
// shown in its place, with the legend explaining the mapping.
type abbrev struct {
	Word  string
	Short string
}

// NewRenderer builds the renderer with its style table and the settings-key
// abbreviation list. Constructed once at startup.
func NewRenderer(appName string, color bool) *Renderer {
	return &Renderer{
		appName: appName,
		styles:  NewStyles(color),
		abbrevs: []abbrev{
			{"allocation", "a"},
			{"balance", "b"},
			{"cluster", "c"},
			{"disk", "d"},
			{"indices", "i"},
			{"incoming", "in"},
			{"node", "n"},
			{"outgoing", "o"},
			{"routing", "r"},
			{"watermark", "w"},
			{"recoveries", "rec"},
			{"relocations", "rel"},
			{"concurrent", "cc"},
			{"connections", "con"},
		},
	}
}

// Header renders the top strip: app name, cluster name, wall clock.
func (r *Renderer) Header(clusterName string, now time.Time, rect Rect) string {
	if rect.Empty() {
		return ""
	}
	cw := rect.W - 2
	left := r.styles.BoldText.Render(r.appName)
	center := r.styles.BoldText.Render(clusterName)
	right := now.Format("2006-01-02 15:04:05")

	line := spreadThree(left, center, right, cw)
	return r.box("", "", []string{line}, rect.W, rect.H)
}

// Countdown states for the refresh strip.
type CountdownState int

const (
	CountdownTicking CountdownState = iota
	CountdownRefreshing
	CountdownPaused
)

// Countdown renders the next-refresh strip. The number changes color as the
// refresh approaches; Paused and in-flight fetches replace it entirely.
func (r *Renderer) Countdown(state CountdownState, seconds int, rect Rect) string {
	if rect.Empty() {
		return ""
	}
	var line string
	switch state {
	case CountdownPaused:
		line = r.styles.Warn.Render("⏸ PAUSED ⏸")
	case CountdownRefreshing:
		line = r.styles.Muted.Render("Refreshing data...")
	default:
		style := r.styles.Good
		switch {
		case seconds < 2:
			style = r.styles.Bad
		case seconds <= 3:
			style = r.styles.Warn
		}
		line = "Next refresh in " + style.Render(fmt.Sprintf("%d", seconds)) + " seconds..."
	}
	return r.box("", "dim", []string{centerLine(line, rect.W-2)}, rect.W, rect.H)
}

// Footer renders the transient error strip.
func (r *Renderer) Footer(msg string, rect Rect) string {
	if rect.Empty() {
		return ""
	}
	text := truncate(" ⚠ "+msg, rect.W-2)
	return r.box("", "red", []string{r.styles.Error.Render(text)}, rect.W, rect.H)
}

// Waiting renders the full-screen state shown before the first snapshot.
func (r *Renderer) Waiting(width, height int) string {
	msg := r.styles.Warn.Render("Waiting for data from Elasticsearch...")
	lines := make([]string, height)
	for i := range lines {
		if i == height/2 {
			lines[i] = centerLine(msg, width)
		} else {
			lines[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(lines, "\n")
}

// Help renders the keyboard shortcut panel shown in the status slot while
// Help mode is active.
func (r *Renderer) Help(rect Rect) string {
	if rect.Empty() {
		return ""
	}
	bold := r.styles.BoldText
	lines := []string{
		"",
		bold.Render("q") + "       quit",
		bold.Render("h") + "       toggle this help",
		bold.Render("p") + "       pause refreshing",
		bold.Render("e") + "       edit cluster settings",
		bold.Render("↑ / ↓") + "   move selection (edit)",
		"",
		r.styles.Muted.Render("Data keeps refreshing while help is open."),
	}
	return r.box("Shortcuts", "cyan", lines, rect.W, rect.H)
}

// box draws a bordered region of exactly w x h cells with the title embedded
// in the top border. Content lines must already fit w-2 visible columns.
func (r *Renderer) box(title, borderColor string, lines []string, w, h int) string {
	if w < 2 || h < 2 {
		return padBlock(lines, w, h)
	}
	bs := r.styles.borderStyle(borderColor)
	cw := w - 2

	top := "┌" + borderTitle(title, cw) + "┐"
	bottom := "└" + strings.Repeat("─", cw) + "┘"

	var b strings.Builder
	b.WriteString(bs.Render(top))
	b.WriteByte('\n')
	vert := bs.Render("│")
	for row := 0; row < h-2; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		b.WriteString(vert)
		b.WriteString(padLine(line, cw))
		b.WriteString(vert)
		b.WriteByte('\n')
	}
	b.WriteString(bs.Render(bottom))
	return b.String()
}

// borderTitle builds the top border run with an optional embedded title.
func borderTitle(title string, width int) string {
	if title == "" || width < 6 {
		return strings.Repeat("─", width)
	}
	t := " " + truncate(title, width-4) + " "
	fill := width - runewidth.StringWidth(t) - 1
	if fill < 0 {
		fill = 0
	}
	return "─" + t + strings.Repeat("─", fill)
}

// padLine pads a (possibly styled) line to exactly width visible columns.
func padLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return line + strings.Repeat(" ", width-w)
}

// padBlock is the degenerate fallback when a region is too small for a box.
func padBlock(lines []string, w, h int) string {
	out := make([]string, 0, h)
	for i := 0; i < h; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, padLine(truncate(line, w), w))
	}
	return strings.Join(out, "\n")
}

// truncate clips plain text to the given visible width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// centerLine centers a styled line within the given width.
func centerLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + line
}

// spreadThree lays out left/center/right segments across one line.
func spreadThree(left, center, right string, width int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	if lw+cw+rw+2 > width {
		return truncateStyled(left+" "+center+" "+right, width)
	}
	centerStart := (width - cw) / 2
	gap1 := centerStart - lw
	if gap1 < 1 {
		gap1 = 1
	}
	gap2 := width - lw - gap1 - cw - rw
	if gap2 < 1 {
		gap2 = 1
	}
	return left + strings.Repeat(" ", gap1) + center + strings.Repeat(" ", gap2) + right
}

// truncateStyled is a last-resort clip for overstuffed composite lines; it
// gives up on styling rather than emit an overwide line.
func truncateStyled(s string, width int) string {
	return truncate(stripANSI(s), width)
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// emptyBox renders a panel's canonical empty-state placeholder.
func (r *Renderer) emptyBox(spec PanelSpec, message string, editTitle bool, rect Rect) string {
	lines := []string{"", "", centerLine(r.styles.Muted.Render(message), rect.W-2)}
	return r.boxForSpec(spec, editTitle, lines, rect)
}

// boxForSpec draws a panel box using the spec's title and border, with the
// edit-mode title suffix and highlighted border when requested.
func (r *Renderer) boxForSpec(spec PanelSpec, editMode bool, lines []string, rect Rect) string {
	title := spec.Title
	border := spec.Border
	if editMode {
		title += " [EDIT MODE]"
		border = "edit"
	}
	return r.box(title, border, lines, rect.W, rect.H)
}
