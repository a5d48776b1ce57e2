package ui

import "github.com/charmbracelet/lipgloss"

// Palette color names shared by panel specs and renderers.
const (
	colorGood    = "2"   // green
	colorWarn    = "3"   // yellow
	colorBad     = "208" // orange
	colorDanger  = "1"   // red
	colorMuted   = "241" // gray
	colorCyan    = "6"
	colorMagenta = "5"
	colorEdit    = "11" // bright yellow
)

// Styles bundles every lipgloss style the renderers use. Built once at
// startup; with color disabled every style degrades to plain text so the
// layout math stays identical either way.
type Styles struct {
	BoldText lipgloss.Style
	Good     lipgloss.Style
	Warn     lipgloss.Style
	Bad      lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style

	Banner  map[string]lipgloss.Style // cluster status -> banner style
	borders map[string]lipgloss.Style
}

// NewStyles builds the style table. color=false yields no-op styles, which
// is the path non-TTY and test runs take.
func NewStyles(color bool) Styles {
	plain := lipgloss.NewStyle()
	if !color {
		return Styles{
			BoldText: plain,
			Good:     plain,
			Warn:     plain,
			Bad:      plain,
			Muted:    plain,
			Selected: plain,
			Error:    plain,
			Banner: map[string]lipgloss.Style{
				"green": plain, "yellow": plain, "red": plain,
			},
			borders: map[string]lipgloss.Style{},
		}
	}

	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		BoldText: lipgloss.NewStyle().Bold(true),
		Good:     fg(colorGood),
		Warn:     fg(colorWarn),
		Bad:      fg(colorBad),
		Muted:    fg(colorMuted),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color(colorDanger)),
		Banner: map[string]lipgloss.Style{
			"green":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color(colorGood)),
			"yellow": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color(colorWarn)),
			"red":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color(colorDanger)),
		},
		borders: map[string]lipgloss.Style{
			"cyan":    fg(colorCyan),
			"magenta": fg(colorMagenta),
			"yellow":  fg(colorWarn),
			"red":     fg(colorDanger),
			"edit":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorEdit)),
			"dim":     fg(colorMuted),
		},
	}
}

// borderStyle resolves a panel's border color name; unknown names draw an
// unstyled border.
func (s Styles) borderStyle(name string) lipgloss.Style {
	if st, ok := s.borders[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// statusBanner picks the banner style for a cluster status string.
func (s Styles) statusBanner(status string) lipgloss.Style {
	if st, ok := s.Banner[status]; ok {
		return st
	}
	return s.BoldText
}
