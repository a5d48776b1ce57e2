package ui

// Rect is a screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the region has no drawable area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Geometry is one computed layout frame: a rect per region. Regions that do
// not fit the current terminal come back empty and are simply not drawn.
type Geometry struct {
	Header    Rect
	Status    Rect
	Settings  Rect
	Countdown Rect
	Reloc     Rect
	Recov     Rect
	Footer    Rect
}

// Layout holds the static layout parameters: a header strip on top, a side
// column (status, settings, countdown) next to a body column (relocations
// over recoveries), and an optional footer strip for errors.
//
// Compute is pure: the same inputs always produce the same geometry, so it
// can run on every tick without causing layout jitter.
type Layout struct {
	HeaderHeight    int
	FooterHeight    int
	CountdownHeight int

	SideRatio    int
	BodyRatio    int
	SideMinWidth int
	BodyMinWidth int

	StatusMinHeight   int
	SettingsMinHeight int
}

// DefaultLayout mirrors the classic esstat arrangement.
func DefaultLayout() Layout {
	return Layout{
		HeaderHeight:      3,
		FooterHeight:      3,
		CountdownHeight:   3,
		SideRatio:         1,
		BodyRatio:         3,
		SideMinWidth:      44,
		BodyMinWidth:      96,
		StatusMinHeight:   12,
		SettingsMinHeight: 5,
	}
}

// Compute derives every region rect from the terminal size, the status
// panel's natural content height, and whether the error footer is visible.
func (l Layout) Compute(width, height, statusNatural int, footer bool) Geometry {
	var g Geometry
	if width <= 0 || height <= 0 {
		return g
	}

	headerH := clamp(l.HeaderHeight, 0, height)
	g.Header = Rect{X: 0, Y: 0, W: width, H: headerH}

	footerH := 0
	if footer {
		footerH = clamp(l.FooterHeight, 0, height-headerH)
		g.Footer = Rect{X: 0, Y: height - footerH, W: width, H: footerH}
	}

	mainH := height - headerH - footerH
	if mainH <= 0 {
		return g
	}
	mainY := headerH

	sideW, bodyW := l.splitColumns(width)

	// Side column: countdown pinned to the bottom, status sized to content,
	// settings absorbing whatever is left.
	countdownH := clamp(l.CountdownHeight, 0, mainH)
	statusMax := mainH - countdownH - l.SettingsMinHeight
	statusH := clamp(statusNatural, min(l.StatusMinHeight, statusMax), statusMax)
	if statusH < 0 {
		statusH = 0
	}
	settingsH := mainH - countdownH - statusH

	g.Status = Rect{X: 0, Y: mainY, W: sideW, H: statusH}
	g.Settings = Rect{X: 0, Y: mainY + statusH, W: sideW, H: settingsH}
	g.Countdown = Rect{X: 0, Y: mainY + statusH + settingsH, W: sideW, H: countdownH}

	// Body column: equal split between the two panels, the remainder row
	// going to the top one.
	relocH := mainH/2 + mainH%2
	recovH := mainH - relocH
	g.Reloc = Rect{X: sideW, Y: mainY, W: bodyW, H: relocH}
	g.Recov = Rect{X: sideW, Y: mainY + relocH, W: bodyW, H: recovH}

	return g
}

// splitColumns divides the width between side and body proportionally,
// assigning the integer remainder to the left-most column. When there is
// room for both minimum widths the side column is clamped up to its minimum.
func (l Layout) splitColumns(width int) (side, body int) {
	total := l.SideRatio + l.BodyRatio
	if total <= 0 {
		return width, 0
	}
	unit := width / total
	side = unit*l.SideRatio + (width - unit*total)
	body = width - side

	if side < l.SideMinWidth && width >= l.SideMinWidth+l.BodyMinWidth {
		side = l.SideMinWidth
		body = width - side
	}
	return side, body
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
