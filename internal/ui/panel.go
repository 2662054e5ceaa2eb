package ui

import "fmt"

// PanelKind identifies what a panel shows.
type PanelKind int

const (
	PanelMap PanelKind = iota
	PanelScatter
	PanelTable
)

func (k PanelKind) String() string {
	switch k {
	case PanelMap:
		return "map"
	case PanelScatter:
		return "scatter"
	case PanelTable:
		return "table"
	default:
		return "unknown"
	}
}

// Rect is a cell rectangle on the terminal, origin top-left.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Panel is a bordered region of the screen. Canvas is the area inside the
// border and title row where charts are drawn.
type Panel struct {
	ID    string
	Kind  PanelKind
	Index int // scatterplot position, 0 for other kinds
	Rect  Rect
}

// Canvas returns the drawable area: inside the border, below the title.
// Scatterplots and the map keep one more row at the bottom for a legend.
func (p Panel) Canvas() Rect {
	c := Rect{X: p.Rect.X + 1, Y: p.Rect.Y + 2, W: p.Rect.W - 2, H: p.Rect.H - 3}
	if p.Kind != PanelTable {
		c.H--
	}
	c.W, c.H = max(c.W, 0), max(c.H, 0)
	return c
}

func scatterID(id int) string {
	return fmt.Sprintf("scatter-%d", id)
}
