package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel
	FocusOrder() []string // Tab order for focus
}

const (
	headerRows   = 2 // title + year slider
	statusRows   = 1
	minPanelRows = 6
	mapShare     = 0.40
	scatterShare = 0.35
)

// dashboardLayout stacks the map, a row of scatterplots and the table.
type dashboardLayout struct {
	width, height int
	scatterIDs    []int
}

var _ Layout = dashboardLayout{}

func (l dashboardLayout) Panels() []Panel {
	body := max(l.height-headerRows-statusRows, 3*minPanelRows)
	mapH := max(int(float64(body)*mapShare), minPanelRows)
	scH := max(int(float64(body)*scatterShare), minPanelRows)
	tableH := max(body-mapH-scH, minPanelRows)

	y := headerRows
	panels := []Panel{{ID: "map", Kind: PanelMap, Rect: Rect{X: 0, Y: y, W: l.width, H: mapH}}}
	y += mapH

	n := len(l.scatterIDs)
	x := 0
	for i, id := range l.scatterIDs {
		w := l.width / n
		if i == n-1 {
			w = l.width - x
		}
		panels = append(panels, Panel{ID: scatterID(id), Kind: PanelScatter, Index: i, Rect: Rect{X: x, Y: y, W: w, H: scH}})
		x += w
	}
	y += scH

	panels = append(panels, Panel{ID: "table", Kind: PanelTable, Rect: Rect{X: 0, Y: y, W: l.width, H: tableH}})
	return panels
}

func (l dashboardLayout) FocusOrder() []string {
	var order []string
	for _, p := range l.Panels() {
		order = append(order, p.ID)
	}
	return order
}

// panelAt returns the panel containing cell (x, y).
func panelAt(panels []Panel, x, y int) (Panel, bool) {
	for _, p := range panels {
		if p.Rect.Contains(x, y) {
			return p, true
		}
	}
	return Panel{}, false
}
