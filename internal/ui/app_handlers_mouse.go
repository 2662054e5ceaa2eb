package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"happydash/internal/chart"
	"happydash/internal/scene"
)

// Scene units per terminal cell at zoom 1. Cells are roughly twice as tall
// as they are wide.
const (
	cellPxW = 6.0
	cellPxH = 12.0
)

// sceneSize is the canvas size, in scene units, drawn onto c.
func (m *AppModel) sceneSize(c Rect) (w, h float64) {
	return float64(c.W) * cellPxW / m.Zoom, float64(c.H) * cellPxH / m.Zoom
}

// cellPoint maps a cell inside canvas c (relative coordinates) to the scene
// point at the centre of that cell.
func (m *AppModel) cellPoint(c Rect, col, row int) orb.Point {
	w, h := m.sceneSize(c)
	return scene.CellCenter(w, h, c.W, c.H, col, row)
}

// scatterSlop lets the pointer select a point from anywhere in its cell.
func (m *AppModel) scatterSlop() float64 {
	return max(cellPxW, cellPxH/2) / 2 / m.Zoom
}

// handleMouse routes pointer motion and clicks to the engine under the
// pointer. Moving off a panel sends that panel a leave first, so a hover
// is always cleared by the view that set it.
func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	panel, ok := panelAt(m.layout().Panels(), msg.X, msg.Y)
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	if ok && press {
		m.Focus.SetFocus(panel.ID)
	}

	var (
		target string
		pt     orb.Point
	)
	if ok {
		if c := panel.Canvas(); c.Contains(msg.X, msg.Y) {
			target = panel.ID
			pt = m.cellPoint(c, msg.X-c.X, msg.Y-c.Y)
		}
	}
	if m.pointerPanel != "" && m.pointerPanel != target {
		m.leave(m.pointerPanel)
	}
	m.pointerPanel = target
	m.status = ""
	if target == "" {
		return
	}

	switch panel.Kind {
	case PanelMap:
		if m.Geography == nil {
			return
		}
		m.Map.Move(pt, m)
		if press {
			m.Map.Click(pt, m.Dataset, m.Year, m)
		}
		m.status = m.Map.TooltipAt(pt)
	case PanelScatter:
		c := m.container(panel.ID)
		if c == nil || m.Dataset == nil {
			return
		}
		c.Engine.Slop = m.scatterSlop()
		c.Engine.Move(pt, m)
		if press {
			c.Engine.Click(pt, m)
		}
		if key, ok := c.Engine.HitTest(pt); ok {
			rec, found := m.Dataset.Find(key.Country, key.Year)
			m.status = fmt.Sprintf("%s (%d)", chart.Tooltip(key.Country, rec, found), key.Year)
		}
	}
}

func (m *AppModel) leave(panelID string) {
	if panelID == "map" {
		m.Map.Leave(m)
		return
	}
	if c := m.container(panelID); c != nil {
		c.Engine.Leave(m)
	}
}
