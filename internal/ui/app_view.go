package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"happydash/internal/chart"
	"happydash/internal/dataset"
	"happydash/internal/scale"
	"happydash/internal/scene"
	"happydash/internal/ui/textutil"
)

const appTitle = "World Happiness Dashboard"

func (m *AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return m.spinner.View() + " Loading…"
	}
	if top, ok := m.Overlays.Peek(); ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, top.View.View())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	panels := m.layout().Panels()
	var scatters []string
	for _, p := range panels {
		out := m.renderPanel(p)
		switch p.Kind {
		case PanelScatter:
			scatters = append(scatters, out)
			continue
		case PanelTable:
			if len(scatters) > 0 {
				b.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, scatters...))
				scatters = nil
			}
		}
		b.WriteString("\n" + out)
	}
	b.WriteString("\n" + m.renderStatus())
	if m.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(m.KeyHandler, m.focusedKind()))
	}
	return b.String()
}

func (m *AppModel) renderHeader() string {
	title := Styles.Title.Render(appTitle)
	zoom := Styles.Muted.Render(fmt.Sprintf("zoom %gx", m.Zoom))
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(zoom), 1)
	return title + strings.Repeat(" ", gap) + zoom + "\n" + m.renderSlider(m.width)
}

// renderSlider draws the year slider: "Year 2023  2019 ━━━━━━●━━ 2023".
func (m *AppModel) renderSlider(width int) string {
	if m.Dataset == nil {
		return Styles.Muted.Render("Year " + strconv.Itoa(m.Year))
	}
	lo, hi, ok := m.Dataset.YearBounds()
	if !ok {
		return Styles.Muted.Render("Year -")
	}
	label := Styles.Title.Render(fmt.Sprintf("Year %d", m.Year))
	from, to := strconv.Itoa(lo), strconv.Itoa(hi)
	track := max(width-lipgloss.Width(label)-len(from)-len(to)-6, 3)
	pos := 0
	if hi > lo {
		pos = (m.Year - lo) * (track - 1) / (hi - lo)
	}
	bar := Styles.Muted.Render(strings.Repeat("━", pos)) +
		Styles.Selected.Render("●") +
		Styles.Muted.Render(strings.Repeat("━", track-pos-1))
	return label + "  " + from + " " + bar + " " + to
}

func (m *AppModel) renderPanel(p Panel) string {
	style := Styles.Panel
	if p.ID == m.Focus.Current {
		style = Styles.Focused
	}
	innerW, innerH := max(p.Rect.W-2, 0), max(p.Rect.H-2, 0)
	title := Styles.Title.Render(textutil.Truncate(m.panelTitle(p), innerW))

	c := p.Canvas()
	var body string
	switch p.Kind {
	case PanelMap:
		body = m.renderMap(c)
	case PanelScatter:
		body = m.renderScatter(p.ID, c)
	case PanelTable:
		body = m.renderTable(c)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return style.Width(innerW).Height(innerH).MaxHeight(p.Rect.H).Render(content)
}

func (m *AppModel) panelTitle(p Panel) string {
	switch p.Kind {
	case PanelMap:
		return fmt.Sprintf("Happiness map %d", m.Year)
	case PanelScatter:
		c := m.container(p.ID)
		if c == nil {
			return "Scatterplot"
		}
		f := c.Filter()
		reg := ""
		if c.Engine.Regression {
			reg = " +fit"
		}
		return fmt.Sprintf("%d %s · %s vs %s%s", f.Year, f.Continent, dataset.Label(f.X), dataset.Label(f.Y), reg)
	default:
		return "Selected countries"
	}
}

// placeholder renders a message for a panel whose data is not available.
func (m *AppModel) placeholder(c Rect, err error, what string) (string, bool) {
	switch {
	case err != nil:
		return Styles.Error.Width(max(c.W, 1)).Render(what + " unavailable: " + err.Error()), true
	case !m.loaded():
		return m.spinner.View() + " Loading…", true
	}
	return "", false
}

func (m *AppModel) renderMap(c Rect) string {
	if out, ok := m.placeholder(c, m.GeoErr, "Map"); ok {
		return out
	}
	w, h := m.sceneSize(c)
	start := time.Now()
	m.Map.Resize(w, h)
	s := m.Map.Render(m.Dataset, m.Year, m.Store)
	out := scene.Rasterize(s, c.W, c.H).String()
	m.Metrics.ObserveRender("map", time.Since(start))

	legend := happinessLegendLine(c.W)
	if m.DatasetErr != nil {
		legend = Styles.Error.Render(textutil.Truncate("Dataset unavailable: "+m.DatasetErr.Error(), c.W))
	}
	return out + "\n" + legend
}

// happinessLegendLine is the terminal form of the map legend: the title
// followed by a gradient from 0 to 10.
func happinessLegendLine(width int) string {
	head := chart.LegendTitle + " 0 "
	tail := " 10"
	steps := width - len(head) - len(tail)
	if steps < 2 {
		return textutil.Truncate(chart.LegendTitle, width)
	}
	ramp := scale.HappinessRamp()
	var bar strings.Builder
	for i := range steps {
		v := 10 * float64(i) / float64(steps-1)
		bar.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ramp.Color(v))).Render("█"))
	}
	return Styles.Muted.Render(head) + bar.String() + Styles.Muted.Render(tail)
}

func (m *AppModel) renderScatter(id string, c Rect) string {
	if out, ok := m.placeholder(c, m.DatasetErr, "Dataset"); ok {
		return out
	}
	cont := m.container(id)
	if cont == nil {
		return ""
	}
	w, h := m.sceneSize(c)
	start := time.Now()
	cont.Engine.Resize(w, h)
	cont.Engine.Slop = m.scatterSlop()
	s, err := cont.Render(m.Dataset, m.Store)
	if err != nil {
		return Styles.Error.Render(err.Error())
	}
	out := scene.Rasterize(s, c.W, c.H).String()
	m.Metrics.ObserveRender("scatter", time.Since(start))
	return out + "\n" + continentLegendLine(c.W)
}

// continentLegendLine lists the point colours: continents, hover and the
// selection stroke.
func continentLegendLine(width int) string {
	var parts []string
	used := 0
	entries := append(scale.LegendEntries(), chart.SelectedLabel)
	for _, e := range entries {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(scale.ContinentColor(e))).Render("●")
		if e == chart.SelectedLabel {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(scale.SelectedStroke)).Render("○")
		}
		w := 2 + textutil.VisualWidth(e)
		if used+w > width {
			break
		}
		parts = append(parts, dot+Styles.Muted.Render(" "+e))
		used += w + 1
	}
	return strings.Join(parts, " ")
}

func (m *AppModel) renderTable(c Rect) string {
	if out, ok := m.placeholder(c, m.DatasetErr, "Dataset"); ok {
		return out
	}
	start := time.Now()
	rows := chart.TableRows(m.Dataset, m.Store.Entries())
	lines := []string{
		Styles.Muted.Render(textutil.Truncate(chart.TableCaption, c.W)),
		chart.StyledTable(rows, c.W, chart.TableStyles{
			Border: Styles.TableBorder,
			Header: Styles.TableHeader,
			Cell:   Styles.TableCell,
			Empty:  Styles.Empty,
		}),
	}
	if t, ok := chart.TrendFor(m.Dataset, m.trendCountry()); ok {
		lines = append(lines, Styles.Normal.Render(textutil.Truncate(t.String(), c.W)))
	}
	if m.ShowDetails {
		for _, d := range chart.Descriptions {
			head := d.Title + ": "
			lines = append(lines, Styles.Title.Render(head)+textutil.Truncate(d.Text, c.W-textutil.VisualWidth(head)))
		}
	}
	m.Metrics.ObserveRender("table", time.Since(start))
	return strings.Join(lines, "\n")
}

// trendCountry is the hovered country, else the most recently selected.
func (m *AppModel) trendCountry() string {
	if h := m.Store.Hovered(); h != "" {
		return h
	}
	entries := m.Store.Entries()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1].Country
}

func (m *AppModel) renderStatus() string {
	if m.status != "" {
		return Styles.Normal.Render(textutil.Fit(m.status, m.width))
	}
	return RenderStatusHelp(m.focusedKind(), m.width)
}
