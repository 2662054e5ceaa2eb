package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/logging"
	"happydash/internal/metrics"
)

// newLoadedApp returns an adapter with the embedded dataset and shapes
// loaded and a window of width x height cells.
func newLoadedApp(t *testing.T, width, height int) (*AppModel, *appModelAdapter) {
	t.Helper()
	ctx := context.Background()
	m := NewAppModel(ctx, config.New(), nil, nil, nil)
	a := m.AsTeaModel().(*appModelAdapter)

	dsMsg := loadDatasetCmd(ctx, nil, "")()
	require.IsType(t, DatasetLoadedMsg{}, dsMsg)
	require.NoError(t, dsMsg.(DatasetLoadedMsg).Err)
	geoMsg := loadGeographyCmd(ctx, nil, "")()
	require.NoError(t, geoMsg.(GeographyLoadedMsg).Err)

	a.Update(dsMsg)
	a.Update(geoMsg)
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m, a
}

// press feeds keys through Update and runs the resulting commands until
// they stop producing messages.
func press(a *appModelAdapter, keys ...string) {
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		run(a, cmd)
	}
}

func run(a *appModelAdapter, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = a.Update(msg)
	}
}

// findCell returns the absolute cell inside panel id whose centre hits
// want according to hit.
func findCell(t *testing.T, m *AppModel, id string, hit func(c Rect, col, row int) bool) (int, int) {
	t.Helper()
	for _, p := range m.layout().Panels() {
		if p.ID != id {
			continue
		}
		c := p.Canvas()
		for row := 0; row < c.H; row++ {
			for col := 0; col < c.W; col++ {
				if hit(c, col, row) {
					return c.X + col, c.Y + row
				}
			}
		}
	}
	t.Fatalf("no matching cell in panel %s", id)
	return 0, 0
}

func TestInit_LoadsEmbeddedAssets(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)

	require.NotNil(t, m.Dataset)
	require.NotNil(t, m.Geography)
	assert.Equal(t, 2023, m.Year, "starts at the latest year")
	for _, c := range m.Containers {
		assert.Equal(t, 2023, c.Filter().Year)
	}

	view := a.View()
	assert.Contains(t, view, appTitle)
	assert.Contains(t, view, "Happiness map 2023")
	assert.Contains(t, view, "Life Ladder Score")
	assert.Contains(t, view, "No country selected")
}

func TestInit_ReturnsLoadCommands(t *testing.T) {
	m := NewAppModel(context.Background(), config.New(), nil, nil, nil)
	assert.NotNil(t, m.AsTeaModel().Init())
	assert.Len(t, m.Containers, 2)
	assert.Equal(t, []string{"map", "scatter-1", "scatter-2", "table"}, m.Focus.Order)
}

func TestLoadFailure_ShowsPlaceholders(t *testing.T) {
	m := NewAppModel(context.Background(), config.New(), nil, nil, nil)
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	a.Update(DatasetLoadedMsg{Source: "x.json", Err: errors.New("boom")})

	view := a.View()
	assert.Contains(t, view, "Loading", "map still waits for shapes")

	a.Update(GeographyLoadedMsg{Source: "w.json", Err: errors.New("bad shapes")})
	view = a.View()
	assert.Contains(t, view, "Dataset unavailable: boom")
	assert.Contains(t, view, "Map unavailable: bad shapes")
}

func TestLoadFailure_MapStillDrawsWithoutDataset(t *testing.T) {
	ctx := context.Background()
	m := NewAppModel(ctx, config.New(), nil, nil, nil)
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	a.Update(DatasetLoadedMsg{Err: errors.New("boom")})
	a.Update(loadGeographyCmd(ctx, nil, "")())

	view := a.View()
	assert.NotContains(t, view, "Map unavailable")
	assert.Contains(t, view, "Dataset unavailable: boom")
}

func TestYearSlider(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)

	press(a, "]")
	assert.Equal(t, 2023, m.Year, "clamped at the last year")
	press(a, "[", "[")
	assert.Equal(t, 2021, m.Year)
	press(a, "home")
	assert.Equal(t, 2019, m.Year)
	press(a, "end")
	assert.Equal(t, 2023, m.Year)
	assert.Contains(t, a.View(), "Year 2023")
}

func TestZoom(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)

	press(a, "+")
	assert.Equal(t, 1.25, m.Zoom)
	press(a, "0")
	assert.Equal(t, 1.0, m.Zoom)
	press(a, "-", "-", "-", "-")
	assert.Equal(t, config.MinZoom, m.Zoom)
	assert.Contains(t, a.View(), "zoom 0.5x")
}

func TestScatterControls_OnlyApplyToFocusedScatter(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)
	first, second := m.Containers[0], m.Containers[1]

	press(a, "x")
	assert.Equal(t, dataset.FieldPCA1, first.Filter().X, "map focused: scatter keys ignored")

	press(a, "tab")
	require.Equal(t, "scatter-1", m.Focus.Current)
	press(a, "x", "c", "r")
	assert.Equal(t, dataset.FieldPCA2, first.Filter().X)
	assert.Equal(t, "Africa", first.Filter().Continent)
	assert.True(t, first.Engine.Regression)
	assert.Equal(t, dataset.FieldPCA1, second.Filter().X, "containers keep independent filters")
	assert.False(t, second.Engine.Regression)

	press(a, "p")
	assert.Equal(t, 2022, first.Filter().Year)
	assert.Equal(t, 2023, m.Year, "slider is independent of scatter years")
}

func TestAddRemoveScatter(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)

	press(a, " ", "s", "a")
	require.Len(t, m.Containers, 3)
	assert.Equal(t, "scatter-3", m.Focus.Current)
	assert.Contains(t, m.Focus.Order, "scatter-3")

	press(a, " ", "s", "d")
	require.Len(t, m.Containers, 2)
	assert.NotContains(t, m.Focus.Order, "scatter-3")
	assert.Equal(t, "table", m.Focus.Current)

	press(a, "shift+tab", " ", "s", "d")
	require.Len(t, m.Containers, 1)
	assert.Equal(t, "table", m.Focus.Current)

	press(a, "tab", "tab")
	require.Equal(t, "scatter-1", m.Focus.Current)
	press(a, " ", "s", "d")
	assert.Len(t, m.Containers, 1, "the last scatterplot cannot be removed")
}

func TestAddScatter_RespectsLimit(t *testing.T) {
	m, a := newLoadedApp(t, 200, 50)
	for range config.MaxScatterCount + 2 {
		press(a, " ", "s", "a")
	}
	assert.Len(t, m.Containers, config.MaxScatterCount)
}

func TestMouse_MapHoverAndClick(t *testing.T) {
	m, a := newLoadedApp(t, 160, 60)
	a.View()

	x, y := findCell(t, m, "map", func(c Rect, col, row int) bool {
		name, _ := m.Map.HitTest(m.cellPoint(c, col, row))
		return name == "Australia"
	})

	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, "Australia", m.Store.Hovered())
	assert.Contains(t, a.View(), "Australia: 7.03")

	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Store.IsSelected("Australia", 2023))
	assert.Equal(t, "map", m.Focus.Current)
	view := a.View()
	assert.NotContains(t, view, "No country selected")
	assert.Contains(t, view, "10.86", "Australia's GDP row")

	a.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionMotion})
	assert.Equal(t, "", m.Store.Hovered(), "leaving the map clears its hover")

	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.Store.IsSelected("Australia", 2023), "second click deselects")
}

func TestMouse_ScatterClickSelectsRecord(t *testing.T) {
	m, a := newLoadedApp(t, 160, 60)
	a.View()
	eng := m.Containers[0].Engine

	x, y := findCell(t, m, "scatter-1", func(c Rect, col, row int) bool {
		_, ok := eng.HitTest(m.cellPoint(c, col, row))
		return ok
	})
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	require.Equal(t, 1, m.Store.Len())
	key := m.Store.Entries()[0]
	assert.Equal(t, 2023, key.Year)
	assert.Equal(t, key.Country, m.Store.Hovered())
	assert.Equal(t, "scatter-1", m.Focus.Current)
	assert.True(t, strings.HasPrefix(m.status, key.Country+": "))

	press(a, "esc")
	assert.Equal(t, "", m.Store.Hovered())
	press(a, " ", "c")
	assert.Equal(t, 0, m.Store.Len())
}

func TestScatterFilterChange_ClearsOnlyOwnHover(t *testing.T) {
	m, a := newLoadedApp(t, 160, 60)
	press(a, "tab")
	a.View()
	eng := m.Containers[0].Engine

	sx, sy := findCell(t, m, "scatter-1", func(c Rect, col, row int) bool {
		_, ok := eng.HitTest(m.cellPoint(c, col, row))
		return ok
	})
	a.Update(tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionMotion})
	require.NotEmpty(t, m.Store.Hovered())
	press(a, "n")
	assert.Equal(t, "", m.Store.Hovered(), "the hovered point may be gone from this plot")

	a.Update(tea.MouseMsg{X: sx, Y: sy, Action: tea.MouseActionMotion})
	press(a, "p")
	assert.Equal(t, "", m.Store.Hovered())

	mx, my := findCell(t, m, "map", func(c Rect, col, row int) bool {
		name, _ := m.Map.HitTest(m.cellPoint(c, col, row))
		return name == "Australia"
	})
	a.Update(tea.MouseMsg{X: mx, Y: my, Action: tea.MouseActionMotion})
	require.Equal(t, "Australia", m.Store.Hovered())
	press(a, "p", "c", "x")
	assert.Equal(t, "Australia", m.Store.Hovered(), "the map's hover is not this plot's to clear")

	press(a, "r")
	assert.Equal(t, "Australia", m.Store.Hovered(), "regression toggle is not a filter change")
}

func TestMapHover_RestoredAfterEsc(t *testing.T) {
	m, a := newLoadedApp(t, 160, 60)
	a.View()
	x, y := findCell(t, m, "map", func(c Rect, col, row int) bool {
		name, _ := m.Map.HitTest(m.cellPoint(c, col, row))
		return name == "Australia"
	})

	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	require.Equal(t, "Australia", m.Store.Hovered())
	press(a, "esc")
	require.Equal(t, "", m.Store.Hovered())

	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, "Australia", m.Store.Hovered(), "pointing at the same shape hovers it again")
}

func TestFieldPicker(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)

	press(a, " ", "f", "x")
	assert.Equal(t, 0, m.Overlays.Len(), "picker needs a focused scatterplot")

	press(a, "tab", " ", "f", "y")
	require.Equal(t, 1, m.Overlays.Len())
	top, _ := m.Overlays.Peek()
	require.IsType(t, &FieldPickerModal{}, top.View)
	assert.Contains(t, a.View(), "Choose y field")

	press(a, "esc")
	assert.Equal(t, 0, m.Overlays.Len())

	press(a, " ", "f", "x")
	require.Equal(t, 1, m.Overlays.Len())
	press(a, "q")
	assert.Equal(t, 1, m.Overlays.Len(), "keys go to the picker while it is open")
	_, cmd := a.Update(FieldChosenMsg{Axis: "x", Field: "generosity"})
	run(a, cmd)
	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, "generosity", m.Containers[0].Filter().X)
}

func TestFieldPicker_EnterChoosesHighlighted(t *testing.T) {
	m, a := newLoadedApp(t, 120, 50)
	press(a, "tab", " ", "f", "x", "enter")
	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, dataset.FieldPCA1, m.Containers[0].Filter().X, "current field is preselected")
}

func TestSPCShowsKeybindHints(t *testing.T) {
	m, a := newLoadedApp(t, 160, 50)

	press(a, " ")
	require.True(t, m.KeyHandler.LeaderWaiting)
	view := a.View()
	for _, hint := range []string{"Scatterplots", "Clear selection", "Quit"} {
		assert.Contains(t, view, hint)
	}
	assert.NotContains(t, view, "Axis field", "field picker only applies to scatterplots")

	press(a, "s")
	view = a.View()
	assert.Contains(t, view, "Add scatterplot")
	press(a, "esc")
	assert.False(t, m.KeyHandler.LeaderWaiting)
}

func TestDetailsToggle(t *testing.T) {
	m, a := newLoadedApp(t, 160, 200)

	assert.NotContains(t, a.View(), "Generosity:")
	press(a, "d")
	assert.True(t, m.ShowDetails)
	assert.Contains(t, a.View(), "Generosity:")
}

func TestTrendFollowsHoverThenSelection(t *testing.T) {
	m, a := newLoadedApp(t, 160, 80)

	m.Toggle("Kenya", 2023)
	assert.Contains(t, a.View(), "Kenya 2019")
	m.Hover("Norway")
	assert.Contains(t, a.View(), "Norway 2019")
}

func TestQuit(t *testing.T) {
	_, a := newLoadedApp(t, 120, 50)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := a.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestInteractionKindsMatchRecorded(t *testing.T) {
	for a := ScatterNextX; a <= ScatterToggleRegression; a++ {
		assert.Contains(t, metrics.InteractionKinds, a.String())
	}

	rec := metrics.New()
	ctx := context.Background()
	m := NewAppModel(ctx, config.New(), nil, nil, rec)
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(loadDatasetCmd(ctx, nil, "")())
	a.Update(loadGeographyCmd(ctx, nil, "")())
	a.Update(tea.WindowSizeMsg{Width: 160, Height: 60})

	m.Toggle("Norway", 2023)
	m.Hover("Norway")
	press(a, "d", "tab", "x", "y", "n", "c", "r", "+", "[", " ", "c")

	mfs, err := rec.Registry().Gather()
	require.NoError(t, err)
	var seen int
	for _, mf := range mfs {
		if mf.GetName() != "happydash_interactions_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				assert.Contains(t, metrics.InteractionKinds, lp.GetValue())
				seen++
			}
		}
	}
	assert.Greater(t, seen, 5)
}

func TestLogCoverage_NamesShapesWithoutRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "happydash.log")
	log, err := logging.New("debug", path)
	require.NoError(t, err)

	ctx := context.Background()
	m := NewAppModel(ctx, config.New(), log, nil, nil)
	a := m.AsTeaModel().(*appModelAdapter)
	a.Update(loadDatasetCmd(ctx, nil, "")())
	a.Update(loadGeographyCmd(ctx, nil, "")())
	log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"countries without records"`)
	assert.Contains(t, string(b), `"Greenland"`)
	assert.NotContains(t, string(b), `"countries":["Norway"`)
}
