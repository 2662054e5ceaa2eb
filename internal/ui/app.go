package ui

import (
	"context"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"happydash/internal/chart"
	"happydash/internal/config"
	"happydash/internal/dataset"
	"happydash/internal/filter"
	"happydash/internal/geo"
	"happydash/internal/logging"
	"happydash/internal/metrics"
	"happydash/internal/selection"
	"happydash/internal/telemetry"
)

const zoomStep = 0.25

// AppModel is the dashboard controller. It owns the dataset, the country
// shapes, the selection store and every render engine, and is the only
// place the store is mutated.
type AppModel struct {
	Config  *config.Config
	Log     *logging.Logger
	Tracer  *telemetry.Tracer
	Metrics *metrics.Recorder

	Dataset    *dataset.Dataset
	DatasetErr error
	Geography  *geo.Geography
	GeoErr     error

	Store       *selection.Store
	Year        int
	Zoom        float64
	ShowDetails bool

	Map        *chart.MapEngine
	Containers []*chart.Container
	nextID     int

	Focus      *FocusManager
	KeyHandler *KeyHandler
	Overlays   OverlayStack

	ctx           context.Context
	spinner       spinner.Model
	width, height int
	status        string
	pointerPanel  string
}

var _ chart.Dispatcher = (*AppModel)(nil)

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the dashboard controller. Nil log, tracer and
// metrics are replaced by no-op implementations.
func NewAppModel(ctx context.Context, cfg *config.Config, log *logging.Logger, tracer *telemetry.Tracer, rec *metrics.Recorder) *AppModel {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = logging.Nop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = Styles.Muted

	m := &AppModel{
		Config:     cfg,
		Log:        log,
		Tracer:     tracer,
		Metrics:    rec,
		Store:      selection.New(),
		Year:       cfg.Year,
		Zoom:       cfg.Zoom,
		Map:        chart.NewMapEngine(0, 0),
		Focus:      &FocusManager{},
		KeyHandler: NewKeyHandler(newKeybindRegistry()),
		ctx:        ctx,
		spinner:    sp,
	}
	if m.Zoom == 0 {
		m.Zoom = 1
	}
	for range max(cfg.ScatterCount, 1) {
		m.addContainer()
	}
	m.Store.Subscribe(func(c selection.Change) {
		switch c.Kind {
		case selection.ChangeSelection:
			m.Metrics.SetSelectionSize(m.Store.Len())
		case selection.ChangeHover:
			m.syncHover(c.Hovered)
		}
	})
	m.Focus.Order = m.layout().FocusOrder()
	m.Focus.Current = "map"
	return m
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(
		loadDatasetCmd(a.ctx, a.Tracer, a.Config.DataPath),
		loadGeographyCmd(a.ctx, a.Tracer, a.Config.GeoPath),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.update(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.render()
}

func (m *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return nil
	case spinner.TickMsg:
		if m.loaded() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case DatasetLoadedMsg:
		m.applyDataset(msg)
		return nil
	case GeographyLoadedMsg:
		m.applyGeography(msg)
		return nil
	case tea.MouseMsg:
		if m.Overlays.Len() == 0 {
			m.handleMouse(msg)
		}
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case DismissModalMsg:
		m.Overlays.Pop()
		return nil
	case FieldChosenMsg:
		m.Overlays.Pop()
		m.chooseField(msg.Axis, msg.Field)
		return nil
	case ShowFieldPickerMsg:
		if c := m.focusedContainer(); c != nil {
			current := c.Filter().X
			if msg.Axis == "y" {
				current = c.Filter().Y
			}
			picker := NewFieldPickerModal(msg.Axis, current)
			m.Overlays.Push(Overlay{View: picker})
			return picker.Init()
		}
		return nil
	case YearStepMsg:
		m.stepYear(msg)
		return nil
	case ZoomMsg:
		m.applyZoom(msg)
		return nil
	case FocusNextMsg:
		m.Focus.Next()
		return nil
	case FocusPrevMsg:
		m.Focus.Prev()
		return nil
	case ScatterControlMsg:
		m.scatterControl(msg.Action)
		return nil
	case AddScatterMsg:
		m.addScatter()
		return nil
	case RemoveScatterMsg:
		m.removeScatter()
		return nil
	case ClearSelectionMsg:
		m.clearSelection()
		return nil
	case ClearHoverMsg:
		if h := m.Store.Hovered(); h != "" {
			m.Unhover(h)
		}
		return nil
	case ToggleDetailsMsg:
		m.ShowDetails = !m.ShowDetails
		m.Metrics.Interaction("details")
		return nil
	}
	if m.Overlays.Len() > 0 {
		cmd, _ := m.Overlays.UpdateTop(msg)
		return cmd
	}
	return nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.Overlays.Len() > 0 {
		cmd, _ := m.Overlays.UpdateTop(msg)
		return cmd
	}
	consumed, cmd := m.KeyHandler.Handle(msg, m.focusedKind())
	if !consumed && msg.String() == "esc" {
		return msgCmd(ClearHoverMsg{})
	}
	return cmd
}

func (m *AppModel) loaded() bool {
	return (m.Dataset != nil || m.DatasetErr != nil) && (m.Geography != nil || m.GeoErr != nil)
}

func (m *AppModel) applyDataset(msg DatasetLoadedMsg) {
	if msg.Err != nil {
		m.DatasetErr = msg.Err
		m.Metrics.LoadError("dataset")
		m.Log.Error("dataset load failed", "source", msg.Source, "error", msg.Err)
		return
	}
	m.Dataset = msg.Dataset
	if m.Year == 0 {
		_, hi, _ := m.Dataset.YearBounds()
		m.Year = hi
	} else {
		m.Year = m.Dataset.ClampYear(m.Year)
	}
	for _, c := range m.Containers {
		f := c.Filter()
		if !slices.Contains(m.Dataset.Years(), f.Year) {
			f.Year = m.Year
			c.SetFilter(f, m.Store, m)
		}
	}
	m.Log.Info("dataset loaded", "source", msg.Source, "records", m.Dataset.Len(), "year", m.Year)
	m.logCoverage()
}

func (m *AppModel) applyGeography(msg GeographyLoadedMsg) {
	if msg.Err != nil {
		m.GeoErr = msg.Err
		m.Metrics.LoadError("geography")
		m.Log.Error("geography load failed", "source", msg.Source, "error", msg.Err)
		return
	}
	m.Geography = msg.Geography
	m.Map.SetGeography(msg.Geography)
	m.Log.Info("geography loaded", "source", msg.Source, "features", len(msg.Geography.Features))
	m.logCoverage()
}

// syncHover lets every engine forget a hover that was replaced or cleared
// from outside it, so pointing at that country again restores it.
func (m *AppModel) syncHover(hovered string) {
	m.Map.SyncHover(hovered)
	for _, c := range m.Containers {
		c.Engine.SyncHover(hovered)
	}
}

// logCoverage reports map shapes that have no record in any year.
func (m *AppModel) logCoverage() {
	if m.Dataset == nil || m.Geography == nil {
		return
	}
	var missing []string
	for _, name := range m.Geography.Names() {
		if len(m.Dataset.Series(name)) == 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		m.Log.Debug("countries without records", "count", len(missing), "countries", missing)
	}
}

// Toggle implements chart.Dispatcher.
func (m *AppModel) Toggle(country string, year int) {
	_, span := m.Tracer.Start(m.ctx, "interaction.toggle",
		telemetry.KeyCountry.String(country), telemetry.KeyYear.Int(year))
	defer span.End()
	selected := m.Store.Toggle(country, year)
	m.Metrics.Interaction("toggle")
	m.Log.Debug("selection toggled", "country", country, "year", year, "selected", selected)
}

// Hover implements chart.Dispatcher.
func (m *AppModel) Hover(country string) {
	m.Store.SetHovered(country)
	m.Metrics.Interaction("hover")
}

// Unhover implements chart.Dispatcher. Only clears the hover if country is
// still the hovered one.
func (m *AppModel) Unhover(country string) {
	m.Store.ClearHover(country)
}

func (m *AppModel) stepYear(msg YearStepMsg) {
	if m.Dataset == nil {
		return
	}
	years := m.Dataset.Years()
	if len(years) == 0 {
		return
	}
	year := m.Year
	switch {
	case msg.ToEnd > 0:
		year = years[len(years)-1]
	case msg.ToEnd < 0:
		year = years[0]
	default:
		year = m.Dataset.ClampYear(year + msg.Delta)
	}
	if year == m.Year {
		return
	}
	m.Year = year
	m.Metrics.Interaction("year")
	m.Log.Debug("year changed", "year", year)
}

func (m *AppModel) applyZoom(msg ZoomMsg) {
	z := m.Zoom + msg.Delta
	if msg.Reset {
		z = 1
	}
	m.Zoom = min(max(z, config.MinZoom), config.MaxZoom)
	m.Metrics.Interaction("zoom")
}

func (m *AppModel) layout() dashboardLayout {
	ids := make([]int, len(m.Containers))
	for i, c := range m.Containers {
		ids[i] = c.ID
	}
	return dashboardLayout{width: m.width, height: m.height, scatterIDs: ids}
}

func (m *AppModel) focusedKind() PanelKind {
	for _, p := range m.layout().Panels() {
		if p.ID == m.Focus.Current {
			return p.Kind
		}
	}
	return PanelMap
}

func (m *AppModel) container(panelID string) *chart.Container {
	for _, c := range m.Containers {
		if scatterID(c.ID) == panelID {
			return c
		}
	}
	return nil
}

func (m *AppModel) focusedContainer() *chart.Container {
	return m.container(m.Focus.Current)
}

func (m *AppModel) addContainer() *chart.Container {
	m.nextID++
	c := chart.NewContainer(m.nextID, filter.Default(m.Year), 0, 0)
	m.Containers = append(m.Containers, c)
	return c
}

func (m *AppModel) addScatter() {
	if len(m.Containers) >= config.MaxScatterCount {
		m.status = "At most " + strconv.Itoa(config.MaxScatterCount) + " scatterplots"
		return
	}
	c := m.addContainer()
	m.Focus.SetOrder(m.layout().FocusOrder())
	m.Focus.SetFocus(scatterID(c.ID))
	m.Metrics.Interaction("add_scatter")
	m.Log.Debug("scatterplot added", "id", c.ID)
}

func (m *AppModel) removeScatter() {
	c := m.focusedContainer()
	if c == nil || len(m.Containers) <= 1 {
		return
	}
	c.Engine.Leave(m)
	if m.pointerPanel == scatterID(c.ID) {
		m.pointerPanel = ""
	}
	m.Containers = slices.DeleteFunc(m.Containers, func(x *chart.Container) bool { return x == c })
	m.Focus.SetOrder(m.layout().FocusOrder())
	m.Metrics.Interaction("remove_scatter")
	m.Log.Debug("scatterplot removed", "id", c.ID)
}

func (m *AppModel) clearSelection() {
	if m.Store.Len() == 0 {
		return
	}
	_, span := m.Tracer.Start(m.ctx, "interaction.clear")
	defer span.End()
	m.Store.Clear()
	m.Metrics.Interaction("clear")
}

func (m *AppModel) scatterControl(a ScatterAction) {
	c := m.focusedContainer()
	if c == nil {
		return
	}
	_, span := m.Tracer.Start(m.ctx, "interaction.scatter",
		telemetry.KeyView.String(scatterID(c.ID)), telemetry.KeyAction.String(a.String()))
	defer span.End()
	ds, sel := m.Dataset, m.Store
	switch a {
	case ScatterNextX:
		c.CycleX(1, sel, m)
	case ScatterPrevX:
		c.CycleX(-1, sel, m)
	case ScatterNextY:
		c.CycleY(1, sel, m)
	case ScatterPrevY:
		c.CycleY(-1, sel, m)
	case ScatterNextYear:
		c.CycleYear(1, ds, sel, m)
	case ScatterPrevYear:
		c.CycleYear(-1, ds, sel, m)
	case ScatterNextContinent:
		c.CycleContinent(1, ds, sel, m)
	case ScatterToggleRegression:
		c.ToggleRegression()
	}
	m.Metrics.Interaction(a.String())
}

func (m *AppModel) chooseField(axis, field string) {
	c := m.focusedContainer()
	if c == nil {
		return
	}
	f := c.Filter()
	if axis == "y" {
		f.Y = field
	} else {
		f.X = field
	}
	c.SetFilter(f, m.Store, m)
	m.Metrics.Interaction(axis + "_field")
}
