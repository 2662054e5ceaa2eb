package ui

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"happydash/internal/assets"
	"happydash/internal/telemetry"

	tea "github.com/charmbracelet/bubbletea"
)

// loadDatasetCmd reads the records file, or the embedded sample when path
// is empty. Runs off the Update goroutine.
func loadDatasetCmd(ctx context.Context, tracer *telemetry.Tracer, path string) tea.Cmd {
	return func() tea.Msg {
		source := assets.Source(path)
		_, span := tracer.Start(ctx, "load.dataset", telemetry.KeyPath.String(source))
		defer span.End()

		ds, err := assets.Dataset(path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return DatasetLoadedMsg{Source: source, Err: err}
		}
		return DatasetLoadedMsg{Dataset: ds, Source: source}
	}
}

// loadGeographyCmd reads the GeoJSON file, or the embedded outlines.
func loadGeographyCmd(ctx context.Context, tracer *telemetry.Tracer, path string) tea.Cmd {
	return func() tea.Msg {
		source := assets.Source(path)
		_, span := tracer.Start(ctx, "load.geography", telemetry.KeyPath.String(source))
		defer span.End()

		g, err := assets.Geography(path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return GeographyLoadedMsg{Source: source, Err: err}
		}
		return GeographyLoadedMsg{Geography: g, Source: source}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// newKeybindRegistry wires every dashboard key. Scatterplot controls only
// apply while a scatterplot has focus.
func newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	reg.BindWithDesc("[", msgCmd(YearStepMsg{Delta: -1}), "Previous year")
	reg.BindWithDesc("]", msgCmd(YearStepMsg{Delta: 1}), "Next year")
	reg.BindWithDesc("home", msgCmd(YearStepMsg{ToEnd: -1}), "First year")
	reg.BindWithDesc("end", msgCmd(YearStepMsg{ToEnd: 1}), "Last year")

	reg.BindWithDesc("+", msgCmd(ZoomMsg{Delta: zoomStep}), "Zoom in")
	reg.BindWithDesc("=", msgCmd(ZoomMsg{Delta: zoomStep}), "Zoom in")
	reg.BindWithDesc("-", msgCmd(ZoomMsg{Delta: -zoomStep}), "Zoom out")
	reg.BindWithDesc("0", msgCmd(ZoomMsg{Reset: true}), "Reset zoom")

	reg.BindWithDesc("tab", msgCmd(FocusNextMsg{}), "Next panel")
	reg.BindWithDesc("shift+tab", msgCmd(FocusPrevMsg{}), "Previous panel")
	reg.BindWithDesc("d", msgCmd(ToggleDetailsMsg{}), "Descriptions")

	scatter := []PanelKind{PanelScatter}
	bindScatter := func(seq string, a ScatterAction, desc string) {
		reg.BindWithDescForPanel(seq, msgCmd(ScatterControlMsg{Action: a}), desc, scatter)
	}
	bindScatter("x", ScatterNextX, "Next x field")
	bindScatter("X", ScatterPrevX, "Previous x field")
	bindScatter("y", ScatterNextY, "Next y field")
	bindScatter("Y", ScatterPrevY, "Previous y field")
	bindScatter("n", ScatterNextYear, "Next scatter year")
	bindScatter("p", ScatterPrevYear, "Previous scatter year")
	bindScatter("c", ScatterNextContinent, "Next continent")
	bindScatter("r", ScatterToggleRegression, "Regression line")

	reg.BindWithDesc("SPC c", msgCmd(ClearSelectionMsg{}), "Clear selection")
	reg.BindWithDesc("SPC s a", msgCmd(AddScatterMsg{}), "Add scatterplot")
	reg.BindWithDescForPanel("SPC s d", msgCmd(RemoveScatterMsg{}), "Remove scatterplot", scatter)
	reg.BindWithDescForPanel("SPC f x", msgCmd(ShowFieldPickerMsg{Axis: "x"}), "Pick x field", scatter)
	reg.BindWithDescForPanel("SPC f y", msgCmd(ShowFieldPickerMsg{Axis: "y"}), "Pick y field", scatter)
	return reg
}
