package ui

import (
	"happydash/internal/dataset"
	"happydash/internal/geo"
)

// DatasetLoadedMsg is sent when the records file has been read and parsed.
// Err is set (and Dataset nil) when loading failed.
type DatasetLoadedMsg struct {
	Dataset *dataset.Dataset
	Source  string
	Err     error
}

// GeographyLoadedMsg is sent when the country shapes have been loaded.
type GeographyLoadedMsg struct {
	Geography *geo.Geography
	Source    string
	Err       error
}

// YearStepMsg moves the year slider. Delta is ignored when ToEnd is set;
// ToEnd > 0 jumps to the latest year, ToEnd < 0 to the earliest.
type YearStepMsg struct {
	Delta int
	ToEnd int
}

// ZoomMsg changes the panel zoom. Reset returns to 1.
type ZoomMsg struct {
	Delta float64
	Reset bool
}

// FocusNextMsg and FocusPrevMsg rotate panel focus (tab / shift+tab).
type FocusNextMsg struct{}

type FocusPrevMsg struct{}

// ScatterAction is one control of the focused scatterplot container.
type ScatterAction int

const (
	ScatterNextX ScatterAction = iota
	ScatterPrevX
	ScatterNextY
	ScatterPrevY
	ScatterNextYear
	ScatterPrevYear
	ScatterNextContinent
	ScatterToggleRegression
)

func (a ScatterAction) String() string {
	switch a {
	case ScatterNextX, ScatterPrevX:
		return "x_field"
	case ScatterNextY, ScatterPrevY:
		return "y_field"
	case ScatterNextYear, ScatterPrevYear:
		return "scatter_year"
	case ScatterNextContinent:
		return "continent"
	case ScatterToggleRegression:
		return "regression"
	default:
		return "unknown"
	}
}

// ScatterControlMsg applies a control to the focused scatterplot.
type ScatterControlMsg struct {
	Action ScatterAction
}

// AddScatterMsg appends a scatterplot container (SPC s a).
type AddScatterMsg struct{}

// RemoveScatterMsg removes the focused scatterplot container (SPC s d).
type RemoveScatterMsg struct{}

// ClearSelectionMsg empties the selection (SPC c).
type ClearSelectionMsg struct{}

// ClearHoverMsg clears whatever country is hovered (esc).
type ClearHoverMsg struct{}

// ToggleDetailsMsg shows or hides the field descriptions under the table.
type ToggleDetailsMsg struct{}

// ShowFieldPickerMsg opens the axis field picker for the focused scatterplot.
type ShowFieldPickerMsg struct {
	Axis string // "x" or "y"
}

// FieldChosenMsg is sent when the field picker confirms a field.
type FieldChosenMsg struct {
	Axis  string
	Field string
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}
