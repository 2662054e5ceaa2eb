// Package scale maps data values to colours and canvas positions. Every
// render engine uses these functions so the map, scatterplots and legends
// agree on colours.
package scale

// Fixed colours shared by all views.
const (
	NoDataColor    = "#cccccc"
	HoverColor     = "#ffff33"
	SelectedStroke = "#ffff00"
	ShapeStroke    = "#333333"
	AxisColor      = "#000000"
	RegressionLine = "#d62728"
	unknownColor   = "#999999"
)

// HoveredLabel is the pseudo-category the legends use for the hover colour.
const HoveredLabel = "Hovered"

// Set1 palette, assigned to continents in this order. "Hovered" occupies a
// slot so the hover colour matches the continent legend.
var continentSlots = []string{
	"Africa", "Asia", "Europe", "North America", "Oceania", HoveredLabel, "South America",
}

var set1 = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33", "#a65628",
}

// ContinentColor returns the point colour for a continent. Continents
// outside the known set share a neutral grey.
func ContinentColor(continent string) string {
	for i, c := range continentSlots {
		if c == continent {
			return set1[i]
		}
	}
	return unknownColor
}

// LegendEntries returns the continent legend labels in display order, with
// the hover pseudo-category last.
func LegendEntries() []string {
	return []string{"Africa", "Asia", "Europe", "North America", "Oceania", "South America", HoveredLabel}
}
