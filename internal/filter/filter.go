// Package filter derives the visible subset of records for one view.
package filter

import "happydash/internal/dataset"

// AllContinents matches every continent.
const AllContinents = "All"

// Project returns the records for year whose continent matches (or every
// continent when continent is AllContinents). Source order is preserved and
// records is never modified. The result may be empty.
func Project(records []dataset.Record, year int, continent string) []dataset.Record {
	out := make([]dataset.Record, 0)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		if continent != AllContinents && r.Continent != continent {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ViewFilter is one scatterplot container's independent filter state.
type ViewFilter struct {
	Year      int
	Continent string
	X         string
	Y         string
}

// Default returns the initial filter: every continent, PCA axes.
func Default(year int) ViewFilter {
	return ViewFilter{
		Year:      year,
		Continent: AllContinents,
		X:         dataset.FieldPCA1,
		Y:         dataset.FieldPCA2,
	}
}

// Apply projects ds through the filter.
func (f ViewFilter) Apply(ds *dataset.Dataset) []dataset.Record {
	return Project(ds.Records(), f.Year, f.Continent)
}

// DefaultAxes reports whether both axes are the PCA pair, which use a fixed
// domain instead of one computed from the data.
func (f ViewFilter) DefaultAxes() bool {
	return f.X == dataset.FieldPCA1 && f.Y == dataset.FieldPCA2
}

// Continents returns the continent choices for ds: every dataset continent
// followed by AllContinents.
func Continents(ds *dataset.Dataset) []string {
	return append(ds.Continents(), AllContinents)
}
