package chart

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"happydash/internal/dataset"
	"happydash/internal/geo"
	"happydash/internal/scene"
	"happydash/internal/selection"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]dataset.Record{
		{
			CountryName: "Norway", Year: 2023, Continent: "Europe",
			LifeLadder: 7.32, GDPPerCapita: 11.08, SocialSupport: 0.95,
			HealthyLifeExpectancyAtBirth: 71.3, FreedomToMakeLifeChoices: 0.95,
			Generosity: 0.12, Corruption: 0.25, PositiveAffect: 0.7, NegativeAffect: 0.2,
			PCA1: 2.1, PCA2: 0.5,
		},
		{CountryName: "Sweden", Year: 2023, Continent: "Europe", LifeLadder: 7.16, PCA1: 1.8, PCA2: 0.2},
		{CountryName: "Kenya", Year: 2023, Continent: "Africa", LifeLadder: 4.47, PCA1: -1.5, PCA2: -0.8},
		{CountryName: "Norway", Year: 2022, Continent: "Europe", LifeLadder: 7.29, PCA1: 2.0, PCA2: 0.4},
		{CountryName: "Japan", Year: 2021, Continent: "Asia", LifeLadder: 6.09, PCA1: 0.9, PCA2: -0.3},
	})
	require.NoError(t, err)
	return ds
}

func lonLatSquare(lon0, lat0, lon1, lat1 float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{{lon0, lat0}, {lon1, lat0}, {lon1, lat1}, {lon0, lat1}, {lon0, lat0}}}}
}

func testGeography() *geo.Geography {
	return &geo.Geography{Features: []geo.Feature{
		{Name: "Norway", Polygons: lonLatSquare(5, 58, 15, 68)},
		{Name: "Atlantis", Polygons: lonLatSquare(-40, 20, -30, 30)},
	}}
}

// recorder applies dispatched interactions to a store the way the
// dashboard controller does, and logs them.
type recorder struct {
	store *selection.Store
	calls []string
}

func newRecorder() *recorder {
	return &recorder{store: selection.New()}
}

func (r *recorder) Toggle(country string, year int) {
	r.calls = append(r.calls, fmt.Sprintf("toggle %s %d", country, year))
	r.store.Toggle(country, year)
}

func (r *recorder) Hover(country string) {
	r.calls = append(r.calls, "hover "+country)
	r.store.SetHovered(country)
}

func (r *recorder) Unhover(country string) {
	r.calls = append(r.calls, "unhover "+country)
	r.store.ClearHover(country)
}

func itemByID(t *testing.T, s *scene.Scene, id string) scene.Item {
	t.Helper()
	items := s.Find(id)
	require.Len(t, items, 1, "item %q", id)
	return items[0]
}

func texts(s *scene.Scene) []string {
	var out []string
	for _, it := range s.Items {
		if it.Kind == scene.KindText {
			out = append(out, it.Text)
		}
	}
	return out
}

func count(s *scene.Scene, k scene.Kind) int {
	n := 0
	for _, it := range s.Items {
		if it.Kind == k {
			n++
		}
	}
	return n
}
