package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"countryName":"Norway","year":2023,"continent":"Europe","lifeLadder":7.32,"gpdPerCapita":11.08,
   "socialSupport":0.93,"healthyLifeExpectancyAtBirth":71.4,"freedomToMakeLifeChoices":0.95,
   "generosity":0.13,"corruption":0.27,"positiveAffect":0.76,"negativeAffect":0.21,
   "gpdPerCapita_z":1.6,"socialSupport_z":1.1,"healthyLifeExpectancyAtBirth_z":1.2,
   "freedomToMakeLifeChoices_z":1.3,"generosity_z":0.9,"corruption_z":-2.4,"pca1":3.1,"pca2":-0.4},
  {"countryName":"Kenya","year":2023,"continent":"Africa","lifeLadder":4.47,"gpdPerCapita":8.38,
   "pca1":-1.2,"pca2":0.8},
  {"countryName":"Norway","year":2022,"continent":"Europe","lifeLadder":7.29,"pca1":3.0,"pca2":-0.3}
]`

func TestParse(t *testing.T) {
	ds, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []int{2022, 2023}, ds.Years())
	assert.Equal(t, []string{"Africa", "Europe"}, ds.Continents())

	// Source order is preserved.
	assert.Equal(t, "Norway", ds.Records()[0].CountryName)
	assert.Equal(t, "Kenya", ds.Records()[1].CountryName)

	r, ok := ds.Find("Norway", 2023)
	require.True(t, ok)
	assert.InDelta(t, 7.32, r.LifeLadder, 1e-9)
	assert.InDelta(t, 1.6, r.GDPPerCapitaZ, 1e-9)

	_, ok = ds.Find("Norway", 2005)
	assert.False(t, ok)
}

func TestNew_RejectsDuplicateIdentity(t *testing.T) {
	_, err := New([]Record{
		{CountryName: "Chad", Year: 2020},
		{CountryName: "Chad", Year: 2021},
		{CountryName: "Chad", Year: 2020},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateRecord))
	assert.Contains(t, err.Error(), "Chad:2020")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`[]`))
	assert.Error(t, err, "empty dataset is a load failure")

	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0644))
	_, err = Load(empty)
	assert.ErrorContains(t, err, "dataset: empty result")
}

func TestYearsAndContinents_ReturnCopies(t *testing.T) {
	ds, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	years := ds.Years()
	years[0] = 1900
	continents := ds.Continents()
	continents[0] = "Atlantis"

	assert.Equal(t, []int{2022, 2023}, ds.Years())
	assert.Equal(t, []string{"Africa", "Europe"}, ds.Continents())
	lo, _, _ := ds.YearBounds()
	assert.Equal(t, 2022, lo)
}

func TestYearBoundsAndClamp(t *testing.T) {
	ds, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	lo, hi, ok := ds.YearBounds()
	require.True(t, ok)
	assert.Equal(t, 2022, lo)
	assert.Equal(t, 2023, hi)

	assert.Equal(t, 2022, ds.ClampYear(1999))
	assert.Equal(t, 2023, ds.ClampYear(2050))
	assert.Equal(t, 2022, ds.ClampYear(2022))

	empty, err := New(nil)
	require.NoError(t, err)
	_, _, ok = empty.YearBounds()
	assert.False(t, ok)
	assert.Equal(t, 2010, empty.ClampYear(2010))
}

func TestSeries(t *testing.T) {
	ds, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	s := ds.Series("Norway")
	require.Len(t, s, 2)
	assert.Equal(t, 2022, s[0].Year)
	assert.Equal(t, 2023, s[1].Year)

	assert.Empty(t, ds.Series("Atlantis"))
}

func TestFieldByKey(t *testing.T) {
	f, err := FieldByKey("healthyLifeExpectancyAtBirth")
	require.NoError(t, err)
	assert.Equal(t, 0, f.Decimals)
	assert.InDelta(t, 71.4, f.Value(Record{HealthyLifeExpectancyAtBirth: 71.4}), 1e-9)

	_, err = FieldByKey("countryName")
	assert.True(t, errors.Is(err, ErrUnknownField))

	assert.Panics(t, func() { MustField("continent") })
}

func TestFields_ExcludeIdentityColumns(t *testing.T) {
	for _, f := range Fields() {
		switch f.Key {
		case "countryName", "year", "continent":
			t.Errorf("field %q must not be selectable", f.Key)
		}
	}
	assert.Len(t, Fields(), 17)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"lifeLadder", "Life Ladder"},
		{"gpdPerCapita_z", "Normalized gpd Per Capita"},
		{"pca1", "Pca1"},
		{"healthyLifeExpectancyAtBirth", "Healthy Life Expectancy At Birth"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.key))
		})
	}
}
