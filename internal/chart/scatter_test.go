package chart

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"happydash/internal/dataset"
	"happydash/internal/filter"
	"happydash/internal/scale"
	"happydash/internal/scene"
)

func TestScatterEngine_DefaultAxesUseFixedDomain(t *testing.T) {
	ds := testDataset(t)
	e := NewScatterEngine(200, 200)
	points := filter.Project(ds.Records(), 2023, filter.AllContinents)

	s, err := e.Render(points, dataset.FieldPCA1, dataset.FieldPCA2, newRecorder().store)
	require.NoError(t, err)

	xd, yd := e.Domains()
	assert.Equal(t, scale.PCADomain, xd)
	assert.Equal(t, scale.PCADomain, yd)
	assert.Equal(t, 3, count(s, scene.KindCircle))

	norway := itemByID(t, s, "Norway:2023")
	assert.Equal(t, scale.ContinentColor("Europe"), norway.Fill)
	assert.Equal(t, 5.0, norway.Radius)
	assert.Contains(t, texts(s), "Pca1")
	assert.Contains(t, texts(s), "Pca2")
}

func TestScatterEngine_DynamicDomain(t *testing.T) {
	ds := testDataset(t)
	e := NewScatterEngine(200, 200)
	points := filter.Project(ds.Records(), 2023, filter.AllContinents)

	_, err := e.Render(points, "lifeLadder", dataset.FieldPCA2, newRecorder().store)
	require.NoError(t, err)

	xd, yd := e.Domains()
	assert.Equal(t, scale.PaddedDomain([]float64{7.32, 7.16, 4.47}), xd)
	assert.Equal(t, 0.0, xd.Min, "positive data keeps zero in view")
	assert.Equal(t, scale.PaddedDomain([]float64{0.5, 0.2, -0.8}), yd)
}

func TestScatterEngine_UnknownField(t *testing.T) {
	e := NewScatterEngine(200, 200)
	_, err := e.Render(nil, "bogus", dataset.FieldPCA2, newRecorder().store)
	assert.ErrorIs(t, err, dataset.ErrUnknownField)
}

func TestScatterEngine_EmptySubset(t *testing.T) {
	ds := testDataset(t)
	c := NewContainer(1, filter.ViewFilter{Year: 2020, Continent: "Asia", X: dataset.FieldPCA1, Y: dataset.FieldPCA2}, 200, 200)

	s, err := c.Render(ds, newRecorder().store)
	require.NoError(t, err)
	assert.Empty(t, c.Points(ds))
	assert.Equal(t, 0, count(s, scene.KindCircle))
	assert.Contains(t, texts(s), EmptyLabel)
	assert.Greater(t, count(s, scene.KindLine), 2, "axes are still drawn")

	xd, _ := c.Engine.Domains()
	assert.Equal(t, scale.PCADomain, xd)
}

func TestScatterEngine_HoverAndSelection(t *testing.T) {
	ds := testDataset(t)
	rec := newRecorder()
	e := NewScatterEngine(200, 200)
	points := filter.Project(ds.Records(), 2023, filter.AllContinents)

	s, err := e.Render(points, dataset.FieldPCA1, dataset.FieldPCA2, rec.store)
	require.NoError(t, err)
	kenya := itemByID(t, s, "Kenya:2023").Center

	e.Move(kenya, rec)
	assert.Equal(t, "Kenya", rec.store.Hovered())
	require.True(t, e.Click(kenya, rec))
	assert.True(t, rec.store.IsSelected("Kenya", 2023))

	s, err = e.Render(points, dataset.FieldPCA1, dataset.FieldPCA2, rec.store)
	require.NoError(t, err)
	hot := itemByID(t, s, "Kenya:2023")
	assert.Equal(t, 7.0, hot.Radius)
	assert.Equal(t, scale.HoverColor, hot.Fill)
	assert.Equal(t, scale.SelectedStroke, hot.Stroke, "selection and hover compose")
	assert.Equal(t, 3.0, hot.StrokeWidth)
	assert.Contains(t, texts(s), "Kenya")

	var lastCircle scene.Item
	for _, it := range s.Items {
		if it.Kind == scene.KindCircle {
			lastCircle = it
		}
	}
	assert.Equal(t, "Kenya:2023", lastCircle.ID, "hovered point is drawn on top")

	e.Leave(rec)
	assert.Equal(t, "", rec.store.Hovered())
	assert.Equal(t, []string{"hover Kenya", "toggle Kenya 2023", "unhover Kenya"}, rec.calls)
}

func TestScatterEngine_MissesEmptySpace(t *testing.T) {
	ds := testDataset(t)
	rec := newRecorder()
	e := NewScatterEngine(200, 200)
	_, err := e.Render(filter.Project(ds.Records(), 2023, filter.AllContinents), dataset.FieldPCA1, dataset.FieldPCA2, rec.store)
	require.NoError(t, err)

	// Top-left corner of the plot is (-5, 5): nothing there.
	p := orb.Point{e.Margin.Left + 1, e.Margin.Top + 1}
	assert.False(t, e.Click(p, rec))
	e.Move(p, rec)
	assert.Empty(t, rec.calls)
}

func TestScatterEngine_Regression(t *testing.T) {
	ds, err := dataset.New([]dataset.Record{
		{CountryName: "A", Year: 2020, Continent: "Europe", GDPPerCapita: 1, SocialSupport: 2},
		{CountryName: "B", Year: 2020, Continent: "Europe", GDPPerCapita: 2, SocialSupport: 4},
		{CountryName: "C", Year: 2020, Continent: "Europe", GDPPerCapita: 3, SocialSupport: 6},
	})
	require.NoError(t, err)
	e := NewScatterEngine(200, 200)
	points := ds.Records()

	s, err := e.Render(points, "gpdPerCapita", "socialSupport", newRecorder().store)
	require.NoError(t, err)
	fit, ok := e.Fit()
	require.True(t, ok)
	assert.InDelta(t, 2, fit.Slope, 1e-9)
	assert.InDelta(t, 0, fit.Intercept, 1e-9)
	assert.False(t, hasRegressionLine(s), "overlay is off by default")

	e.Regression = true
	s, err = e.Render(points, "gpdPerCapita", "socialSupport", newRecorder().store)
	require.NoError(t, err)
	assert.True(t, hasRegressionLine(s))
	assert.Equal(t, 1, e.Computes(), "toggling the overlay reuses the fit")
}

func TestScatterEngine_RegressionNeedsTwoPoints(t *testing.T) {
	ds := testDataset(t)
	e := NewScatterEngine(200, 200)
	e.Regression = true
	points := filter.Project(ds.Records(), 2021, filter.AllContinents)
	require.Len(t, points, 1)

	s, err := e.Render(points, dataset.FieldPCA1, dataset.FieldPCA2, newRecorder().store)
	require.NoError(t, err)
	_, ok := e.Fit()
	assert.False(t, ok)
	assert.False(t, hasRegressionLine(s))
}

func hasRegressionLine(s *scene.Scene) bool {
	for _, it := range s.Items {
		if it.Kind == scene.KindLine && it.Stroke == scale.RegressionLine {
			return true
		}
	}
	return false
}

func TestScatterEngine_MemoizesAcrossHover(t *testing.T) {
	ds := testDataset(t)
	rec := newRecorder()
	c := NewContainer(1, filter.Default(2023), 200, 200)

	_, err := c.Render(ds, rec.store)
	require.NoError(t, err)
	rec.Hover("Norway")
	_, err = c.Render(ds, rec.store)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Engine.Computes())

	c.CycleYear(-1, ds, rec.store, rec)
	_, err = c.Render(ds, rec.store)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Engine.Computes())
	assert.Equal(t, 2022, c.Filter().Year)
}
