package chart

import (
	"fmt"

	"github.com/paulmach/orb"

	"happydash/internal/dataset"
	"happydash/internal/geo"
	"happydash/internal/scale"
	"happydash/internal/scene"
)

const (
	mapStrokeWidth      = 0.6
	selectedStrokeWidth = 2
)

// MapEngine draws the choropleth of lifeLadder for one year.
//
// The projection is fitted once per (geography, canvas size) pair; hover
// and selection changes only recolour the cached shapes.
type MapEngine struct {
	geography     *geo.Geography
	width, height float64

	fitted    *geo.Geography
	fitW      float64
	fitH      float64
	fits      int
	projected []orb.MultiPolygon

	ramp  scale.Ramp
	last  *scene.Scene
	hover HoverTracker
}

// NewMapEngine returns an engine with no geography.
func NewMapEngine(width, height float64) *MapEngine {
	return &MapEngine{width: width, height: height, ramp: scale.HappinessRamp()}
}

// SetGeography swaps the country shapes.
func (e *MapEngine) SetGeography(g *geo.Geography) {
	e.geography = g
}

// Resize changes the canvas size.
func (e *MapEngine) Resize(width, height float64) {
	e.width, e.height = width, height
}

// Fits counts projection fits performed so far.
func (e *MapEngine) Fits() int {
	return e.fits
}

func (e *MapEngine) ensureProjection() {
	if e.fitted == e.geography && e.fitW == e.width && e.fitH == e.height && e.projected != nil {
		return
	}
	p := geo.Fit(e.geography, e.width, e.height)
	e.projected = make([]orb.MultiPolygon, len(e.geography.Features))
	for i, f := range e.geography.Features {
		e.projected[i] = p.MultiPolygon(f.Polygons)
	}
	e.fitted, e.fitW, e.fitH = e.geography, e.width, e.height
	e.fits++
}

// Render draws every feature coloured by its record for year. ds may be nil
// when the dataset failed to load, in which case every country has no data.
func (e *MapEngine) Render(ds *dataset.Dataset, year int, sel Selection) *scene.Scene {
	s := scene.New(e.width, e.height)
	if e.geography == nil {
		e.last = s
		return s
	}
	e.ensureProjection()
	hovered := sel.Hovered()
	for i, f := range e.geography.Features {
		rec, ok := lookup(ds, f.Name, year)
		fill := scale.NoDataColor
		if ok {
			fill = e.ramp.Color(rec.LifeLadder)
		}
		if f.Name == hovered {
			fill = scale.HoverColor
		}
		width := mapStrokeWidth
		if ok && sel.IsSelected(f.Name, year) {
			width = selectedStrokeWidth
		}
		item := s.Polygon(f.Name, e.projected[i], fill, scale.ShapeStroke, width)
		item.Title = Tooltip(f.Name, rec, ok)
	}
	e.last = s
	return s
}

// Tooltip is the hover text for a country: "Norway: 7.32" or
// "Atlantis: No data".
func Tooltip(country string, rec dataset.Record, ok bool) string {
	if !ok {
		return country + ": No data"
	}
	return fmt.Sprintf("%s: %.2f", country, rec.LifeLadder)
}

// HitTest returns the country under p on the last rendered scene.
func (e *MapEngine) HitTest(p orb.Point) (string, bool) {
	if e.last == nil {
		return "", false
	}
	it, ok := e.last.Hit(p, 0)
	if !ok {
		return "", false
	}
	return it.ID, true
}

// Move handles pointer motion inside the map.
func (e *MapEngine) Move(p orb.Point, d Dispatcher) {
	name, _ := e.HitTest(p)
	e.hover.Move(name, d)
}

// Leave handles the pointer leaving the map.
func (e *MapEngine) Leave(d Dispatcher) {
	e.hover.Move("", d)
}

// SyncHover drops the map's hover once hovered (the store's value) has
// moved elsewhere.
func (e *MapEngine) SyncHover(hovered string) {
	e.hover.Sync(hovered)
}

// Click toggles the country under p for year. Countries without a record
// for that year are not selectable.
func (e *MapEngine) Click(p orb.Point, ds *dataset.Dataset, year int, d Dispatcher) bool {
	name, ok := e.HitTest(p)
	if !ok {
		return false
	}
	if _, ok := lookup(ds, name, year); !ok {
		return false
	}
	d.Toggle(name, year)
	return true
}

// TooltipAt returns the tooltip for the country under p.
func (e *MapEngine) TooltipAt(p orb.Point) string {
	if e.last == nil {
		return ""
	}
	it, ok := e.last.Hit(p, 0)
	if !ok {
		return ""
	}
	return it.Title
}

func lookup(ds *dataset.Dataset, country string, year int) (dataset.Record, bool) {
	if ds == nil {
		return dataset.Record{}, false
	}
	return ds.Find(country, year)
}
