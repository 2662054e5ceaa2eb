package chart

import (
	"slices"

	"happydash/internal/dataset"
	"happydash/internal/filter"
	"happydash/internal/scene"
)

// Container is one scatterplot with its own filter controls. Containers
// share the selection store but never each other's filters.
type Container struct {
	ID     int
	Engine *ScatterEngine

	filter filter.ViewFilter

	subsetDS  *dataset.Dataset
	subsetFor filter.ViewFilter
	subset    []dataset.Record
	subsetOK  bool
}

// NewContainer returns a container showing f.
func NewContainer(id int, f filter.ViewFilter, width, height float64) *Container {
	return &Container{ID: id, Engine: NewScatterEngine(width, height), filter: f}
}

// Filter returns the current filter.
func (c *Container) Filter() filter.ViewFilter {
	return c.filter
}

// Points returns the filtered records, recomputed only when the filter or
// dataset changes.
func (c *Container) Points(ds *dataset.Dataset) []dataset.Record {
	if ds == nil {
		return nil
	}
	if c.subsetOK && c.subsetDS == ds && c.subsetFor == c.filter {
		return c.subset
	}
	c.subset = c.filter.Apply(ds)
	c.subsetDS, c.subsetFor, c.subsetOK = ds, c.filter, true
	return c.subset
}

// SetFilter replaces the filter. A hover set through this container's plot
// is cleared first since its point may not survive the change; hovers from
// other views are left alone.
func (c *Container) SetFilter(f filter.ViewFilter, sel Selection, d Dispatcher) {
	if f == c.filter {
		return
	}
	if h := c.Engine.Hovering(); h != "" && sel.Hovered() == h {
		d.Unhover(h)
	}
	c.Engine.hover.Reset()
	c.filter = f
}

// CycleX moves the x axis to the next (delta > 0) or previous field.
func (c *Container) CycleX(delta int, sel Selection, d Dispatcher) {
	f := c.filter
	f.X = cycleField(f.X, delta)
	c.SetFilter(f, sel, d)
}

// CycleY moves the y axis to the next or previous field.
func (c *Container) CycleY(delta int, sel Selection, d Dispatcher) {
	f := c.filter
	f.Y = cycleField(f.Y, delta)
	c.SetFilter(f, sel, d)
}

// CycleYear steps through the years present in ds.
func (c *Container) CycleYear(delta int, ds *dataset.Dataset, sel Selection, d Dispatcher) {
	if ds == nil {
		return
	}
	f := c.filter
	f.Year = cycle(ds.Years(), f.Year, delta)
	c.SetFilter(f, sel, d)
}

// CycleContinent steps through the dataset continents and "All".
func (c *Container) CycleContinent(delta int, ds *dataset.Dataset, sel Selection, d Dispatcher) {
	if ds == nil {
		return
	}
	f := c.filter
	f.Continent = cycle(filter.Continents(ds), f.Continent, delta)
	c.SetFilter(f, sel, d)
}

// ToggleRegression flips the regression overlay.
func (c *Container) ToggleRegression() {
	c.Engine.Regression = !c.Engine.Regression
}

// Render draws the container's current subset.
func (c *Container) Render(ds *dataset.Dataset, sel Selection) (*scene.Scene, error) {
	return c.Engine.Render(c.Points(ds), c.filter.X, c.filter.Y, sel)
}

func cycleField(key string, delta int) string {
	keys := make([]string, 0, len(dataset.Fields()))
	for _, f := range dataset.Fields() {
		keys = append(keys, f.Key)
	}
	return cycle(keys, key, delta)
}

// cycle returns the element delta steps away from cur, wrapping around.
// An unknown cur starts from the first element.
func cycle[T comparable](items []T, cur T, delta int) T {
	if len(items) == 0 {
		return cur
	}
	i := slices.Index(items, cur)
	if i < 0 {
		return items[0]
	}
	n := len(items)
	return items[((i+delta)%n+n)%n]
}
