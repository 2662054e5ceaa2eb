package chart

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"

	"happydash/internal/dataset"
	"happydash/internal/scale"
	"happydash/internal/scene"
)

const (
	pointRadius   = 5
	hoveredRadius = 7
	selectedWidth = 3
	tickCount     = 5
)

// EmptyLabel is drawn when a filter matches no records.
const EmptyLabel = "No data for this filter"

// ScatterMargin is the default space around the plot area.
var ScatterMargin = Margin{Top: 20, Right: 12, Bottom: 32, Left: 36}

type scatterMemo struct {
	first *dataset.Record
	n     int
	x, y  string

	xd, yd scale.Domain
	fit    scale.Fit
	fitOK  bool
}

// ScatterEngine plots one filtered subset of records on two numeric fields.
//
// Axis domains and the regression fit depend only on the subset and the
// chosen fields, so they are memoized against those and survive hover and
// selection re-renders.
type ScatterEngine struct {
	Margin Margin
	// Regression draws the least-squares line for the displayed points.
	Regression bool
	// Slop widens point hit testing, in canvas units.
	Slop float64

	width, height float64

	memo     scatterMemo
	memoOK   bool
	computes int

	last  *scene.Scene
	keys  map[string]dataset.Key
	hover HoverTracker
}

// NewScatterEngine returns an engine drawing onto a width x height canvas.
func NewScatterEngine(width, height float64) *ScatterEngine {
	return &ScatterEngine{Margin: ScatterMargin, width: width, height: height}
}

// Resize changes the canvas size.
func (e *ScatterEngine) Resize(width, height float64) {
	e.width, e.height = width, height
}

// Computes counts domain/regression recomputations.
func (e *ScatterEngine) Computes() int {
	return e.computes
}

func (e *ScatterEngine) derive(points []dataset.Record, xField, yField dataset.Field) scatterMemo {
	var first *dataset.Record
	if len(points) > 0 {
		first = &points[0]
	}
	if e.memoOK && e.memo.first == first && e.memo.n == len(points) && e.memo.x == xField.Key && e.memo.y == yField.Key {
		return e.memo
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, r := range points {
		xs[i] = xField.Value(r)
		ys[i] = yField.Value(r)
	}
	fixed := xField.Key == dataset.FieldPCA1 && yField.Key == dataset.FieldPCA2
	m := scatterMemo{first: first, n: len(points), x: xField.Key, y: yField.Key}
	m.xd, m.yd = scale.AxisDomains(fixed, xs, ys)
	m.fit, m.fitOK = scale.OLS(xs, ys)
	e.memo, e.memoOK = m, true
	e.computes++
	return m
}

// Domains returns the axis domains used by the last render.
func (e *ScatterEngine) Domains() (x, y scale.Domain) {
	return e.memo.xd, e.memo.yd
}

// Fit returns the regression for the last render; ok is false when no line
// can be fitted.
func (e *ScatterEngine) Fit() (scale.Fit, bool) {
	return e.memo.fit, e.memo.fitOK
}

// Render plots points on the xKey/yKey fields.
func (e *ScatterEngine) Render(points []dataset.Record, xKey, yKey string, sel Selection) (*scene.Scene, error) {
	xField, err := dataset.FieldByKey(xKey)
	if err != nil {
		return nil, err
	}
	yField, err := dataset.FieldByKey(yKey)
	if err != nil {
		return nil, err
	}
	m := e.derive(points, xField, yField)

	s := scene.New(e.width, e.height)
	left, right := e.Margin.Left, e.width-e.Margin.Right
	top, bottom := e.Margin.Top, e.height-e.Margin.Bottom
	xs := scale.NewLinear(m.xd, left, right)
	ys := scale.NewLinear(m.yd, bottom, top)

	e.drawAxes(s, xs, ys, xField, yField)

	if len(points) == 0 {
		s.Text(orb.Point{(left + right) / 2, (top + bottom) / 2}, EmptyLabel, scene.AnchorMiddle, 12, scale.AxisColor)
	}

	if e.Regression && m.fitOK {
		if seg, ok := m.fit.Clip(m.xd, m.yd); ok {
			s.Line(orb.Point{xs.Map(seg.X1), ys.Map(seg.Y1)}, orb.Point{xs.Map(seg.X2), ys.Map(seg.Y2)}, scale.RegressionLine, 2)
		}
	}

	hovered := sel.Hovered()
	e.keys = make(map[string]dataset.Key, len(points))
	var hot []dataset.Record
	for _, r := range points {
		if r.CountryName == hovered {
			hot = append(hot, r)
			continue
		}
		e.point(s, r, xs.Map(xField.Value(r)), ys.Map(yField.Value(r)), false, sel)
	}
	for _, r := range hot {
		px, py := xs.Map(xField.Value(r)), ys.Map(yField.Value(r))
		e.point(s, r, px, py, true, sel)
		s.Text(orb.Point{px + hoveredRadius + 2, py - hoveredRadius - 2}, r.CountryName, scene.AnchorStart, 11, scale.AxisColor)
	}
	e.last = s
	return s, nil
}

func (e *ScatterEngine) point(s *scene.Scene, r dataset.Record, px, py float64, hovered bool, sel Selection) {
	key := r.Key()
	id := key.String()
	e.keys[id] = key
	radius, fill := float64(pointRadius), scale.ContinentColor(r.Continent)
	if hovered {
		radius, fill = hoveredRadius, scale.HoverColor
	}
	it := s.Circle(id, orb.Point{px, py}, radius, fill)
	it.Title = fmt.Sprintf("%s (%s)", r.CountryName, r.Continent)
	if sel.IsSelected(r.CountryName, r.Year) {
		it.Stroke, it.StrokeWidth = scale.SelectedStroke, selectedWidth
	}
}

func (e *ScatterEngine) drawAxes(s *scene.Scene, xs, ys scale.Linear, xField, yField dataset.Field) {
	left, right := e.Margin.Left, e.width-e.Margin.Right
	top, bottom := e.Margin.Top, e.height-e.Margin.Bottom

	s.Line(orb.Point{left, bottom}, orb.Point{right, bottom}, scale.AxisColor, 1)
	s.Line(orb.Point{left, top}, orb.Point{left, bottom}, scale.AxisColor, 1)
	for _, t := range xs.Ticks(tickCount) {
		px := xs.Map(t)
		s.Line(orb.Point{px, bottom}, orb.Point{px, bottom + 4}, scale.AxisColor, 1)
		s.Text(orb.Point{px, bottom + 14}, tickLabel(t), scene.AnchorMiddle, 10, scale.AxisColor)
	}
	for _, t := range ys.Ticks(tickCount) {
		py := ys.Map(t)
		s.Line(orb.Point{left - 4, py}, orb.Point{left, py}, scale.AxisColor, 1)
		s.Text(orb.Point{left - 6, py + 3}, tickLabel(t), scene.AnchorEnd, 10, scale.AxisColor)
	}
	s.Text(orb.Point{(left + right) / 2, e.height - 4}, xField.Label(), scene.AnchorMiddle, 11, scale.AxisColor)
	s.Text(orb.Point{left, top - 6}, yField.Label(), scene.AnchorStart, 11, scale.AxisColor)
}

func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HitTest returns the record identity under p on the last rendered scene.
func (e *ScatterEngine) HitTest(p orb.Point) (dataset.Key, bool) {
	if e.last == nil {
		return dataset.Key{}, false
	}
	it, ok := e.last.Hit(p, e.Slop)
	if !ok {
		return dataset.Key{}, false
	}
	key, ok := e.keys[it.ID]
	return key, ok
}

// Move handles pointer motion inside the plot.
func (e *ScatterEngine) Move(p orb.Point, d Dispatcher) {
	key, _ := e.HitTest(p)
	e.hover.Move(key.Country, d)
}

// Leave handles the pointer leaving the plot.
func (e *ScatterEngine) Leave(d Dispatcher) {
	e.hover.Move("", d)
}

// SyncHover drops the plot's hover once hovered has moved elsewhere.
func (e *ScatterEngine) SyncHover(hovered string) {
	e.hover.Sync(hovered)
}

// Hovering is the country this plot put into the hover state, or "".
func (e *ScatterEngine) Hovering() string {
	return e.hover.Current()
}

// Click toggles the record under p.
func (e *ScatterEngine) Click(p orb.Point, d Dispatcher) bool {
	key, ok := e.HitTest(p)
	if !ok {
		return false
	}
	d.Toggle(key.Country, key.Year)
	return true
}
