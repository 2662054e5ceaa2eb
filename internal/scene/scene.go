// Package scene is the backend-neutral drawing model shared by the chart
// engines. A Scene is an ordered list of primitives in canvas pixels
// (origin top-left, y down); later items paint over earlier ones.
//
// Three backends consume it: Rasterize (terminal cells), WriteSVG and
// WritePNG.
package scene

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Kind identifies the primitive stored in an Item.
type Kind int

const (
	KindPolygon Kind = iota
	KindCircle
	KindLine
	KindRect
	KindText
)

// Anchor is the horizontal text alignment relative to Item.At.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Item is one drawable primitive. Only the fields relevant to Kind are set.
type Item struct {
	Kind Kind

	// ID is the hit-test identity ("" for decoration).
	ID string
	// Title is the tooltip text written as <title> in SVG.
	Title string

	Shape  orb.MultiPolygon // KindPolygon
	Center orb.Point        // KindCircle
	Radius float64          // KindCircle
	From   orb.Point        // KindLine
	To     orb.Point        // KindLine
	Bound  orb.Bound        // KindRect
	At     orb.Point        // KindText
	Text   string           // KindText
	Anchor Anchor           // KindText
	Size   float64          // KindText font size in pixels

	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Scene is a fixed-size drawing.
type Scene struct {
	Width, Height float64
	Background    string
	Items         []Item
}

// New returns an empty scene of the given size.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// Polygon appends a filled shape.
func (s *Scene) Polygon(id string, mp orb.MultiPolygon, fill, stroke string, width float64) *Item {
	s.Items = append(s.Items, Item{Kind: KindPolygon, ID: id, Shape: mp, Fill: fill, Stroke: stroke, StrokeWidth: width})
	return &s.Items[len(s.Items)-1]
}

// Circle appends a filled circle.
func (s *Scene) Circle(id string, c orb.Point, r float64, fill string) *Item {
	s.Items = append(s.Items, Item{Kind: KindCircle, ID: id, Center: c, Radius: r, Fill: fill})
	return &s.Items[len(s.Items)-1]
}

// Line appends a stroked segment.
func (s *Scene) Line(from, to orb.Point, stroke string, width float64) *Item {
	s.Items = append(s.Items, Item{Kind: KindLine, From: from, To: to, Stroke: stroke, StrokeWidth: width})
	return &s.Items[len(s.Items)-1]
}

// Rect appends an axis-aligned rectangle.
func (s *Scene) Rect(b orb.Bound, fill string) *Item {
	s.Items = append(s.Items, Item{Kind: KindRect, Bound: b, Fill: fill})
	return &s.Items[len(s.Items)-1]
}

// Text appends a label.
func (s *Scene) Text(at orb.Point, text string, anchor Anchor, size float64, fill string) *Item {
	s.Items = append(s.Items, Item{Kind: KindText, At: at, Text: text, Anchor: anchor, Size: size, Fill: fill})
	return &s.Items[len(s.Items)-1]
}

// Find returns the items carrying id, in paint order.
func (s *Scene) Find(id string) []Item {
	var out []Item
	for _, it := range s.Items {
		if it.ID == id {
			out = append(out, it)
		}
	}
	return out
}

// Hit returns the topmost identified item under p. slop widens circles so
// small marks stay reachable on coarse backends.
func (s *Scene) Hit(p orb.Point, slop float64) (Item, bool) {
	for i := len(s.Items) - 1; i >= 0; i-- {
		it := s.Items[i]
		if it.ID == "" {
			continue
		}
		if it.contains(p, slop) {
			return it, true
		}
	}
	return Item{}, false
}

func (it Item) contains(p orb.Point, slop float64) bool {
	switch it.Kind {
	case KindPolygon:
		return it.Shape.Bound().Contains(p) && planar.MultiPolygonContains(it.Shape, p)
	case KindCircle:
		return dist(p, it.Center) <= it.Radius+slop
	case KindRect:
		return it.Bound.Contains(p)
	}
	return false
}

// rectSize is the width and height of b. orb's Top is Max[1], so in canvas
// space it is the lower edge.
func rectSize(b orb.Bound) (w, h float64) {
	return b.Right() - b.Left(), b.Top() - b.Bottom()
}

func dist(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// segDist is the distance from p to segment ab.
func segDist(p, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return dist(p, orb.Point{a[0] + t*dx, a[1] + t*dy})
}

func painted(c string) bool {
	return c != "" && c != "none"
}
