package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Equal Earth coefficients (Šavrič, Patterson & Jenny, 2018).
const (
	eeA1 = 1.340264
	eeA2 = -0.081106
	eeA3 = 0.000893
	eeA4 = 0.003796
)

var eeM = math.Sqrt(3) / 2

// EqualEarth projects longitude/latitude in degrees onto the unscaled
// Equal Earth plane, y pointing north.
func EqualEarth(lon, lat float64) (x, y float64) {
	lambda := lon * math.Pi / 180
	phi := lat * math.Pi / 180
	l := math.Asin(eeM * math.Sin(phi))
	l2 := l * l
	l6 := l2 * l2 * l2
	x = lambda * math.Cos(l) / (eeM * (eeA1 + 3*eeA2*l2 + l6*(7*eeA3+9*eeA4*l2)))
	y = l * (eeA1 + eeA2*l2 + l6*(eeA3+eeA4*l2))
	return x, y
}

// Projection maps lon/lat onto canvas pixels (y pointing down).
type Projection struct {
	Scale  float64
	TX, TY float64
}

// Fit returns the projection that centres g inside a width x height canvas
// at the largest scale that fits.
func Fit(g *Geography, width, height float64) Projection {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, f := range g.Features {
		for _, poly := range f.Polygons {
			for _, ring := range poly {
				for _, pt := range ring {
					x, y := EqualEarth(pt[0], pt[1])
					minX, maxX = math.Min(minX, x), math.Max(maxX, x)
					minY, maxY = math.Min(minY, y), math.Max(maxY, y)
				}
			}
		}
	}
	if math.IsInf(minX, 1) {
		return Projection{Scale: 1, TX: width / 2, TY: height / 2}
	}
	dx, dy := maxX-minX, maxY-minY
	k := math.Inf(1)
	if dx > 0 {
		k = width / dx
	}
	if dy > 0 {
		k = math.Min(k, height/dy)
	}
	if math.IsInf(k, 1) {
		k = 1
	}
	return Projection{
		Scale: k,
		TX:    (width - k*(maxX+minX)) / 2,
		TY:    (height + k*(maxY+minY)) / 2,
	}
}

// Point projects one lon/lat point.
func (p Projection) Point(pt orb.Point) orb.Point {
	x, y := EqualEarth(pt[0], pt[1])
	return orb.Point{p.TX + p.Scale*x, p.TY - p.Scale*y}
}

// MultiPolygon projects every ring of mp.
func (p Projection) MultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, len(mp))
	for i, poly := range mp {
		out[i] = make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, pt := range ring {
				r[k] = p.Point(pt)
			}
			out[i][j] = r
		}
	}
	return out
}
