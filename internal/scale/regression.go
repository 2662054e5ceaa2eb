package scale

import "math"

// Fit is an ordinary least-squares line y = Slope*x + Intercept.
type Fit struct {
	Slope     float64
	Intercept float64
	N         int
}

// At evaluates the line at x.
func (f Fit) At(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// OLS fits a line through the paired samples. ok is false when there are
// fewer than two points or every x is identical.
func OLS(xs, ys []float64) (Fit, bool) {
	n := min(len(xs), len(ys))
	if n < 2 {
		return Fit{}, false
	}
	var sx, sy float64
	for i := range n {
		sx += xs[i]
		sy += ys[i]
	}
	mx, my := sx/float64(n), sy/float64(n)
	var sxy, sxx float64
	for i := range n {
		dx := xs[i] - mx
		sxy += dx * (ys[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return Fit{}, false
	}
	slope := sxy / sxx
	return Fit{Slope: slope, Intercept: my - slope*mx, N: n}, true
}

// Segment is a line segment in data coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Clip returns the part of the fitted line inside the x/y domain
// rectangle. ok is false when the line misses the rectangle.
func (f Fit) Clip(xd, yd Domain) (Segment, bool) {
	x1, x2 := xd.Min, xd.Max
	if f.Slope == 0 {
		if !yd.Contains(f.Intercept) {
			return Segment{}, false
		}
		return Segment{X1: x1, Y1: f.Intercept, X2: x2, Y2: f.Intercept}, true
	}
	// x interval on which y stays inside yd.
	xa := (yd.Min - f.Intercept) / f.Slope
	xb := (yd.Max - f.Intercept) / f.Slope
	x1 = math.Max(x1, math.Min(xa, xb))
	x2 = math.Min(x2, math.Max(xa, xb))
	if x1 > x2 {
		return Segment{}, false
	}
	return Segment{X1: x1, Y1: f.At(x1), X2: x2, Y2: f.At(x2)}, true
}
