package scale

import "math"

// Domain is a closed numeric interval for one axis.
type Domain struct {
	Min, Max float64
}

// PCADomain is the fixed domain used for both axes when plotting the
// default PCA pair, so the axes do not jitter between years.
var PCADomain = Domain{Min: -5, Max: 5}

// Contains reports whether v lies inside d.
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// PaddedDomain computes a dynamic axis domain from values: the extent is
// padded by 10% of the range on both sides and the lower bound is clamped
// to at most zero, i.e. [min(0, lo-0.1r), hi+0.1r]. An empty input yields
// [0, 1]; a zero range is widened by one unit so the scale stays invertible.
func PaddedDomain(values []float64) Domain {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return Domain{Min: 0, Max: 1}
	}
	pad := 0.1 * (hi - lo)
	d := Domain{Min: math.Min(0, lo-pad), Max: hi + pad}
	if d.Max <= d.Min {
		d.Max = d.Min + 1
	}
	return d
}

// AxisDomains returns the x and y domains for a plot: the fixed PCA domain
// when fixed is true, otherwise padded domains computed from the data.
func AxisDomains(fixed bool, xs, ys []float64) (Domain, Domain) {
	if fixed {
		return PCADomain, PCADomain
	}
	return PaddedDomain(xs), PaddedDomain(ys)
}
