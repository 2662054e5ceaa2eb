package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// rdBu is the 11-class red-to-blue diverging scheme.
var rdBu = []string{
	"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7",
	"#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
}

// Ramp is a continuous colour scale: values in [Lo, Hi] map linearly onto
// the colour stops; values outside are clamped.
type Ramp struct {
	Lo, Hi float64
	stops  []colorful.Color
}

// NewRamp builds a ramp over [lo, hi] from hex colour stops.
func NewRamp(lo, hi float64, hexStops []string) Ramp {
	stops := make([]colorful.Color, 0, len(hexStops))
	for _, h := range hexStops {
		c, err := colorful.Hex(h)
		if err != nil {
			continue
		}
		stops = append(stops, c)
	}
	return Ramp{Lo: lo, Hi: hi, stops: stops}
}

// HappinessRamp colours a life-ladder score: 1 is deep red, 8 deep blue.
func HappinessRamp() Ramp {
	return NewRamp(1, 8, rdBu)
}

// Color returns the hex colour for v.
func (r Ramp) Color(v float64) string {
	if len(r.stops) == 0 {
		return NoDataColor
	}
	if len(r.stops) == 1 || r.Hi == r.Lo || math.IsNaN(v) {
		return r.stops[0].Hex()
	}
	t := (v - r.Lo) / (r.Hi - r.Lo)
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(r.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(r.stops)-1 {
		return r.stops[len(r.stops)-1].Hex()
	}
	frac := pos - float64(i)
	if frac == 0 {
		return r.stops[i].Hex()
	}
	return r.stops[i].BlendLab(r.stops[i+1], frac).Clamped().Hex()
}
