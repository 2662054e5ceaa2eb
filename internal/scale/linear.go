package scale

import "math"

// Linear maps a numeric domain onto a pixel range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear builds a linear scale from domain d to range r.
func NewLinear(d Domain, r0, r1 float64) Linear {
	return Linear{D0: d.Min, D1: d.Max, R0: r0, R1: r1}
}

// Map converts a domain value into the range.
func (l Linear) Map(v float64) float64 {
	if l.D1 == l.D0 {
		return (l.R0 + l.R1) / 2
	}
	return l.R0 + (v-l.D0)/(l.D1-l.D0)*(l.R1-l.R0)
}

// Invert converts a range value back into the domain.
func (l Linear) Invert(px float64) float64 {
	if l.R1 == l.R0 {
		return l.D0
	}
	return l.D0 + (px-l.R0)/(l.R1-l.R0)*(l.D1-l.D0)
}

// Ticks returns roughly count evenly spaced round values inside the domain.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := math.Min(l.D0, l.D1), math.Max(l.D0, l.D1)
	if count <= 0 || lo == hi {
		return []float64{lo}
	}
	step := tickStep(lo, hi, count)
	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	out := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		// +0 turns -0 into 0 so labels never read "-0".
		out = append(out, i*step+0)
	}
	return out
}

func tickStep(lo, hi float64, count int) float64 {
	step0 := (hi - lo) / float64(count)
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	switch e := step0 / step1; {
	case e >= math.Sqrt(50):
		step1 *= 10
	case e >= math.Sqrt(10):
		step1 *= 5
	case e >= math.Sqrt(2):
		step1 *= 2
	}
	return step1
}
