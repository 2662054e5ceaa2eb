package chart

import (
	"strconv"

	"github.com/paulmach/orb"

	"happydash/internal/scale"
	"happydash/internal/scene"
)

// LegendTitle labels the happiness gradient.
const LegendTitle = "Life Ladder Score"

// legendTicks are the lifeLadder values labelled under the gradient.
var legendTicks = []float64{0, 5, 10}

// HappinessLegend draws the gradient bar for lifeLadder 0..10 using the
// same colour function as the map fills.
func HappinessLegend(width, height float64) *scene.Scene {
	s := scene.New(width, height)
	ramp := scale.HappinessRamp()
	const pad = 10.0
	barTop, barBottom := height*0.4, height*0.65
	x := scale.NewLinear(scale.Domain{Min: 0, Max: 10}, pad, width-pad)

	steps := int(width - 2*pad)
	if steps < 10 {
		steps = 10
	}
	step := (width - 2*pad) / float64(steps)
	for i := 0; i < steps; i++ {
		x0 := pad + float64(i)*step
		v := x.Invert(x0 + step/2)
		s.Rect(orb.Bound{Min: orb.Point{x0, barTop}, Max: orb.Point{x0 + step, barBottom}}, ramp.Color(v))
	}
	for _, t := range legendTicks {
		px := x.Map(t)
		s.Line(orb.Point{px, barBottom}, orb.Point{px, barBottom + 3}, scale.AxisColor, 1)
		s.Text(orb.Point{px, height - 2}, strconv.FormatFloat(t, 'f', -1, 64), scene.AnchorMiddle, 10, scale.AxisColor)
	}
	s.Text(orb.Point{width / 2, barTop - 4}, LegendTitle, scene.AnchorMiddle, 12, scale.AxisColor)
	return s
}

// SelectedLabel is the legend entry for the selection stroke.
const SelectedLabel = "Selected"

// ContinentLegend draws one swatch per continent, the hover colour and the
// selection stroke, laid out left to right and wrapping onto new rows.
func ContinentLegend(width, rowHeight float64, measure func(string) float64) *scene.Scene {
	if measure == nil {
		measure = func(s string) float64 { return float64(len(s)) * 6 }
	}
	labels := append(scale.LegendEntries(), SelectedLabel)
	type slot struct {
		label string
		x, y  float64
	}
	var slots []slot
	x, y := 0.0, rowHeight/2
	for _, l := range labels {
		w := rowHeight + measure(l) + rowHeight/2
		if x > 0 && x+w > width {
			x, y = 0, y+rowHeight
		}
		slots = append(slots, slot{l, x, y})
		x += w
	}
	s := scene.New(width, y+rowHeight/2)
	for _, sl := range slots {
		c := orb.Point{sl.x + rowHeight/2, sl.y}
		if sl.label == SelectedLabel {
			dot := s.Circle("", c, rowHeight/4, "#000000")
			dot.Stroke, dot.StrokeWidth = scale.SelectedStroke, 4
		} else {
			s.Circle("", c, rowHeight/4, scale.ContinentColor(sl.label))
		}
		s.Text(orb.Point{sl.x + rowHeight, sl.y + rowHeight/4}, sl.label, scene.AnchorStart, 10, scale.AxisColor)
	}
	return s
}
