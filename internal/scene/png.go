package scene

import (
	"io"
	"math"

	"github.com/fogleman/gg"
)

// WritePNG rasterizes s at the given pixel scale and encodes it as PNG.
func WritePNG(w io.Writer, s *Scene, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(s.Width*scale)), int(math.Ceil(s.Height*scale)))
	dc.Scale(scale, scale)
	if painted(s.Background) {
		dc.SetHexColor(s.Background)
		dc.Clear()
	}
	for _, it := range s.Items {
		drawItem(dc, it)
	}
	return dc.EncodePNG(w)
}

func drawItem(dc *gg.Context, it Item) {
	switch it.Kind {
	case KindPolygon:
		for _, poly := range it.Shape {
			for _, ring := range poly {
				for i, p := range ring {
					if i == 0 {
						dc.MoveTo(p[0], p[1])
					} else {
						dc.LineTo(p[0], p[1])
					}
				}
				dc.ClosePath()
			}
		}
		dc.SetFillRuleEvenOdd()
	case KindCircle:
		dc.DrawCircle(it.Center[0], it.Center[1], it.Radius)
	case KindRect:
		w, h := rectSize(it.Bound)
		dc.DrawRectangle(it.Bound.Min[0], it.Bound.Min[1], w, h)
	case KindLine:
		if !painted(it.Stroke) {
			return
		}
		dc.DrawLine(it.From[0], it.From[1], it.To[0], it.To[1])
		dc.SetHexColor(it.Stroke)
		dc.SetLineWidth(it.StrokeWidth)
		dc.Stroke()
		return
	case KindText:
		fill := it.Fill
		if !painted(fill) {
			fill = "#000000"
		}
		dc.SetHexColor(fill)
		ax := 0.0
		switch it.Anchor {
		case AnchorMiddle:
			ax = 0.5
		case AnchorEnd:
			ax = 1
		}
		dc.DrawStringAnchored(it.Text, it.At[0], it.At[1], ax, 0)
		return
	default:
		return
	}
	if painted(it.Fill) {
		dc.SetHexColor(it.Fill)
		if painted(it.Stroke) {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if painted(it.Stroke) {
		dc.SetHexColor(it.Stroke)
		dc.SetLineWidth(it.StrokeWidth)
		dc.Stroke()
	}
	dc.ClearPath()
}
