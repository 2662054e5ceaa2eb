package scene

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/paulmach/orb"
)

// WriteSVG writes s as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if painted(s.Background) {
		fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background)
	}
	for _, it := range s.Items {
		writeItem(bw, it)
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writeItem(w *bufio.Writer, it Item) {
	var open string
	switch it.Kind {
	case KindPolygon:
		open = fmt.Sprintf(`<path d="%s" fill-rule="evenodd"`, pathData(it.Shape))
	case KindCircle:
		open = fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s"`, num(it.Center[0]), num(it.Center[1]), num(it.Radius))
	case KindLine:
		open = fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(it.From[0]), num(it.From[1]), num(it.To[0]), num(it.To[1]))
	case KindRect:
		w, h := rectSize(it.Bound)
		open = fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"`,
			num(it.Bound.Min[0]), num(it.Bound.Min[1]), num(w), num(h))
	case KindText:
		fmt.Fprintf(w, `<text x="%s" y="%s" font-size="%s" text-anchor="%s" fill="%s">%s</text>`+"\n",
			num(it.At[0]), num(it.At[1]), num(it.Size), anchorName(it.Anchor), paint(it.Fill), html.EscapeString(it.Text))
		return
	default:
		return
	}
	w.WriteString(open)
	if it.ID != "" {
		fmt.Fprintf(w, ` data-id="%s"`, html.EscapeString(it.ID))
	}
	if it.Kind != KindLine {
		fmt.Fprintf(w, ` fill="%s"`, paint(it.Fill))
	}
	if painted(it.Stroke) {
		fmt.Fprintf(w, ` stroke="%s" stroke-width="%s"`, it.Stroke, num(it.StrokeWidth))
	}
	if it.Title == "" {
		w.WriteString("/>\n")
		return
	}
	fmt.Fprintf(w, "><title>%s</title></%s>\n", html.EscapeString(it.Title), tagName(it.Kind))
}

func pathData(mp orb.MultiPolygon) string {
	var b strings.Builder
	for _, poly := range mp {
		for _, ring := range poly {
			for i, p := range ring {
				if i == 0 {
					b.WriteString("M")
				} else {
					b.WriteString("L")
				}
				b.WriteString(num(p[0]))
				b.WriteString(",")
				b.WriteString(num(p[1]))
			}
			b.WriteString("Z")
		}
	}
	return b.String()
}

func tagName(k Kind) string {
	switch k {
	case KindPolygon:
		return "path"
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	}
	return "text"
}

func anchorName(a Anchor) string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	}
	return "start"
}

func paint(c string) string {
	if c == "" {
		return "none"
	}
	return c
}

// num formats with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
