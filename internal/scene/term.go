package scene

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/paulmach/orb"
)

// Canvas is a scene sampled onto a grid of terminal cells. Each cell holds
// two vertical samples drawn with half-block glyphs, and text items are
// overlaid as characters.
type Canvas struct {
	Cols, Rows   int
	cellW, cellH float64

	top, bottom []string
	glyph       []string
	glyphFG     []string
}

const wideTail = "\x00"

// Rasterize samples s onto cols x rows terminal cells.
func Rasterize(s *Scene, cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	n := cols * rows
	c := &Canvas{
		Cols: cols, Rows: rows,
		cellW: s.Width / float64(cols), cellH: s.Height / float64(rows),
		top: make([]string, n), bottom: make([]string, n),
		glyph: make([]string, n), glyphFG: make([]string, n),
	}
	tol := c.Slop()
	bounds := make([]orb.Bound, len(s.Items))
	for i, it := range s.Items {
		bounds[i] = it.bound().Pad(tol + it.StrokeWidth)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			mid := CellCenter(s.Width, s.Height, cols, rows, col, row)
			i := row*cols + col
			c.top[i] = sample(s, bounds, orb.Point{mid[0], mid[1] - c.cellH/4}, tol)
			c.bottom[i] = sample(s, bounds, orb.Point{mid[0], mid[1] + c.cellH/4}, tol)
		}
	}
	for _, it := range s.Items {
		if it.Kind == KindText {
			c.overlay(it)
		}
	}
	return c
}

// Slop is the sampling tolerance in scene units: half the sample spacing.
func (c *Canvas) Slop() float64 {
	return math.Max(c.cellW, c.cellH/2) / 2
}

// CellCenter returns the point at the centre of cell (col, row) when a
// width x height scene is divided into cols x rows cells.
func CellCenter(width, height float64, cols, rows, col, row int) orb.Point {
	return orb.Point{
		(float64(col) + 0.5) * width / float64(max(cols, 1)),
		(float64(row) + 0.5) * height / float64(max(rows, 1)),
	}
}

// Text returns only the overlaid characters, one string per row, with
// spaces elsewhere.
func (c *Canvas) Text() []string {
	out := make([]string, c.Rows)
	for row := 0; row < c.Rows; row++ {
		var b strings.Builder
		for col := 0; col < c.Cols; col++ {
			g := c.glyph[row*c.Cols+col]
			switch g {
			case "":
				b.WriteByte(' ')
			case wideTail:
			default:
				b.WriteString(g)
			}
		}
		out[row] = b.String()
	}
	return out
}

// String renders the canvas with ANSI colours, grouping runs of cells that
// share a style.
func (c *Canvas) String() string {
	lines := make([]string, c.Rows)
	for row := 0; row < c.Rows; row++ {
		var line, run strings.Builder
		var runFG, runBG string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if runFG != "" {
				st = st.Foreground(lipgloss.Color(runFG))
			}
			if runBG != "" {
				st = st.Background(lipgloss.Color(runBG))
			}
			line.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Cols; col++ {
			g, fg, bg := c.cell(row*c.Cols + col)
			if g == wideTail {
				continue
			}
			if fg != runFG || bg != runBG {
				flush()
				runFG, runBG = fg, bg
			}
			run.WriteString(g)
		}
		flush()
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

func (c *Canvas) cell(i int) (glyph, fg, bg string) {
	top, bottom := c.top[i], c.bottom[i]
	if g := c.glyph[i]; g != "" {
		bg = bottom
		if bg == "" {
			bg = top
		}
		return g, c.glyphFG[i], bg
	}
	switch {
	case top == "" && bottom == "":
		return " ", "", ""
	case top == "":
		return "▄", bottom, ""
	case bottom == "":
		return "▀", top, ""
	}
	return "▀", top, bottom
}

func (c *Canvas) overlay(it Item) {
	if it.Text == "" || c.cellH == 0 || c.cellW == 0 {
		return
	}
	row := int(math.Floor((it.At[1] - it.Size/3) / c.cellH))
	if row < 0 || row >= c.Rows {
		return
	}
	w := runewidth.StringWidth(it.Text)
	col := int(math.Floor(it.At[0] / c.cellW))
	switch it.Anchor {
	case AnchorMiddle:
		col -= w / 2
	case AnchorEnd:
		col -= w
	}
	fg := it.Fill
	if !painted(fg) {
		fg = ""
	}
	for _, r := range it.Text {
		rw := runewidth.RuneWidth(r)
		if col >= 0 && col+rw <= c.Cols {
			i := row*c.Cols + col
			c.glyph[i], c.glyphFG[i] = string(r), fg
			if rw == 2 {
				c.glyph[i+1] = wideTail
			}
		}
		col += rw
	}
}

func sample(s *Scene, bounds []orb.Bound, p orb.Point, tol float64) string {
	color := ""
	if painted(s.Background) {
		color = s.Background
	}
	for i, it := range s.Items {
		if it.Kind == KindText || !bounds[i].Contains(p) {
			continue
		}
		if c, ok := it.colorAt(p, tol); ok {
			color = c
		}
	}
	return color
}

func (it Item) colorAt(p orb.Point, tol float64) (string, bool) {
	stroked := painted(it.Stroke) && it.StrokeWidth > 0
	switch it.Kind {
	case KindPolygon:
		if stroked && it.StrokeWidth >= 2 && nearRings(it.Shape, p, tol) {
			return it.Stroke, true
		}
		if painted(it.Fill) && it.contains(p, 0) {
			return it.Fill, true
		}
	case KindCircle:
		d := dist(p, it.Center)
		if stroked && d > it.Radius-it.StrokeWidth/2 && d <= it.Radius+it.StrokeWidth/2+tol/2 {
			return it.Stroke, true
		}
		if painted(it.Fill) && d <= math.Max(it.Radius, tol) {
			return it.Fill, true
		}
	case KindLine:
		if stroked && segDist(p, it.From, it.To) <= math.Max(it.StrokeWidth/2, tol) {
			return it.Stroke, true
		}
	case KindRect:
		if painted(it.Fill) && it.Bound.Contains(p) {
			return it.Fill, true
		}
	}
	return "", false
}

func nearRings(mp orb.MultiPolygon, p orb.Point, tol float64) bool {
	for _, poly := range mp {
		for _, ring := range poly {
			for i := 1; i < len(ring); i++ {
				if segDist(p, ring[i-1], ring[i]) <= tol {
					return true
				}
			}
		}
	}
	return false
}

func (it Item) bound() orb.Bound {
	switch it.Kind {
	case KindPolygon:
		return it.Shape.Bound()
	case KindCircle:
		r := it.Radius
		return orb.Bound{Min: orb.Point{it.Center[0] - r, it.Center[1] - r}, Max: orb.Point{it.Center[0] + r, it.Center[1] + r}}
	case KindLine:
		return orb.MultiPoint{it.From, it.To}.Bound()
	case KindRect:
		return it.Bound
	}
	return orb.Bound{Min: it.At, Max: it.At}
}
