package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ReadoutPlaceholder is shown under a key when its bar has no data.
const ReadoutPlaceholder = "--"

// Render draws the chart for one set of readings.
func Render(s Spec, readings []Reading) *Frame {
	bg := s.bg()
	f := newFrame(s.Width, s.Height, bg)
	l := ComputeLayout(s, len(readings))
	g := s.glyphs()
	axisFG := s.AxisColor.Or(ColorGreen)

	if s.Border {
		drawBorder(f, g, s.fg(), bg)
	}

	if s.Axes.Has(AxisX) {
		f.fill(g.Horizontal, l.InteriorWidth, l.OriginX, l.AxisRow, axisFG, bg)
	}
	if s.Axes.Has(AxisY) {
		for line := 0; line < l.InteriorHeight; line++ {
			f.set(l.OriginX-1, l.OriginY+line, g.Vertical, axisFG, bg)
		}
	}
	if s.Axes.Has(AxisBoth) {
		f.set(l.OriginX-1, l.AxisRow, g.Corner, axisFG, bg)
	}

	if s.Labels && l.InteriorWidth > 0 {
		f.write("0", l.OriginX, l.LabelRow, axisFG, bg)
		text := l.ScaleLabel()
		f.write(text, l.OriginX+l.InteriorWidth-displayWidth(text), l.LabelRow, axisFG, bg)
	}

	for _, gl := range l.Gridlines {
		for line := 0; line < l.InteriorHeight; line++ {
			f.set(gl.X, l.OriginY+line, g.Gridline, axisFG, bg)
		}
		if s.Axes.Has(AxisX) {
			f.set(gl.X, l.AxisRow, g.Tick, axisFG, bg)
		}
		if s.Labels {
			f.write(gl.Label, gl.X-displayWidth(gl.Label)/2, l.LabelRow, axisFG, bg)
		}
	}

	keyFG := s.KeyColor.Or(ColorYellow)
	readoutFG := s.ReadoutColor.Or(ColorCyan)
	for i, r := range readings {
		y := l.BarY[i]

		if len(s.Keys) > 0 && i < len(s.Keys) {
			key := runewidth.Truncate(s.Keys[i], s.keyWidth(), "")
			x := l.KeyX + l.KeyWidth - displayWidth(key)
			f.write(key, x, y, keyFG, bg)
			f.write(FormatReadout(r), x, y+2, readoutFG, bg)
		}

		barLen := 0
		if !r.Stale {
			barLen = l.BarLength(r.Value)
		}
		for _, seg := range Composite(barLen, l, s.Gradient, s.fg(), bg) {
			for line := 0; line < l.Thickness; line++ {
				f.fill(s.char(), seg.Len, l.OriginX+seg.Start, y+line, seg.FG, seg.BG)
			}
		}
	}

	return f
}

// FormatReadout formats a reading for the key column: whole numbers without
// a fraction, others with up to two decimals.
func FormatReadout(r Reading) string {
	if r.Stale || math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return ReadoutPlaceholder
	}
	if r.Value == math.Trunc(r.Value) && math.Abs(r.Value) < 1e15 {
		return strconv.FormatInt(int64(r.Value), 10)
	}
	s := strconv.FormatFloat(r.Value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func drawBorder(f *Frame, g Glyphs, fg, bg Color) {
	if f.Width < 2 || f.Height < 2 {
		return
	}
	right, bottom := f.Width-1, f.Height-1

	f.set(0, 0, g.TopLeft, fg, bg)
	f.fill(g.Horizontal, f.Width-2, 1, 0, fg, bg)
	f.set(right, 0, g.TopRight, fg, bg)
	for y := 1; y < bottom; y++ {
		f.set(0, y, g.Vertical, fg, bg)
		f.set(right, y, g.Vertical, fg, bg)
	}
	f.set(0, bottom, g.BottomLeft, fg, bg)
	f.fill(g.Horizontal, f.Width-2, 1, bottom, fg, bg)
	f.set(right, bottom, g.BottomRight, fg, bg)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
