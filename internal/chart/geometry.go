package chart

import (
	"math"
	"strconv"
)

// maxBarCells bounds bar lengths computed from huge readings.
const maxBarCells = 1 << 30

// maxGridlines bounds the gridline loop for tiny intervals.
const maxGridlines = 1024

// Layout is the geometry of one chart for one render pass.
type Layout struct {
	InteriorWidth  int
	InteriorHeight int
	OriginX        int // first interior column
	OriginY        int // first interior row
	KeyX           int // first column of the key area, 0 without keys
	KeyWidth       int // widest key, capped at the key column width

	Scale     float64 // effective scale
	Thickness int     // rows per bar
	Gap       float64 // rows between bars, may be fractional
	BarY      []int   // top row of each bar

	AxisRow  int // row of the X axis
	LabelRow int // row of the numeric labels

	Gridlines []Gridline
}

// Gridline is one interval marker.
type Gridline struct {
	X     int
	Value float64
	Label string
}

// ComputeLayout derives the chart geometry for the given number of bars.
func ComputeLayout(s Spec, bars int) Layout {
	if bars < 0 {
		bars = 0
	}

	intW, intH := s.Width, s.Height
	startX, startY := 0, 0

	if s.Border {
		intH -= 4
		intW -= 6
		startY += 2
		startX += 3
	}

	keyX, keyWidth := 0, 0
	if len(s.Keys) > 0 {
		keyX = startX
		intW -= s.keyWidth()
		startX += s.keyWidth()
		keyWidth = widestKey(s.Keys, s.keyWidth())
	}

	if s.Axes.Has(AxisX) {
		intH--
	}
	if s.Axes.Has(AxisY) {
		intW--
		startX++
	}
	if s.Labels {
		intH--
	}

	if intW < 0 {
		intW = 0
	}
	if intH < 0 {
		intH = 0
	}

	scale := s.Scale
	if s.AutoScale {
		scale = float64(intW)
	}

	thickness := 1
	if intH >= 3*bars-1 {
		thickness = 2
	}

	var gap float64
	switch {
	case s.Gap != nil:
		gap = *s.Gap
	case bars <= 1:
		gap = 0
	default:
		gap = float64(intH-thickness*bars) / float64(bars-1)
	}

	barY := make([]int, bars)
	for i := range barY {
		barY[i] = startY + i*thickness + int(math.Floor(float64(i)*gap))
	}

	labelRow := startY + intH
	if s.Axes.Has(AxisX) {
		labelRow++
	}

	l := Layout{
		InteriorWidth:  intW,
		InteriorHeight: intH,
		OriginX:        startX,
		OriginY:        startY,
		KeyX:           keyX,
		KeyWidth:       keyWidth,
		Scale:          scale,
		Thickness:      thickness,
		Gap:            gap,
		BarY:           barY,
		AxisRow:        startY + intH,
		LabelRow:       labelRow,
	}
	l.Gridlines = l.gridlines(s.Interval)
	return l
}

// Valid reports whether bars can be drawn at all.
func (l Layout) Valid() bool {
	return l.Scale > 0 && l.InteriorWidth > 0
}

// BarLength converts a reading to a bar length in cells, truncating toward
// zero. The result is never negative but may exceed the interior width.
func (l Layout) BarLength(v float64) int {
	if !l.Valid() || math.IsNaN(v) {
		return 0
	}
	n := v * float64(l.InteriorWidth) / l.Scale
	if n <= 0 {
		return 0
	}
	if n >= maxBarCells {
		return maxBarCells
	}
	return int(n)
}

// Cells converts a chart value to a cell offset, rounding down.
func (l Layout) Cells(v float64) int {
	if !l.Valid() {
		return 0
	}
	n := math.Floor(v * float64(l.InteriorWidth) / l.Scale)
	if n <= 0 {
		return 0
	}
	if n >= maxBarCells {
		return maxBarCells
	}
	return int(n)
}

// ScaleLabel is the text printed at the right end of the label row.
func (l Layout) ScaleLabel() string {
	return strconv.FormatFloat(l.Scale, 'f', -1, 64)
}

func (l Layout) gridlines(interval float64) []Gridline {
	if interval <= 0 || !l.Valid() || math.IsNaN(interval) {
		return nil
	}
	var out []Gridline
	for k := 1; k <= maxGridlines; k++ {
		v := interval * float64(k)
		if v >= l.Scale {
			break
		}
		out = append(out, Gridline{
			X:     l.OriginX + l.Cells(v),
			Value: v,
			Label: GridLabel(v),
		})
	}
	return out
}

// GridLabel formats a gridline value: one decimal below 1, whole numbers
// from 1 up, both truncated.
func GridLabel(v float64) string {
	v = math.Trunc(v*10) / 10
	if v >= 1 {
		v = math.Floor(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func widestKey(keys []string, limit int) int {
	w := 0
	for _, k := range keys {
		if kw := displayWidth(k); kw > w {
			w = kw
		}
	}
	if w > limit {
		w = limit
	}
	return w
}
