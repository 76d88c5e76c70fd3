// Package chart renders horizontal bar charts into grids of colored cells.
//
// Rendering is a pure function of a Spec and one Reading per bar: the same
// inputs always produce an identical Frame. Nothing is cached between calls,
// so callers re-render on every refresh tick.
//
// A chart is laid out left to right as
//
//	[border][key column][Y axis][interior ...............][border]
//
// and top to bottom as
//
//	[border][bars in the interior][X axis][label row][border]
//
// with each reservation optional.
package chart

import (
	"fmt"
	"strings"
)

// DefaultKeyWidth is the number of leading columns reserved for bar keys.
// It does not depend on the key text.
const DefaultKeyWidth = 7

// DefaultChar is the glyph bars are drawn with when Spec.Char is unset.
const DefaultChar = '#'

// Axes selects which axis lines are drawn.
type Axes uint8

const (
	AxisNone Axes = 0
	AxisX    Axes = 1 // horizontal line under the bars
	AxisY    Axes = 2 // vertical line left of the bars
	AxisBoth      = AxisX | AxisY
)

// Has reports whether all axes in other are set.
func (a Axes) Has(other Axes) bool {
	return a&other == other
}

// String returns the config spelling of the axes.
func (a Axes) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseAxes parses "none", "x", "y" or "both".
func ParseAxes(s string) (Axes, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AxisNone, nil
	case "x", "horizontal":
		return AxisX, nil
	case "y", "vertical":
		return AxisY, nil
	case "both", "xy":
		return AxisBoth, nil
	default:
		return AxisNone, fmt.Errorf("unknown axes %q (want none, x, y or both)", s)
	}
}

// Breakpoint is one band of a color gradient. Cells of a bar below
// Threshold (in chart units) that are not claimed by a lower band take
// these colors.
type Breakpoint struct {
	Threshold float64
	FG        Color
	BG        Color
}

// Glyphs are the characters used for chart furniture.
type Glyphs struct {
	Horizontal  rune
	Vertical    rune
	Corner      rune // where the X and Y axes meet
	Tick        rune // gridline crossing the X axis
	Gridline    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// UnicodeGlyphs draws with box-drawing characters.
var UnicodeGlyphs = Glyphs{
	Horizontal:  '─',
	Vertical:    '│',
	Corner:      '└',
	Tick:        '┴',
	Gridline:    '┊',
	TopLeft:     '┌',
	TopRight:    '┐',
	BottomLeft:  '└',
	BottomRight: '┘',
}

// ASCIIGlyphs is for terminals without box-drawing support.
var ASCIIGlyphs = Glyphs{
	Horizontal:  '-',
	Vertical:    '|',
	Corner:      '+',
	Tick:        '+',
	Gridline:    ':',
	TopLeft:     '+',
	TopRight:    '+',
	BottomLeft:  '+',
	BottomRight: '+',
}

// Spec is the immutable configuration of one chart.
type Spec struct {
	Height int
	Width  int

	Char rune  // bar glyph, DefaultChar if unset
	FG   Color // bar color without a gradient, green if unset
	BG   Color // chart background, black if unset

	// Gradient bands in ascending threshold order. Empty means solid FG.
	Gradient []Breakpoint

	// Scale is the value a full-width bar represents. Zero or negative
	// scales draw zero-length bars and no gridlines.
	Scale float64
	// AutoScale ignores Scale and uses the interior width, so one unit is
	// one cell.
	AutoScale bool

	Axes     Axes
	Interval float64 // gridline spacing in chart units, 0 for none
	Labels   bool
	Border   bool

	// Keys label each bar in a fixed-width leading column.
	Keys     []string
	KeyWidth int // DefaultKeyWidth if zero

	// Gap between bars in rows. Nil spreads the bars over the interior.
	Gap *float64

	Glyphs       Glyphs // UnicodeGlyphs if zero
	AxisColor    Color  // green if unset
	KeyColor     Color  // yellow if unset
	ReadoutColor Color  // cyan if unset
}

// Reading is one bar's value for a render pass.
type Reading struct {
	Value float64
	Stale bool // no data: drawn as an empty bar with a placeholder readout
}

// Value is a fresh reading.
func Value(v float64) Reading {
	return Reading{Value: v}
}

// StaleReading is the placeholder for a bar without data.
func StaleReading() Reading {
	return Reading{Stale: true}
}

func (s Spec) char() rune {
	if s.Char == 0 {
		return DefaultChar
	}
	return s.Char
}

func (s Spec) fg() Color { return s.FG.Or(ColorGreen) }
func (s Spec) bg() Color { return s.BG.Or(ColorBlack) }

func (s Spec) keyWidth() int {
	if s.KeyWidth <= 0 {
		return DefaultKeyWidth
	}
	return s.KeyWidth
}

func (s Spec) glyphs() Glyphs {
	if s.Glyphs == (Glyphs{}) {
		return UnicodeGlyphs
	}
	return s.Glyphs
}
