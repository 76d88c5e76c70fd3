package chart

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position of a frame.
type Cell struct {
	Ch rune // 0 marks the right half of a double-width rune
	FG Color
	BG Color
}

// Frame is the output of one render pass: a styled grid plus the same
// characters without styling, row-major.
type Frame struct {
	Width  int
	Height int
	Cells  [][]Cell
	Plain  [][]rune
}

func newFrame(width, height int, bg Color) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{
		Width:  width,
		Height: height,
		Cells:  make([][]Cell, height),
		Plain:  make([][]rune, height),
	}
	for y := 0; y < height; y++ {
		f.Cells[y] = make([]Cell, width)
		f.Plain[y] = make([]rune, width)
		for x := 0; x < width; x++ {
			f.Cells[y][x] = Cell{Ch: ' ', FG: ColorWhite, BG: bg}
			f.Plain[y][x] = ' '
		}
	}
	return f
}

// At returns the cell at (x, y). Out-of-range positions return a zero Cell.
func (f *Frame) At(x, y int) Cell {
	if !f.inside(x, y) {
		return Cell{}
	}
	return f.Cells[y][x]
}

// Row returns the plain text of row y.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.Height {
		return ""
	}
	var b strings.Builder
	for _, r := range f.Plain[y] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String returns the plain text of the whole frame, one line per row.
func (f *Frame) String() string {
	rows := make([]string, f.Height)
	for y := range rows {
		rows[y] = f.Row(y)
	}
	return strings.Join(rows, "\n")
}

func (f *Frame) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// set writes one cell; writes outside the frame are clipped.
func (f *Frame) set(x, y int, ch rune, fg, bg Color) {
	if !f.inside(x, y) {
		return
	}
	f.Cells[y][x] = Cell{Ch: ch, FG: fg, BG: bg}
	f.Plain[y][x] = ch
}

// write places text starting at (x, y). Double-width runes take two cells.
func (f *Frame) write(text string, x, y int, fg, bg Color) {
	for _, r := range text {
		f.set(x, y, r, fg, bg)
		if runewidth.RuneWidth(r) == 2 {
			x++
			f.set(x, y, 0, fg, bg)
		}
		x++
	}
}

// fill repeats ch n times starting at (x, y).
func (f *Frame) fill(ch rune, n, x, y int, fg, bg Color) {
	for i := 0; i < n; i++ {
		f.set(x+i, y, ch, fg, bg)
	}
}
