// Package display is the drawing surface charts are painted onto.
//
// A Canvas is a fixed-size grid of chart cells. The dashboard paints every
// chart frame and status text onto it once per tick and turns it into styled
// lines for bubbletea's View.
package display

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/plcdash/internal/chart"
)

// Canvas is a width x height grid of styled cells. It is not safe for
// concurrent use; the bubbletea event loop is its only writer.
type Canvas struct {
	width    int
	height   int
	cells    [][]chart.Cell
	renderer *lipgloss.Renderer
	styles   map[style]lipgloss.Style
}

type style struct {
	fg chart.Color
	bg chart.Color
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithProfile renders with a fixed color profile. termenv.Ascii strips all
// color, which is what --no-color and the tests use.
func WithProfile(p termenv.Profile) Option {
	return func(c *Canvas) {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(p)
		c.renderer = r
	}
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{
		renderer: lipgloss.DefaultRenderer(),
		styles:   make(map[style]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Resize(width, height)
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Resize reallocates the canvas and clears it.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	c.cells = make([][]chart.Cell, height)
	for y := range c.cells {
		c.cells[y] = make([]chart.Cell, width)
	}
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = blank
		}
	}
}

var blank = chart.Cell{Ch: ' '}

// At returns the cell at (x, y), or a zero Cell outside the canvas.
func (c *Canvas) At(x, y int) chart.Cell {
	if !c.inside(x, y) {
		return chart.Cell{}
	}
	return c.cells[y][x]
}

// Put writes text at (x, y). Anything past the canvas edge is clipped.
func (c *Canvas) Put(text string, x, y int, fg, bg chart.Color) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 2 && x+1 >= c.width {
			// half a wide rune would misalign the row
			return
		}
		c.set(x, y, chart.Cell{Ch: r, FG: fg, BG: bg})
		if w == 2 {
			x++
			c.set(x, y, chart.Cell{FG: fg, BG: bg})
		}
		x++
	}
}

// Fill writes n copies of ch starting at (x, y).
func (c *Canvas) Fill(ch rune, n, x, y int, fg, bg chart.Color) {
	for i := 0; i < n; i++ {
		c.set(x+i, y, chart.Cell{Ch: ch, FG: fg, BG: bg})
	}
}

// Paint copies a rendered frame onto the canvas with its top-left corner
// at (x, y).
func (c *Canvas) Paint(f *chart.Frame, x, y int) {
	if f == nil {
		return
	}
	for row := 0; row < f.Height; row++ {
		for col := 0; col < f.Width; col++ {
			c.set(x+col, y+row, f.Cells[row][col])
		}
	}
}

// Lines returns every row styled for the terminal. Runs of cells with the
// same colors share one style so the escape overhead stays per run.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = c.line(row)
	}
	return lines
}

// String returns the styled canvas, one line per row.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Plain returns the canvas text without styling.
func (c *Canvas) Plain() string {
	rows := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cell := range row {
			if cell.Ch != 0 {
				b.WriteRune(cell.Ch)
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (c *Canvas) line(row []chart.Cell) string {
	var out strings.Builder
	var run strings.Builder
	cur := style{}
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(c.style(cur).Render(run.String()))
		run.Reset()
	}

	for i, cell := range row {
		if cell.Ch == 0 {
			continue
		}
		s := style{fg: cell.FG, bg: cell.BG}
		if i == 0 || s != cur {
			flush()
			cur = s
		}
		run.WriteRune(cell.Ch)
	}
	flush()
	return out.String()
}

func (c *Canvas) style(s style) lipgloss.Style {
	if st, ok := c.styles[s]; ok {
		return st
	}
	st := c.renderer.NewStyle()
	if n := s.fg.ANSI(); n >= 0 {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(n)))
	}
	if n := s.bg.ANSI(); n >= 0 {
		st = st.Background(lipgloss.Color(strconv.Itoa(n)))
	}
	c.styles[s] = st
	return st
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) set(x, y int, cell chart.Cell) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y][x] = cell
}
