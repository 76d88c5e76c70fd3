package chart

import (
	"fmt"
	"strings"
)

// Color is one of the eight conventional terminal colors. The zero value
// means "not set" and resolves to a context-specific default.
type Color int

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = []string{"default", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// String returns the lowercase color name.
func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "unknown"
	}
	return colorNames[c]
}

// ANSI returns the 0-7 palette index, or -1 for ColorDefault.
func (c Color) ANSI() int {
	if c <= ColorDefault || c > ColorWhite {
		return -1
	}
	return int(c) - 1
}

// Or returns c, or fallback when c is unset.
func (c Color) Or(fallback Color) Color {
	if c == ColorDefault {
		return fallback
	}
	return c
}

// ParseColor converts a color name to a Color. An empty string is ColorDefault.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q (want one of %s)", s, strings.Join(colorNames[1:], ", "))
}
