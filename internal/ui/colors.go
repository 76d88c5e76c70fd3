package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors, from the 8-color ANSI palette so they match the charts.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// spinnerColors are cycled while a spinner runs.
var spinnerColors = []lipgloss.Color{ColorInfo, ColorSuccess, ColorWarning}
