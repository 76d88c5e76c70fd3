package ui

// Status symbols printed when a spinner finishes.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "!"
)
