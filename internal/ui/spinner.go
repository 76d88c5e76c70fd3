package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
	SpinnerWarned
)

// Spinner animation frames
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// frameInterval is the animation speed.
const frameInterval = 80 * time.Millisecond

// Spinner shows a one-line animated status while a command waits on
// something, then replaces it with a final status line.
type Spinner struct {
	mu        sync.Mutex
	label     string
	state     SpinnerState
	frame     int
	startTime time.Time
	stopChan  chan struct{}
	doneChan  chan struct{}
	out       io.Writer
	running   bool
	lastWidth int
}

// NewSpinner creates a spinner writing to out.
func NewSpinner(label string, out io.Writer) *Spinner {
	return &Spinner{label: label, state: SpinnerPending, out: out}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.renderLocked()
	s.mu.Unlock()

	go s.animate()
}

// Success finishes with a check mark and an optional detail.
func (s *Spinner) Success(detail string) {
	s.finish(SpinnerSuccess, detail)
}

// Fail finishes with a cross and an optional detail.
func (s *Spinner) Fail(detail string) {
	s.finish(SpinnerFailed, detail)
}

// Warn finishes with a warning mark and an optional detail.
func (s *Spinner) Warn(detail string) {
	s.finish(SpinnerWarned, detail)
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Spinner) stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.renderLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) renderLocked() {
	style := lipgloss.NewStyle().Foreground(spinnerColors[(s.frame/2)%len(spinnerColors)])
	line := fmt.Sprintf("%s %s...", style.Render(spinnerFrames[s.frame]), s.label)
	s.clearLocked()
	fmt.Fprint(s.out, line)
	s.lastWidth = runewidth.StringWidth(s.label) + 5
}

func (s *Spinner) clearLocked() {
	if s.lastWidth > 0 {
		fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.lastWidth)+"\r")
	}
}

func (s *Spinner) finish(state SpinnerState, detail string) {
	s.stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state

	var symbol string
	var color lipgloss.Color
	switch state {
	case SpinnerSuccess:
		symbol, color = SymbolSuccess, ColorSuccess
	case SpinnerFailed:
		symbol, color = SymbolFail, ColorError
	default:
		symbol, color = SymbolWarning, ColorWarning
	}

	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	line := lipgloss.NewStyle().Foreground(color).Render(symbol) + " " + s.label
	if detail != "" {
		line += ": " + detail
	}
	if !s.startTime.IsZero() {
		line += " " + muted.Render(formatDuration(time.Since(s.startTime)))
	}

	s.clearLocked()
	fmt.Fprintln(s.out, line)
	s.lastWidth = 0
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
