package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/plcdash/internal/chart"
	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/display"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/sample"
)

// Phase is the render loop state.
type Phase int

const (
	PhaseIdle    Phase = iota // waiting for the first surface size
	PhaseRunning              // redrawing on every tick
	PhaseResized              // layouts are stale, ticks are skipped
	PhaseStopped              // terminal
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseResized:
		return "resized"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LinkState is the transport connection state shown in the status line.
type LinkState int

const (
	LinkConnecting LinkState = iota
	LinkConnected
	LinkDown
)

// String returns a human-readable link state.
func (s LinkState) String() string {
	switch s {
	case LinkConnecting:
		return "connecting"
	case LinkConnected:
		return "connected"
	case LinkDown:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// Defaults for Options left zero.
const (
	DefaultRefresh    = 250 * time.Millisecond
	DefaultStaleAfter = 2 * time.Second
)

// statusHeight is the number of rows below the canvas.
const statusHeight = 1

// LinkMsg reports a transport link change.
type LinkMsg struct {
	State    LinkState
	Endpoint string
	Err      error
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// rebuildMsg asks for layouts to be rebuilt for a surface size.
type rebuildMsg struct {
	width  int
	height int
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Buffer *sample.Buffer

	// Endpoint is shown in the status line.
	Endpoint string

	// Scene is the name of the scene shown first. Empty picks the first.
	Scene string

	// Cancel is called once when the dashboard stops, to shut the
	// transport down.
	Cancel context.CancelFunc

	CanvasOptions []display.Option
	Now           func() time.Time
}

// Model is the Bubble Tea model driving the dashboard.
type Model struct {
	cfg      *config.Config
	buf      *sample.Buffer
	canvas   *display.Canvas
	glyphs   chart.Glyphs
	scenes   []Scene
	active   int
	phase    Phase
	width    int
	height   int
	refresh  time.Duration
	stale    time.Duration
	endpoint string
	cancel   context.CancelFunc
	now      func() time.Time
	err      error

	link    LinkState
	linkErr string

	// State of the last render pass
	lastSnap *sample.Snapshot
	age      time.Duration
	frames   uint64

	showHelp bool
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
}

// NewModel creates a dashboard model. Nothing is laid out until the first
// window size arrives.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	buf := opts.Buffer
	if buf == nil {
		buf = sample.NewBuffer()
	}

	active := 0
	if opts.Scene != "" {
		active = cfg.SceneIndex(opts.Scene)
		if active < 0 {
			return Model{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("No scene named '%s'", opts.Scene),
				"Pick one of the scene names in your .plcdash.yaml, or leave --scene out.")
		}
	}

	refresh := cfg.Display.Refresh
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	stale := DefaultStaleAfter
	if s := 4 * cfg.Source.Interval; s > stale {
		stale = s
	}

	glyphs := chart.UnicodeGlyphs
	if cfg.Display.ASCII {
		glyphs = chart.ASCIIGlyphs
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(spinnerStyle))

	return Model{
		cfg:      cfg,
		buf:      buf,
		canvas:   display.NewCanvas(0, 0, opts.CanvasOptions...),
		glyphs:   glyphs,
		active:   active,
		phase:    PhaseIdle,
		refresh:  refresh,
		stale:    stale,
		endpoint: opts.Endpoint,
		cancel:   opts.Cancel,
		now:      now,
		link:     LinkConnecting,
		keys:     defaultKeys,
		help:     help.New(),
		spinner:  sp,
	}, nil
}

// Init starts the tick timer and the waiting spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase == PhaseStopped {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.phase = PhaseResized
		return m, rebuildCmd(msg.Width, msg.Height)

	case rebuildMsg:
		// A newer resize is already queued behind this one
		if msg.width != m.width || msg.height != m.height {
			return m, nil
		}
		if err := m.rebuild(); err != nil {
			m.err = err
			m.stop()
			return m, tea.Quit
		}
		m.phase = PhaseRunning
		m.renderPass()

	case tickMsg:
		if m.phase == PhaseRunning {
			m.renderPass()
		}
		return m, m.tickCmd()

	case LinkMsg:
		m.link = msg.State
		m.linkErr = ""
		if msg.Err != nil {
			m.linkErr = msg.Err.Error()
		}
		if msg.Endpoint != "" {
			m.endpoint = msg.Endpoint
		}

	case spinner.TickMsg:
		if m.waiting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// Phase returns the current render loop state.
func (m Model) Phase() Phase {
	return m.phase
}

// Err returns the error that stopped the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

// ActiveScene returns the name of the scene on screen.
func (m Model) ActiveScene() string {
	if m.active < len(m.scenes) {
		return m.scenes[m.active].Name
	}
	if m.active < len(m.cfg.Scenes) {
		return m.cfg.Scenes[m.active].Name
	}
	return ""
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func rebuildCmd(width, height int) tea.Cmd {
	return func() tea.Msg {
		return rebuildMsg{width: width, height: height}
	}
}

// rebuild lays every scene out for the current surface. The active scene
// index carries over.
func (m *Model) rebuild() error {
	surfaceH := max(m.height-statusHeight, 0)
	scenes, err := BuildScenes(m.cfg, m.width, surfaceH, m.glyphs)
	if err != nil {
		return err
	}
	m.scenes = scenes
	if m.active >= len(m.scenes) {
		m.active = 0
	}
	m.canvas.Resize(m.width, surfaceH)
	return nil
}

// renderPass loads one snapshot and redraws the active scene from it.
func (m *Model) renderPass() {
	snap := m.buf.Load()
	m.canvas.Clear()
	if m.active < len(m.scenes) {
		m.scenes[m.active].Paint(m.canvas, snap)
	}
	m.lastSnap = snap
	m.age = snap.Age(m.now())
	m.frames++
}

func (m *Model) switchScene(delta int) {
	n := len(m.scenes)
	if n == 0 {
		return
	}
	m.active = ((m.active+delta)%n + n) % n
	if m.phase == PhaseRunning {
		m.renderPass()
	}
}

func (m *Model) stop() {
	if m.phase == PhaseStopped {
		return
	}
	m.phase = PhaseStopped
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) waiting() bool {
	return m.lastSnap.Empty()
}
