package dashboard

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/display"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/sample"
)

func newTestModel(t *testing.T, cfg *config.Config, buf *sample.Buffer) Model {
	t.Helper()
	m, err := NewModel(Options{
		Config:        cfg,
		Buffer:        buf,
		Endpoint:      "opc.tcp://plc:4840",
		CanvasOptions: []display.Option{display.WithProfile(termenv.Ascii)},
	})
	require.NoError(t, err)
	return m
}

// send runs one Update and returns the concrete model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

// resize delivers a window size and the rebuild it schedules.
func resize(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, cmd := send(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	require.Equal(t, PhaseResized, m.Phase())
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, nil, nil)
	assert.Equal(t, PhaseIdle, m.Phase())
	assert.Equal(t, "drive", m.ActiveScene())
	assert.Equal(t, 250*time.Millisecond, m.refresh)
	assert.Equal(t, DefaultStaleAfter, m.stale)
	assert.NotNil(t, m.Init())
}

func TestNewModel_Scene(t *testing.T) {
	m, err := NewModel(Options{Config: twoSceneConfig(), Scene: "status"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.active)
	assert.Equal(t, "status", m.ActiveScene())

	_, err = NewModel(Options{Config: twoSceneConfig(), Scene: "boiler"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestNewModel_StaleFollowsInterval(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Interval = 2 * time.Second
	cfg.Display.Refresh = 0

	m, err := NewModel(Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 8*time.Second, m.stale)
	assert.Equal(t, DefaultRefresh, m.refresh)
}

func TestModel_IdleIgnoresTicks(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)

	m, cmd := send(t, m, tickMsg(time.Now()))
	assert.Equal(t, PhaseIdle, m.Phase())
	assert.Equal(t, uint64(0), m.frames)
	assert.NotNil(t, cmd, "tick must re-arm")
	assert.Contains(t, m.View(), "starting")
}

func TestModel_ResizeLifecycle(t *testing.T) {
	buf := sample.NewBuffer()
	buf.Store([]float64{5, 4, 3})
	m := newTestModel(t, twoSceneConfig(), buf)

	m = resize(t, m, 30, 5)
	assert.Equal(t, PhaseRunning, m.Phase())
	assert.Equal(t, uint64(1), m.frames, "rebuild renders once")

	w, h := m.canvas.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 4, h, "one row is kept for the status line")

	m, _ = send(t, m, tickMsg(time.Now()))
	assert.Equal(t, uint64(2), m.frames)

	// Ticks between a resize and its rebuild are skipped
	m, cmd := send(t, m, tea.WindowSizeMsg{Width: 40, Height: 8})
	require.NotNil(t, cmd)
	m, tickCmd := send(t, m, tickMsg(time.Now()))
	assert.Equal(t, PhaseResized, m.Phase())
	assert.Equal(t, uint64(2), m.frames)
	assert.NotNil(t, tickCmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, PhaseRunning, m.Phase())
	w, h = m.canvas.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 7, h)
}

func TestModel_StaleRebuildIgnored(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)

	m, first := send(t, m, tea.WindowSizeMsg{Width: 30, Height: 5})
	m, second := send(t, m, tea.WindowSizeMsg{Width: 50, Height: 12})

	m, _ = send(t, m, first())
	assert.Equal(t, PhaseResized, m.Phase())

	m, _ = send(t, m, second())
	assert.Equal(t, PhaseRunning, m.Phase())
	w, h := m.canvas.Size()
	assert.Equal(t, 50, w)
	assert.Equal(t, 11, h)
}

func TestModel_ResizeKeepsActiveScene(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)
	m = resize(t, m, 30, 5)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "status", m.ActiveScene())

	m = resize(t, m, 60, 20)
	assert.Equal(t, "status", m.ActiveScene())
}

func TestModel_RenderFromBuffer(t *testing.T) {
	buf := sample.NewBuffer()
	buf.Store([]float64{5, 4, 3})
	m := newTestModel(t, twoSceneConfig(), buf)
	m = resize(t, m, 40, 5)

	rows := strings.Split(m.canvas.Plain(), "\n")
	assert.Equal(t, strings.Repeat("#", 10), strings.TrimRight(rows[0], " "))
	assert.Contains(t, rows[2], "Running")

	// New data shows up on the next tick
	buf.Store([]float64{10, 1, 3})
	m, _ = send(t, m, tickMsg(time.Now()))
	rows = strings.Split(m.canvas.Plain(), "\n")
	assert.Equal(t, strings.Repeat("#", 20), strings.TrimRight(rows[0], " "))
	assert.Contains(t, rows[2], "Ready")
}

func TestModel_ShortBufferShowsPlaceholders(t *testing.T) {
	buf := sample.NewBuffer()
	buf.Store([]float64{5})
	m := newTestModel(t, twoSceneConfig(), buf)
	m = resize(t, m, 30, 5)

	rows := strings.Split(m.canvas.Plain(), "\n")
	assert.Equal(t, strings.Repeat("#", 10), strings.TrimRight(rows[0], " "))
	assert.Equal(t, "State:"+strings.Repeat(" ", 19)+"--", strings.TrimRight(rows[2], " "))
}

func TestModel_RenderIsIdempotent(t *testing.T) {
	buf := sample.NewBuffer()
	buf.Store([]float64{2500, 2300, 45, 870, 4, 120, 95, 640, 1, 0, 0, 5})
	m := newTestModel(t, nil, buf)
	m = resize(t, m, 84, 18)

	first := m.canvas.String()
	m, _ = send(t, m, tickMsg(time.Now()))
	assert.Equal(t, first, m.canvas.String())
	assert.Contains(t, m.canvas.Plain(), "Drive state:")
	assert.Contains(t, m.canvas.Plain(), "Running")
	assert.Contains(t, m.canvas.Plain(), "00000101")
}

func TestModel_SceneKeys(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)
	m = resize(t, m, 30, 5)

	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, "status"},
		{tea.KeyMsg{Type: tea.KeyTab}, "meters"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "status"},
		{keyRunes("p"), "meters"},
		{keyRunes("n"), "status"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "meters"},
	}

	for i, tt := range tests {
		var cmd tea.Cmd
		m, cmd = send(t, m, tt.msg)
		assert.Nil(t, cmd)
		assert.Equal(t, tt.want, m.ActiveScene(), "step %d", i)
	}
}

func TestModel_Quit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m, err := NewModel(Options{Config: twoSceneConfig(), Cancel: cancel})
	require.NoError(t, err)
	m = resize(t, m, 30, 5)

	m, cmd := send(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, PhaseStopped, m.Phase())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Empty(t, m.View())

	// Nothing moves once stopped
	m, cmd = send(t, m, tickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseStopped, m.Phase())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseStopped, m.Phase())
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)
	m = resize(t, m, 60, 20)

	m, _ = send(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "next scene")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
	assert.NotContains(t, m.View(), "Keyboard Shortcuts")

	// esc outside the overlay does nothing
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, PhaseRunning, m.Phase())
}

func TestModel_Redraw(t *testing.T) {
	m := newTestModel(t, twoSceneConfig(), nil)
	m = resize(t, m, 30, 5)
	before := m.frames

	m, cmd := send(t, m, keyRunes("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.frames)
}

func TestModel_StatusLine(t *testing.T) {
	buf := sample.NewBuffer()
	m := newTestModel(t, twoSceneConfig(), buf)
	m = resize(t, m, 200, 6)

	view := m.View()
	assert.Contains(t, view, "[1/2] meters")
	assert.Contains(t, view, "connecting opc.tcp://plc:4840")
	assert.Contains(t, view, "waiting for data")

	m, _ = send(t, m, LinkMsg{State: LinkConnected, Endpoint: "opc.tcp://plc:4840"})
	buf.Store([]float64{1, 1, 1})
	m, _ = send(t, m, tickMsg(time.Now()))

	view = m.View()
	assert.Contains(t, view, "connected opc.tcp://plc:4840")
	assert.Contains(t, view, "data ")
	assert.NotContains(t, view, "waiting for data")

	m, _ = send(t, m, LinkMsg{
		State:    LinkDown,
		Endpoint: "opc.tcp://plc:4840",
		Err:      fmt.Errorf("connection reset\nmore detail"),
	})
	view = m.View()
	assert.Contains(t, view, "reconnecting opc.tcp://plc:4840")
	assert.Contains(t, view, "connection reset")
	assert.NotContains(t, view, "more detail")
}

func TestModel_StaleData(t *testing.T) {
	buf := sample.NewBuffer()
	buf.Store([]float64{1, 1, 1})
	m, err := NewModel(Options{
		Config: twoSceneConfig(),
		Buffer: buf,
		Now:    func() time.Time { return time.Now().Add(time.Minute) },
	})
	require.NoError(t, err)
	m = resize(t, m, 200, 6)

	assert.Greater(t, m.age, m.stale)
	assert.Contains(t, m.View(), "s old")
}

func TestModel_SpinnerStopsWithData(t *testing.T) {
	buf := sample.NewBuffer()
	m := newTestModel(t, twoSceneConfig(), buf)
	m = resize(t, m, 30, 5)

	_, cmd := send(t, m, m.spinner.Tick())
	assert.NotNil(t, cmd, "spinner keeps turning while waiting")

	buf.Store([]float64{1})
	m, _ = send(t, m, tickMsg(time.Now()))
	_, cmd = send(t, m, spinner.TickMsg{ID: m.spinner.ID()})
	assert.Nil(t, cmd)
}

func TestModel_RebuildErrorStops(t *testing.T) {
	cfg := twoSceneConfig()
	cfg.Scenes[0].Charts[0].Color = "mauve"
	m := newTestModel(t, cfg, nil)

	m, cmd := send(t, m, tea.WindowSizeMsg{Width: 30, Height: 5})
	m, cmd = send(t, m, cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, PhaseStopped, m.Phase())
	require.Error(t, m.Err())
	assert.True(t, errors.IsCode(m.Err(), errors.ErrConfig))
}

func TestPhaseAndLinkStrings(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "resized", PhaseResized.String())
	assert.Equal(t, "stopped", PhaseStopped.String())
	assert.Equal(t, "unknown", Phase(42).String())

	assert.Equal(t, "connecting", LinkConnecting.String())
	assert.Equal(t, "connected", LinkConnected.String())
	assert.Equal(t, "reconnecting", LinkDown.String())
}
