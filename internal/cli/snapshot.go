package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rileyhilliard/plcdash/internal/chart"
	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/dashboard"
	"github.com/rileyhilliard/plcdash/internal/display"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/sample"
	"github.com/rileyhilliard/plcdash/internal/transport"
)

// Snapshot surface size when none is given. The drive scene fits exactly.
const (
	DefaultSnapshotWidth  = 84
	DefaultSnapshotHeight = 17
)

// SnapshotOptions holds options for the snapshot command.
type SnapshotOptions struct {
	Values   string // comma-separated readings
	Simulate bool   // use the simulator's first sample when Values is empty
	Scene    string
	Width    int
	Height   int
	Color    bool
	ASCII    bool
}

// Snapshot renders one frame of a scene to w. It needs no terminal and no
// server, so layouts can be checked in scripts and CI.
func Snapshot(w io.Writer, cfg *config.Config, opts SnapshotOptions) error {
	values, err := ParseValues(opts.Values)
	if err != nil {
		return err
	}
	if values == nil && opts.Simulate {
		values = transport.NewSimulator(nil, 0, nil).Values(0)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultSnapshotWidth
	}
	if height <= 0 {
		height = DefaultSnapshotHeight
	}

	glyphs := chart.UnicodeGlyphs
	if opts.ASCII || cfg.Display.ASCII {
		glyphs = chart.ASCIIGlyphs
	}

	scenes, err := dashboard.BuildScenes(cfg, width, height, glyphs)
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		return errors.New(errors.ErrConfig,
			"No scenes to render",
			"Add at least one scene to .plcdash.yaml.")
	}

	active := 0
	if opts.Scene != "" {
		active = cfg.SceneIndex(opts.Scene)
		if active < 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("No scene named '%s'", opts.Scene),
				"Pick one of the scene names in your .plcdash.yaml, or leave --scene out.")
		}
	}

	buf := sample.NewBuffer()
	if values != nil {
		buf.Store(values)
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ANSI
	}
	canvas := display.NewCanvas(width, height, display.WithProfile(profile))
	scenes[active].Paint(canvas, buf.Load())

	if opts.Color {
		_, err = fmt.Fprintln(w, canvas.String())
		return err
	}

	lines := strings.Split(canvas.Plain(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
