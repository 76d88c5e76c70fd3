package dashboard

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/rileyhilliard/plcdash/internal/chart"
	"github.com/rileyhilliard/plcdash/internal/config"
	"github.com/rileyhilliard/plcdash/internal/display"
	"github.com/rileyhilliard/plcdash/internal/errors"
	"github.com/rileyhilliard/plcdash/internal/sample"
)

// labelWidth is the padded width of a status text label.
const labelWidth = 25

// Scene is one screenful of charts and text fields, laid out for a fixed
// surface size.
type Scene struct {
	Name   string
	Charts []ChartView
	Texts  []TextView
}

// ChartView is a chart placed on the surface with the slots feeding its bars.
type ChartView struct {
	Name string
	X, Y int
	Spec chart.Spec
	Bars []sample.Accessor
}

// TextView is a labelled status line.
type TextView struct {
	X, Y   int
	Label  string
	Color  chart.Color
	Slot   sample.Accessor
	Decode Decoder
}

// Readings evaluates every bar against one snapshot.
func (c ChartView) Readings(snap *sample.Snapshot) []chart.Reading {
	out := make([]chart.Reading, len(c.Bars))
	for i, acc := range c.Bars {
		v, err := acc.Value(snap)
		if err != nil {
			out[i] = chart.StaleReading()
			continue
		}
		out[i] = chart.Value(v)
	}
	return out
}

// Text returns the full status line for one snapshot.
func (t TextView) Text(snap *sample.Snapshot) string {
	return runewidth.FillRight(t.Label+": ", labelWidth) + t.Decode(snap, t.Slot)
}

// Paint draws the scene for one snapshot. Every chart sees the same
// snapshot.
func (s Scene) Paint(c *display.Canvas, snap *sample.Snapshot) {
	for _, cv := range s.Charts {
		c.Paint(chart.Render(cv.Spec, cv.Readings(snap)), cv.X, cv.Y)
	}
	for _, tv := range s.Texts {
		c.Put(tv.Text(snap), tv.X, tv.Y, tv.Color, chart.ColorDefault)
	}
}

// BuildScenes lays out every configured scene for a width x height surface.
// Charts with no width or height stretch to the surface edge.
func BuildScenes(cfg *config.Config, width, height int, glyphs chart.Glyphs) ([]Scene, error) {
	states := cfg.StateTable()
	scenes := make([]Scene, 0, len(cfg.Scenes))

	for i, sc := range cfg.Scenes {
		scene := Scene{Name: sc.Name}
		if scene.Name == "" {
			scene.Name = fmt.Sprintf("scene %d", i+1)
		}

		for _, cc := range sc.Charts {
			cv, err := buildChart(cc, width, height, glyphs)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Cannot build chart '%s' in scene '%s'", cc.Name, scene.Name),
					"Run 'plcdash snapshot' to check the layout, and fix the chart in .plcdash.yaml.")
			}
			scene.Charts = append(scene.Charts, cv)
		}

		for _, tc := range sc.Texts {
			tv, err := buildText(tc, states)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Cannot build text '%s' in scene '%s'", tc.Label, scene.Name),
					"Check the 'texts' entries in .plcdash.yaml.")
			}
			scene.Texts = append(scene.Texts, tv)
		}

		scenes = append(scenes, scene)
	}

	return scenes, nil
}

func buildChart(cc config.ChartConfig, width, height int, glyphs chart.Glyphs) (ChartView, error) {
	spec := chart.Spec{
		Width:     cc.Width,
		Height:    cc.Height,
		AutoScale: cc.Scale == nil,
		Interval:  cc.Interval,
		Labels:    cc.Labels,
		Border:    cc.Border,
		KeyWidth:  cc.KeyWidth,
		Glyphs:    glyphs,
	}
	if spec.Width == 0 {
		spec.Width = max(width-cc.X, 0)
	}
	if spec.Height == 0 {
		spec.Height = max(height-cc.Y, 0)
	}
	if cc.Scale != nil {
		spec.Scale = *cc.Scale
	}
	if cc.Gap != nil {
		g := *cc.Gap
		spec.Gap = &g
	}
	for _, r := range cc.Char {
		spec.Char = r
		break
	}

	var err error
	if spec.FG, err = chart.ParseColor(cc.Color); err != nil {
		return ChartView{}, err
	}
	if spec.BG, err = chart.ParseColor(cc.Background); err != nil {
		return ChartView{}, err
	}
	if spec.Axes, err = chart.ParseAxes(cc.Axes); err != nil {
		return ChartView{}, err
	}

	for _, band := range cc.Gradient {
		bp := chart.Breakpoint{Threshold: band.Threshold}
		if bp.FG, err = chart.ParseColor(band.Color); err != nil {
			return ChartView{}, err
		}
		if bp.BG, err = chart.ParseColor(band.Background); err != nil {
			return ChartView{}, err
		}
		spec.Gradient = append(spec.Gradient, bp)
	}

	cv := ChartView{Name: cc.Name, X: cc.X, Y: cc.Y}
	hasKeys := false
	keys := make([]string, len(cc.Bars))
	for i, b := range cc.Bars {
		cv.Bars = append(cv.Bars, sample.Scaled(b.Index, b.Divisor))
		keys[i] = b.Key
		if b.Key != "" {
			hasKeys = true
		}
	}
	if hasKeys {
		spec.Keys = keys
	}
	cv.Spec = spec

	return cv, nil
}

func buildText(tc config.TextConfig, states map[int]string) (TextView, error) {
	decode, err := decoderFor(tc.Decoder, states)
	if err != nil {
		return TextView{}, err
	}
	color, err := chart.ParseColor(tc.Color)
	if err != nil {
		return TextView{}, err
	}
	return TextView{
		X:      tc.X,
		Y:      tc.Y,
		Label:  tc.Label,
		Color:  color.Or(chart.ColorWhite),
		Slot:   sample.Scaled(tc.Index, tc.Divisor),
		Decode: decode,
	}, nil
}
