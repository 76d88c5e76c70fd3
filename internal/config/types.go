package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinRefresh is the fastest allowed redraw period.
const MinRefresh = 50 * time.Millisecond

// Config represents the complete .plcdash.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`

	// States maps drive state codes to the text shown by "state" fields.
	States []StateLabel `yaml:"states" mapstructure:"states"`

	Scenes []SceneConfig `yaml:"scenes" mapstructure:"scenes"`
}

// SourceConfig selects where values come from.
type SourceConfig struct {
	// Endpoint is the OPC UA server URL.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Node is the id of the array variable to subscribe to.
	Node string `yaml:"node" mapstructure:"node"`

	// Interval is the publishing interval requested from the server.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// ReconnectDelay is the wait between connection attempts.
	ReconnectDelay time.Duration `yaml:"reconnect_delay" mapstructure:"reconnect_delay"`

	// Simulate replaces the server with locally generated values.
	Simulate bool `yaml:"simulate" mapstructure:"simulate"`
}

// DisplayConfig controls how the dashboard draws.
type DisplayConfig struct {
	// Refresh is the redraw period.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// ASCII draws chart furniture without box-drawing characters.
	ASCII bool `yaml:"ascii" mapstructure:"ascii"`

	// Color mode: "auto", "always", or "never".
	Color string `yaml:"color" mapstructure:"color"`
}

// StateLabel names one drive state code.
type StateLabel struct {
	Code  int    `yaml:"code" mapstructure:"code"`
	Label string `yaml:"label" mapstructure:"label"`
}

// SceneConfig is one screenful of charts and text fields.
type SceneConfig struct {
	Name   string        `yaml:"name" mapstructure:"name"`
	Charts []ChartConfig `yaml:"charts" mapstructure:"charts"`
	Texts  []TextConfig  `yaml:"texts" mapstructure:"texts"`
}

// ChartConfig places one bar chart on the screen.
type ChartConfig struct {
	Name string `yaml:"name" mapstructure:"name"`

	// Position and size in cells. A zero width or height stretches the
	// chart to the screen edge.
	X      int `yaml:"x" mapstructure:"x"`
	Y      int `yaml:"y" mapstructure:"y"`
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	Bars []BarConfig `yaml:"bars" mapstructure:"bars"`

	Char       string       `yaml:"char,omitempty" mapstructure:"char"`
	Color      string       `yaml:"color,omitempty" mapstructure:"color"`
	Background string       `yaml:"background,omitempty" mapstructure:"background"`
	Gradient   []BandConfig `yaml:"gradient,omitempty" mapstructure:"gradient"`

	// Scale is the value of a full-width bar. Unset uses one unit per
	// cell; zero or negative draws empty bars.
	Scale *float64 `yaml:"scale,omitempty" mapstructure:"scale"`

	// Axes: "none", "x", "y" or "both".
	Axes     string  `yaml:"axes" mapstructure:"axes"`
	Interval float64 `yaml:"interval,omitempty" mapstructure:"interval"`
	Labels   bool    `yaml:"labels" mapstructure:"labels"`
	Border   bool    `yaml:"border,omitempty" mapstructure:"border"`

	// Gap forces the rows between bars; unset spreads them out.
	Gap      *float64 `yaml:"gap,omitempty" mapstructure:"gap"`
	KeyWidth int      `yaml:"key_width,omitempty" mapstructure:"key_width"`
}

// BarConfig binds one bar to a slot of the value array.
type BarConfig struct {
	Key     string  `yaml:"key" mapstructure:"key"`
	Index   int     `yaml:"index" mapstructure:"index"`
	Divisor float64 `yaml:"divisor,omitempty" mapstructure:"divisor"`
}

// BandConfig is one gradient band.
type BandConfig struct {
	Threshold  float64 `yaml:"threshold" mapstructure:"threshold"`
	Color      string  `yaml:"color" mapstructure:"color"`
	Background string  `yaml:"background,omitempty" mapstructure:"background"`
}

// TextConfig is a labelled status line.
type TextConfig struct {
	X     int    `yaml:"x" mapstructure:"x"`
	Y     int    `yaml:"y" mapstructure:"y"`
	Label string `yaml:"label" mapstructure:"label"`
	Index int    `yaml:"index" mapstructure:"index"`

	// Divisor scales "value" fields.
	Divisor float64 `yaml:"divisor,omitempty" mapstructure:"divisor"`

	// Decoder: "value", "state" or "bits".
	Decoder string `yaml:"decoder" mapstructure:"decoder"`
	Color   string `yaml:"color,omitempty" mapstructure:"color"`
}

// Decoder names.
const (
	DecoderValue = "value"
	DecoderState = "state"
	DecoderBits  = "bits"
)

// DefaultStates is the drive state table of the plant inverter.
func DefaultStates() []StateLabel {
	return []StateLabel{
		{Code: 0, Label: "Inhibited"},
		{Code: 1, Label: "Ready"},
		{Code: 4, Label: "Running"},
		{Code: 5, Label: "Power loss"},
		{Code: 6, Label: "Decelerating"},
		{Code: 7, Label: "DC injection"},
		{Code: 9, Label: "Error"},
		{Code: 15, Label: "Undervoltage"},
		{Code: 16, Label: "Initializing"},
	}
}

// DefaultGradient is the white/yellow/red band set every plant chart uses.
func DefaultGradient() []BandConfig {
	return []BandConfig{
		{Threshold: 5, Color: "white", Background: "white"},
		{Threshold: 15, Color: "yellow", Background: "yellow"},
		{Threshold: 30, Color: "red", Background: "red"},
	}
}

// plantChart is a 3x40 single-bar chart in the plant layout.
func plantChart(name, key string, x, y int, index int, divisor, scale, interval float64) ChartConfig {
	return ChartConfig{
		Name:     name,
		X:        x,
		Y:        y,
		Width:    40,
		Height:   3,
		Bars:     []BarConfig{{Key: key, Index: index, Divisor: divisor}},
		Gradient: DefaultGradient(),
		Scale:    &scale,
		Axes:     "x",
		Interval: interval,
		Labels:   true,
	}
}

// DefaultScene is the drive overview: seven meters and three status lines.
func DefaultScene() SceneConfig {
	return SceneConfig{
		Name: "drive",
		Charts: []ChartConfig{
			plantChart("Frequency", "Hz", 1, 1, 0, 10, 50, 10),
			plantChart("Volts", "Volts", 1, 5, 1, 1, 240, 60),
			plantChart("Kw", "Kw", 1, 9, 2, 100, 1, 0.2),
			plantChart("Rpm", "Rpm", 1, 13, 3, 1, 1000, 200),
			plantChart("Amp", "Amp", 43, 1, 5, 100, 5, 1),
			plantChart("AmpCop", "AmpCop", 43, 5, 6, 100, 5, 1),
			plantChart("Load%", "Load %", 43, 9, 7, 10, 100, 20),
		},
		Texts: []TextConfig{
			{X: 43, Y: 13, Label: "Drive state", Index: 4, Decoder: DecoderState},
			{X: 43, Y: 14, Label: "Alert", Index: 8, Decoder: DecoderBits},
			{X: 43, Y: 15, Label: "Info", Index: 11, Decoder: DecoderBits},
		},
	}
}

// DefaultConfig returns a Config that reproduces the plant dashboard.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: SourceConfig{
			Endpoint:       "opc.tcp://192.168.1.115:4840",
			Node:           "ns=2;s=group1",
			Interval:       500 * time.Millisecond,
			ReconnectDelay: 5 * time.Second,
		},
		Display: DisplayConfig{
			Refresh: 250 * time.Millisecond,
			Color:   "auto",
		},
		States: DefaultStates(),
		Scenes: []SceneConfig{DefaultScene()},
	}
}

// StateTable returns the state labels as a lookup map.
func (c *Config) StateTable() map[int]string {
	out := make(map[int]string, len(c.States))
	for _, s := range c.States {
		out[s.Code] = s.Label
	}
	return out
}

// SceneIndex returns the position of the named scene, or -1.
func (c *Config) SceneIndex(name string) int {
	for i, s := range c.Scenes {
		if s.Name == name {
			return i
		}
	}
	return -1
}
