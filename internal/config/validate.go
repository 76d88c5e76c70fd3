package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rileyhilliard/plcdash/internal/chart"
	"github.com/rileyhilliard/plcdash/internal/errors"
)

// validColorModes are the accepted display.color values.
var validColorModes = map[string]bool{
	"":       true,
	"auto":   true,
	"always": true,
	"never":  true,
}

var validDecoders = map[string]bool{
	DecoderValue: true,
	DecoderState: true,
	DecoderBits:  true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but plcdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade plcdash or lower the version field.")
	}

	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .plcdash.yaml.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your .plcdash.yaml.")
	}

	if err := validateStates(cfg.States); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'states' section in your .plcdash.yaml.")
	}

	if len(cfg.Scenes) == 0 {
		return errors.New(errors.ErrConfig,
			"No scenes configured",
			"Add at least one entry under 'scenes', or delete the key to get the default drive scene.")
	}

	names := make(map[string]bool, len(cfg.Scenes))
	for i, scene := range cfg.Scenes {
		if scene.Name != "" {
			if names[scene.Name] {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Scene name '%s' is used twice", scene.Name),
					"Give every scene a unique name so --scene can pick one.")
			}
			names[scene.Name] = true
		}
		if err := validateScene(scene); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("scene %s: %v", sceneLabel(i, scene), err),
				"Check the 'scenes' section in your .plcdash.yaml.")
		}
	}

	return nil
}

func sceneLabel(i int, s SceneConfig) string {
	if s.Name != "" {
		return fmt.Sprintf("'%s'", s.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}

func validateSource(s SourceConfig) error {
	if !s.Simulate {
		if s.Endpoint == "" {
			return fmt.Errorf("source.endpoint is empty")
		}
		if !strings.HasPrefix(s.Endpoint, "opc.tcp://") {
			return fmt.Errorf("source.endpoint '%s' must start with opc.tcp://", s.Endpoint)
		}
		if s.Node == "" {
			return fmt.Errorf("source.node is empty")
		}
	}
	if s.Interval < 0 {
		return fmt.Errorf("source.interval can't be negative")
	}
	if s.ReconnectDelay < 0 {
		return fmt.Errorf("source.reconnect_delay can't be negative")
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.Refresh < MinRefresh {
		return fmt.Errorf("display.refresh %s is below the %s minimum", d.Refresh, MinRefresh)
	}
	if !validColorModes[d.Color] {
		return fmt.Errorf("display.color '%s' must be auto, always, or never", d.Color)
	}
	return nil
}

func validateStates(states []StateLabel) error {
	seen := make(map[int]bool, len(states))
	for _, s := range states {
		if seen[s.Code] {
			return fmt.Errorf("state code %d is listed twice", s.Code)
		}
		seen[s.Code] = true
	}
	return nil
}

func validateScene(s SceneConfig) error {
	if len(s.Charts) == 0 && len(s.Texts) == 0 {
		return fmt.Errorf("scene has no charts or texts")
	}
	for i, c := range s.Charts {
		if err := validateChart(c); err != nil {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("chart %s: %w", name, err)
		}
	}
	for i, t := range s.Texts {
		if err := validateText(t); err != nil {
			return fmt.Errorf("text #%d: %w", i+1, err)
		}
	}
	return nil
}

func validateChart(c ChartConfig) error {
	if c.X < 0 || c.Y < 0 {
		return fmt.Errorf("position (%d, %d) can't be negative", c.X, c.Y)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size %dx%d can't be negative", c.Width, c.Height)
	}
	if len(c.Bars) == 0 {
		return fmt.Errorf("needs at least one bar")
	}
	for _, b := range c.Bars {
		if b.Index < 0 {
			return fmt.Errorf("bar '%s' has negative index %d", b.Key, b.Index)
		}
		if b.Divisor < 0 {
			return fmt.Errorf("bar '%s' has negative divisor", b.Key)
		}
	}
	if utf8.RuneCountInString(c.Char) > 1 {
		return fmt.Errorf("char '%s' must be a single character", c.Char)
	}
	if _, err := chart.ParseColor(c.Color); err != nil {
		return err
	}
	if _, err := chart.ParseColor(c.Background); err != nil {
		return err
	}
	if _, err := chart.ParseAxes(c.Axes); err != nil {
		return err
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval can't be negative")
	}
	if c.Gap != nil && *c.Gap < 0 {
		return fmt.Errorf("gap can't be negative")
	}
	if c.KeyWidth < 0 {
		return fmt.Errorf("key_width can't be negative")
	}

	prev := 0.0
	for i, band := range c.Gradient {
		if i > 0 && band.Threshold < prev {
			return fmt.Errorf("gradient thresholds must ascend (%g after %g)", band.Threshold, prev)
		}
		prev = band.Threshold
		if _, err := chart.ParseColor(band.Color); err != nil {
			return err
		}
		if _, err := chart.ParseColor(band.Background); err != nil {
			return err
		}
	}
	return nil
}

func validateText(t TextConfig) error {
	if t.X < 0 || t.Y < 0 {
		return fmt.Errorf("position (%d, %d) can't be negative", t.X, t.Y)
	}
	if t.Index < 0 {
		return fmt.Errorf("negative index %d", t.Index)
	}
	if t.Decoder != "" && !validDecoders[t.Decoder] {
		return fmt.Errorf("decoder '%s' must be value, state, or bits", t.Decoder)
	}
	if _, err := chart.ParseColor(t.Color); err != nil {
		return err
	}
	return nil
}
