package thicket

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	defaultDragDeadZone           = 4.0 // pixels
	defaultDoubleClickTicks       = 18
	defaultDoubleClickDistance    = 4.0
	defaultKeyRepeatDelayTicks    = 30
	defaultKeyRepeatIntervalTicks = 3
	defaultCaretBlinkSeconds      = 0.5
	defaultMaskRune               = '*'
	defaultTPS                    = 60
)

// Config holds the tunables of the routing core. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// HighZThreshold is the z-order at which the high (drag payload) tier starts.
	HighZThreshold int `yaml:"high_z_threshold"`
	// DragDeadZone is the distance in logical pixels the pointer must travel
	// with a button held before a drag starts.
	DragDeadZone float64 `yaml:"drag_dead_zone"`
	// DoubleClickTicks is the longest gap between two clicks, in ticks, that
	// still counts as a double-click.
	DoubleClickTicks int `yaml:"double_click_ticks"`
	// DoubleClickDistance is the furthest apart two clicks may be.
	DoubleClickDistance float64 `yaml:"double_click_distance"`
	// KeyRepeatDelayTicks is how long a key is held before it auto-repeats.
	// Zero disables auto-repeat.
	KeyRepeatDelayTicks int `yaml:"key_repeat_delay_ticks"`
	// KeyRepeatIntervalTicks is the spacing between repeats.
	KeyRepeatIntervalTicks int `yaml:"key_repeat_interval_ticks"`
	// CaretBlinkSeconds is the duration of one caret fade.
	CaretBlinkSeconds float64 `yaml:"caret_blink_seconds"`
	// MaskRune replaces every character of a password text box on display.
	MaskRune string `yaml:"mask_rune"`
	// TPS is the tick rate used to compute update deltas.
	TPS int `yaml:"tps"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		HighZThreshold:         DefaultHighZThreshold,
		DragDeadZone:           defaultDragDeadZone,
		DoubleClickTicks:       defaultDoubleClickTicks,
		DoubleClickDistance:    defaultDoubleClickDistance,
		KeyRepeatDelayTicks:    defaultKeyRepeatDelayTicks,
		KeyRepeatIntervalTicks: defaultKeyRepeatIntervalTicks,
		CaretBlinkSeconds:      defaultCaretBlinkSeconds,
		MaskRune:               string(defaultMaskRune),
		TPS:                    defaultTPS,
	}
}

// LoadConfig parses YAML on top of DefaultConfig. Keys that are absent keep
// their defaults; unknown keys are an error.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.DragDeadZone < 0:
		return fmt.Errorf("config: drag_dead_zone must be >= 0, got %v", c.DragDeadZone)
	case c.DoubleClickTicks < 0:
		return fmt.Errorf("config: double_click_ticks must be >= 0, got %d", c.DoubleClickTicks)
	case c.DoubleClickDistance < 0:
		return fmt.Errorf("config: double_click_distance must be >= 0, got %v", c.DoubleClickDistance)
	case c.KeyRepeatDelayTicks < 0 || c.KeyRepeatIntervalTicks < 0:
		return fmt.Errorf("config: key repeat ticks must be >= 0")
	case c.CaretBlinkSeconds <= 0:
		return fmt.Errorf("config: caret_blink_seconds must be > 0, got %v", c.CaretBlinkSeconds)
	case len([]rune(c.MaskRune)) != 1:
		return fmt.Errorf("config: mask_rune must be a single character, got %q", c.MaskRune)
	case c.TPS <= 0:
		return fmt.Errorf("config: tps must be > 0, got %d", c.TPS)
	}
	return nil
}

// maskRune returns the configured mask character.
func (c Config) maskRune() rune {
	for _, r := range c.MaskRune {
		return r
	}
	return defaultMaskRune
}
