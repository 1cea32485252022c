// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/flipclock/lib/countdown"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "FLIPCLOCK_CONFIG"

// Config is the flip clock configuration.
type Config struct {
	// Target is the instant the countdown reaches zero, in RFC 3339.
	// Empty means the target comes from the command line.
	Target string `yaml:"target" json:"target"`

	// Caption is a short markdown line shown above the cards.
	Caption string `yaml:"caption" json:"caption"`

	// TickInterval is how often remaining time is recomputed.
	// Default: 1s
	TickInterval string `yaml:"tick_interval" json:"tick_interval"`

	// FlipDuration is how long a card flip runs before the new value
	// is committed.
	// Default: 600ms
	FlipDuration string `yaml:"flip_duration" json:"flip_duration"`

	// FrameInterval is the animation frame boundary used to start a
	// flip after the incoming value is revealed.
	// Default: 16ms
	FrameInterval string `yaml:"frame_interval" json:"frame_interval"`

	// Overlap selects what a flip does when the previous flip of the
	// same card is still running. Values: "preserve", "restart".
	// Default: preserve
	Overlap string `yaml:"overlap" json:"overlap"`

	// HideDays removes the days card, for countdowns under a day.
	HideDays bool `yaml:"hide_days" json:"hide_days"`

	// Chime configures the tone played when the countdown expires.
	Chime ChimeConfig `yaml:"chime" json:"chime"`

	// LogOutput is a file that receives JSON logs. ${HOME} and
	// ${VAR:-default} are expanded. Empty sends logs to stderr when
	// not drawing the TUI, and discards them otherwise.
	LogOutput string `yaml:"log_output" json:"log_output"`
}

// ChimeConfig configures the expiry tone.
type ChimeConfig struct {
	// Enabled plays the tone once when the countdown expires.
	// Default: false
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Frequency is the tone pitch in hertz.
	// Default: 880
	Frequency float64 `yaml:"frequency" json:"frequency"`

	// Duration is how long the tone sounds.
	// Default: 1500ms
	Duration string `yaml:"duration" json:"duration"`

	// Volume is a base-2 gain exponent: 0 is unchanged, -1 halves the
	// amplitude.
	// Default: -1
	Volume float64 `yaml:"volume" json:"volume"`
}

// Timing holds the parsed countdown intervals.
type Timing struct {
	Tick  time.Duration
	Flip  time.Duration
	Frame time.Duration
}

// Default returns the default configuration. Loaded files are merged
// over it, so any field a file omits keeps its default.
func Default() *Config {
	return &Config{
		TickInterval:  countdown.DefaultTickInterval.String(),
		FlipDuration:  countdown.DefaultFlipDuration.String(),
		FrameInterval: "16ms",
		Overlap:       countdown.OverlapPreserve.String(),
		Chime: ChimeConfig{
			Enabled:   false,
			Frequency: 880,
			Duration:  "1.5s",
			Volume:    -1,
		},
	}
}

// Load loads configuration from the FLIPCLOCK_CONFIG environment
// variable. Fails if the variable is not set; callers that can run on
// defaults check [Configured] first.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a flipclock.yaml config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// Configured reports whether FLIPCLOCK_CONFIG names a config file.
func Configured() bool {
	return os.Getenv(EnvironmentVariable) != ""
}

// LoadFile loads configuration from a file. Files ending in .json or
// .jsonc are read as JSON with comments and trailing commas; anything
// else is read as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.LogOutput = expandVars(c.LogOutput, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// TargetTime parses Target. Returns the zero time and false when no
// target is configured.
func (c *Config) TargetTime() (time.Time, bool, error) {
	if c.Target == "" {
		return time.Time{}, false, nil
	}
	target, err := time.Parse(time.RFC3339, c.Target)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("target: %w", err)
	}
	return target, true, nil
}

// Timing parses the countdown intervals.
func (c *Config) Timing() (Timing, error) {
	var timing Timing
	var errs []error
	var err error

	if timing.Tick, err = parsePositiveDuration("tick_interval", c.TickInterval); err != nil {
		errs = append(errs, err)
	}
	if timing.Flip, err = parseNonNegativeDuration("flip_duration", c.FlipDuration); err != nil {
		errs = append(errs, err)
	}
	if timing.Frame, err = parsePositiveDuration("frame_interval", c.FrameInterval); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Timing{}, errors.Join(errs...)
	}
	return timing, nil
}

// OverlapPolicy parses Overlap.
func (c *Config) OverlapPolicy() (countdown.OverlapPolicy, error) {
	policy, err := countdown.ParseOverlapPolicy(c.Overlap)
	if err != nil {
		return policy, fmt.Errorf("overlap: %w", err)
	}
	return policy, nil
}

// ChimeDuration parses Chime.Duration.
func (c *Config) ChimeDuration() (time.Duration, error) {
	return parsePositiveDuration("chime.duration", c.Chime.Duration)
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, _, err := c.TargetTime(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Timing(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.OverlapPolicy(); err != nil {
		errs = append(errs, err)
	}

	if c.Chime.Enabled {
		if c.Chime.Frequency <= 0 {
			errs = append(errs, fmt.Errorf("chime.frequency must be positive, got %v", c.Chime.Frequency))
		}
		if _, err := c.ChimeDuration(); err != nil {
			errs = append(errs, err)
		}
		if c.Chime.Volume > 0 {
			errs = append(errs, fmt.Errorf("chime.volume must not exceed 0, got %v", c.Chime.Volume))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	duration, err := parseNonNegativeDuration(field, value)
	if err != nil {
		return 0, err
	}
	if duration == 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return duration, nil
}

func parseNonNegativeDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return duration, nil
}
