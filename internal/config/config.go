// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamaranl/snowflake/internal/snow"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

const (
	MinCount = 1
	MaxCount = 500
)

// Config is the tuning file.
type Config struct {
	// Count is the number of particles on screen.
	Count int `yaml:"count"`

	// Clock is "wall" or "fixed".
	Clock string `yaml:"clock"`

	// Interval is the fixed clock step in milliseconds.
	Interval int `yaml:"interval"`

	// Opacity of every particle, 0 to 1.
	Opacity float64 `yaml:"opacity"`

	// NewsURL points at a plain text file shown in the tray menu. Empty
	// disables the banner.
	NewsURL string `yaml:"newsURL"`

	Feedback Mail `yaml:"feedback"`
}

// Mail configures the SMTP relay used for feedback.
type Mail struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// Enabled reports whether enough is configured to attempt delivery.
func (m Mail) Enabled() bool {
	return m.Host != "" && m.To != "" && m.From != ""
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Count:    100,
		Clock:    string(snow.ClockWall),
		Interval: 20,
		Opacity:  0.9,
		Feedback: Mail{Port: 587},
	}
}

// ClockMode returns the parsed clock mode.
func (c Config) ClockMode() snow.ClockMode {
	m, err := snow.ParseClockMode(c.Clock)
	if err != nil {
		return snow.ClockWall
	}
	return m
}

// IntervalDuration returns Interval as a duration.
func (c Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Count < MinCount || c.Count > MaxCount {
		errs = append(errs, fmt.Errorf("count out of range %d-%d (got %d)", MinCount, MaxCount, c.Count))
	}
	if _, err := snow.ParseClockMode(c.Clock); err != nil {
		errs = append(errs, fmt.Errorf("clock: %w", err))
	}
	if c.ClockMode() == snow.ClockFixed && (c.Interval < 1 || c.Interval > 1000) {
		errs = append(errs, fmt.Errorf("interval out of range 1-1000 ms (got %d)", c.Interval))
	}
	if c.Opacity <= 0 || c.Opacity > 1 {
		errs = append(errs, fmt.Errorf("opacity out of range (0, 1] (got %g)", c.Opacity))
	}
	if c.Feedback.Host != "" && (c.Feedback.Port < 1 || c.Feedback.Port > 65535) {
		errs = append(errs, fmt.Errorf("feedback.port out of range 1-65535 (got %d)", c.Feedback.Port))
	}
	return errors.Join(errs...)
}

// Load resolves the tuning file.
// Search order: customPath -> <UserConfigDir>/SnowFlake/config.yaml ->
// ./configs/snowflake.yaml -> embedded default.
// Fields missing from the file keep their default values. Only an explicit
// customPath turns read or parse failures into errors.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, cfg.Validate()
	}

	candidates := []string{filepath.Join("configs", "snowflake.yaml")}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append([]string{filepath.Join(dir, AppDir, "config.yaml")}, candidates...)
	}
	for _, path := range candidates {
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, cfg.Validate()
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), "", nil
	}
	return cfg, "", cfg.Validate()
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
