// Package config loads the settings of the interactive viewers from YAML.
// A missing file means defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	mandel "github.com/marben/mandelzoom"
)

// Config is the viewer configuration
type Config struct {
	// Window is the image size in pixels
	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`

	// View is the initial viewport, restored on reset.
	// UpperLeft and LowerRight ("re,im") take precedence over Region.
	View struct {
		Region     string `yaml:"region"`
		UpperLeft  string `yaml:"upperLeft"`
		LowerRight string `yaml:"lowerRight"`
	} `yaml:"view"`

	Render struct {
		// Workers is the number of bands per render, 0 for one per CPU
		Workers int `yaml:"workers"`

		IterationLimit uint32 `yaml:"iterationLimit"`

		// Sync renders zooms on the event loop, blocking input until the
		// frame is done. Only the native viewer honours it.
		Sync bool `yaml:"sync"`
	} `yaml:"render"`

	Server struct {
		Addr string `yaml:"addr"`

		// OriginPatterns lists the hosts allowed to open the websocket
		// from another origin
		OriginPatterns []string `yaml:"originPatterns"`
	} `yaml:"server"`

	Statsview struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"statsview"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Width = mandel.DefaultBounds.Width
	cfg.Window.Height = mandel.DefaultBounds.Height

	cfg.View.Region = "default"

	cfg.Render.Workers = 0
	cfg.Render.IterationLimit = mandel.DefaultIterationLimit

	cfg.Server.Addr = ":8080"

	cfg.Statsview.Enabled = false
	cfg.Statsview.Addr = "localhost:12600"

	return cfg
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the window size and the initial view
func (c *Config) Validate() error {
	if !c.Bounds().Valid() {
		return fmt.Errorf("window size %s must be positive", c.Bounds())
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render workers %d must not be negative", c.Render.Workers)
	}
	if _, err := c.Viewport(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Bounds() mandel.Bounds {
	return mandel.Bounds{Width: c.Window.Width, Height: c.Window.Height}
}

// Viewport resolves the initial view
func (c *Config) Viewport() (mandel.Viewport, error) {
	var v mandel.Viewport

	if c.View.UpperLeft != "" || c.View.LowerRight != "" {
		ul, err := mandel.ParseComplex(c.View.UpperLeft)
		if err != nil {
			return v, fmt.Errorf("view upperLeft: %w", err)
		}
		lr, err := mandel.ParseComplex(c.View.LowerRight)
		if err != nil {
			return v, fmt.Errorf("view lowerRight: %w", err)
		}
		v = mandel.Viewport{UpperLeft: ul, LowerRight: lr}
	} else {
		r, ok := mandel.Regions[c.View.Region]
		if !ok {
			return v, fmt.Errorf("unknown region %q, known regions: %v", c.View.Region, mandel.RegionNames())
		}
		v = r
	}

	if !v.Valid() {
		return v, fmt.Errorf("view %s: upper left must be left of and above lower right", v)
	}
	return v, nil
}

// Renderer builds the band renderer described by the render section
func (c *Config) Renderer() mandel.BandRenderer {
	return mandel.BandRenderer{
		Workers: c.Render.Workers,
		Limit:   c.Render.IterationLimit,
	}
}
