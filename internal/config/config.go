// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv = "METARLIGHTS"

	ProviderAviationWeather = "aviationweather"
	ProviderAWCJSON         = "awc-json"

	DeviceWS2801  = "ws2801"
	DeviceConsole = "console"
)

// Station is a monitored station as listed in the configuration file.
type Station struct {
	// ICAO code, three-digit US stations need the padded form (e.g. K9V9)
	Code string `fig:"code"`
	// Zero-based pixel index on the LED string
	Position int `fig:"position"`
}

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Stations []Station  `fig:"stations"`

	Source struct {
		// Allowed values: aviationweather, awc-json
		Provider string        `fig:"provider" default:"aviationweather"`
		URL      string        `fig:"url"`
		Timeout  time.Duration `fig:"timeout" default:"5s"`
	} `fig:"source"`

	Intervals struct {
		Refresh time.Duration   `fig:"refresh" default:"15m"`
		Backoff []time.Duration `fig:"backoff" default:"[30s,1m,2m,5m,10m]"`
		Status  time.Duration   `fig:"status" default:"1h"`
	} `fig:"intervals"`

	Device struct {
		// Allowed values: ws2801, console
		Type       string  `fig:"type" default:"ws2801"`
		Path       string  `fig:"path" default:"/dev/spidev0.0"`
		PixelCount int     `fig:"pixel_count" default:"25"`
		Brightness float64 `fig:"brightness" default:"1.0"`
	} `fig:"device"`

	Night struct {
		Enabled    bool    `fig:"enabled"`
		Latitude   float64 `fig:"latitude"`
		Longitude  float64 `fig:"longitude"`
		Brightness float64 `fig:"brightness" default:"0.2"`
	} `fig:"night"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate checks the configuration values. The station list itself is validated when the
// station registry is loaded, only the positions are checked against the pixel count here.
func (c *Config) Validate() error {
	c.Source.Provider = strings.ToLower(c.Source.Provider)
	if c.Source.Provider != ProviderAviationWeather && c.Source.Provider != ProviderAWCJSON {
		return fmt.Errorf("invalid source provider: %s", c.Source.Provider)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("invalid source timeout: %s", c.Source.Timeout)
	}
	if c.Intervals.Refresh <= 0 {
		return fmt.Errorf("invalid refresh interval: %s", c.Intervals.Refresh)
	}
	if c.Intervals.Status < 0 {
		return fmt.Errorf("invalid status interval: %s", c.Intervals.Status)
	}
	if len(c.Intervals.Backoff) == 0 {
		return fmt.Errorf("backoff intervals must not be empty")
	}
	for i, wait := range c.Intervals.Backoff {
		if wait <= 0 {
			return fmt.Errorf("invalid backoff interval: %s", wait)
		}
		if i > 0 && wait < c.Intervals.Backoff[i-1] {
			return fmt.Errorf("backoff intervals must be ascending: %s after %s", wait,
				c.Intervals.Backoff[i-1])
		}
	}

	c.Device.Type = strings.ToLower(c.Device.Type)
	if c.Device.Type != DeviceWS2801 && c.Device.Type != DeviceConsole {
		return fmt.Errorf("invalid device type: %s", c.Device.Type)
	}
	if c.Device.PixelCount < 1 {
		return fmt.Errorf("invalid pixel count: %d", c.Device.PixelCount)
	}
	if c.Device.Brightness < 0 || c.Device.Brightness > 1 {
		return fmt.Errorf("invalid brightness: %g", c.Device.Brightness)
	}
	for _, station := range c.Stations {
		if station.Position >= c.Device.PixelCount {
			return fmt.Errorf("position %d of station %s exceeds pixel count %d", station.Position,
				station.Code, c.Device.PixelCount)
		}
	}

	if c.Night.Brightness < 0 || c.Night.Brightness > 1 {
		return fmt.Errorf("invalid night brightness: %g", c.Night.Brightness)
	}
	if c.Night.Enabled {
		if c.Night.Latitude < -90 || c.Night.Latitude > 90 {
			return fmt.Errorf("invalid night latitude: %g", c.Night.Latitude)
		}
		if c.Night.Longitude < -180 || c.Night.Longitude > 180 {
			return fmt.Errorf("invalid night longitude: %g", c.Night.Longitude)
		}
	}

	return nil
}
