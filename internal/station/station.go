// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package station keeps the table of monitored stations and their latest reports.
package station

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/wneessen/metar-lights/internal/metar"
	"github.com/wneessen/metar-lights/internal/report"
)

var (
	ErrNoStations        = errors.New("no stations configured")
	ErrMalformedCode     = errors.New("station code must be 3 to 4 uppercase letters or digits")
	ErrNegativePosition  = errors.New("position must not be negative")
	ErrDuplicateCode     = errors.New("duplicate station code")
	ErrDuplicatePosition = errors.New("duplicate position")

	codePattern = regexp.MustCompile(`^[A-Z0-9]{3,4}$`)
)

// Entry is a station as read from the configuration.
type Entry struct {
	Code     string
	Position int
}

// ConfigError is returned when the station list can not be loaded. Index is the zero-based
// position of the offending entry in the configured list.
type ConfigError struct {
	Index int
	Code  string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid station configuration: %s", e.Err)
	}
	return fmt.Sprintf("invalid station entry %d (%q): %s", e.Index, e.Code, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Station is a monitored weather station. FetchedAt is zero and RawReport empty until the first
// report was received.
type Station struct {
	Code      string
	Position  int
	RawReport string
	FetchedAt time.Time
	Category  metar.Category
}

// Registry holds the monitored stations in configuration order.
type Registry struct {
	mu       sync.RWMutex
	stations []*Station
	byCode   map[string]*Station
}

// New loads the registry from the configured entries. Codes and positions must be unique.
func New(entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, &ConfigError{Index: -1, Err: ErrNoStations}
	}

	registry := &Registry{
		stations: make([]*Station, 0, len(entries)),
		byCode:   make(map[string]*Station, len(entries)),
	}
	positions := make(map[int]struct{}, len(entries))
	for i, entry := range entries {
		if !codePattern.MatchString(entry.Code) {
			return nil, &ConfigError{Index: i, Code: entry.Code, Err: ErrMalformedCode}
		}
		if entry.Position < 0 {
			return nil, &ConfigError{Index: i, Code: entry.Code, Err: ErrNegativePosition}
		}
		if _, ok := registry.byCode[entry.Code]; ok {
			return nil, &ConfigError{Index: i, Code: entry.Code, Err: ErrDuplicateCode}
		}
		if _, ok := positions[entry.Position]; ok {
			return nil, &ConfigError{Index: i, Code: entry.Code,
				Err: fmt.Errorf("%w: %d", ErrDuplicatePosition, entry.Position)}
		}

		station := &Station{Code: entry.Code, Position: entry.Position, Category: metar.NoData}
		registry.stations = append(registry.stations, station)
		registry.byCode[entry.Code] = station
		positions[entry.Position] = struct{}{}
	}

	return registry, nil
}

// Apply stores the reports of a fetch. Stations missing from the batch are set to NoData but
// keep their last report. It returns true if at least one station received a report.
func (r *Registry) Apply(batch report.Batch, fetchedAt time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := false
	for _, station := range r.stations {
		raw, ok := batch[station.Code]
		if !ok {
			station.Category = metar.NoData
			continue
		}
		station.RawReport = raw
		station.FetchedAt = fetchedAt
		station.Category = metar.Classify(raw)
		updated = true
	}
	return updated
}

// Stations returns a copy of all stations in configuration order.
func (r *Registry) Stations() []Station {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Station, len(r.stations))
	for i, station := range r.stations {
		result[i] = *station
	}
	return result
}

// Codes returns the station codes in configuration order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, len(r.stations))
	for i, station := range r.stations {
		codes[i] = station.Code
	}
	return codes
}

// Get returns a copy of the station with the given code.
func (r *Registry) Get(code string) (Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	station, ok := r.byCode[code]
	if !ok {
		return Station{}, false
	}
	return *station, true
}

// Len returns the number of monitored stations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.stations)
}
