// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package display

import (
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Dimmer lowers the brightness between sunset and sunrise at a location.
type Dimmer struct {
	latitude    float64
	longitude   float64
	day         float64
	night       float64
	nightDimmed bool
}

// NewDimmer returns a Dimmer that uses the day brightness during daylight and the night
// brightness otherwise. Without nightDimmed the day brightness is used at all times.
func NewDimmer(day, night float64, nightDimmed bool, latitude, longitude float64) *Dimmer {
	return &Dimmer{
		latitude:    latitude,
		longitude:   longitude,
		day:         day,
		night:       night,
		nightDimmed: nightDimmed,
	}
}

// Brightness returns the brightness factor for the given time.
func (d *Dimmer) Brightness(now time.Time) float64 {
	if !d.nightDimmed || d.IsDaylight(now) {
		return d.day
	}
	return d.night
}

// IsDaylight reports whether the sun is up at the dimmer's location. On days without sunrise
// or sunset, as in polar regions, it reports true.
func (d *Dimmer) IsDaylight(now time.Time) bool {
	now = now.UTC()

	// Depending on the longitude, the daylight period of a UTC date may extend into the
	// previous or the next date.
	for _, offset := range []int{-1, 0, 1} {
		date := now.AddDate(0, 0, offset)
		rise, set := sunrise.SunriseSunset(d.latitude, d.longitude, date.Year(), date.Month(), date.Day())
		if rise.IsZero() || set.IsZero() {
			if offset == 0 {
				return true
			}
			continue
		}
		if now.After(rise) && now.Before(set) {
			return true
		}
	}
	return false
}
