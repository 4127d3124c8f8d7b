// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"math"

	"github.com/wneessen/metar-lights/internal/metar"
)

// Color is a 24 bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Off     = Color{0, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Red     = Color{255, 0, 0}
	Magenta = Color{255, 0, 255}
	Gray    = Color{50, 50, 50}
)

// ColorFor returns the indicator color of a flight-rule category. Stations without a usable
// report are switched off.
func ColorFor(category metar.Category) Color {
	switch category {
	case metar.VFR:
		return Green
	case metar.MVFR:
		return Blue
	case metar.IFR:
		return Red
	case metar.LIFR:
		return Magenta
	case metar.Smoke:
		return Gray
	case metar.Invalid, metar.NoData:
		return Off
	default:
		return Off
	}
}

// Scale returns the color with every channel multiplied by factor. The factor is clamped to
// the range 0 to 1.
func (c Color) Scale(factor float64) Color {
	factor = math.Max(0, math.Min(1, factor))
	scale := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) * factor))
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
