// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package display

import (
	"log/slog"
	"time"

	"github.com/wneessen/metar-lights/internal/logger"
	"github.com/wneessen/metar-lights/internal/station"
)

// Renderer pushes the station categories to an output device.
type Renderer struct {
	device Device
	dimmer *Dimmer
	logger *logger.Logger
}

// NewRenderer returns a Renderer for the device. A nil dimmer renders at full brightness.
func NewRenderer(device Device, dimmer *Dimmer, log *logger.Logger) *Renderer {
	return &Renderer{device: device, dimmer: dimmer, logger: log}
}

// Render sets the pixel of every station to the color of its category and shows the result.
// The first device failure abandons the render.
func (r *Renderer) Render(stations []station.Station, now time.Time) error {
	brightness := 1.0
	if r.dimmer != nil {
		brightness = r.dimmer.Brightness(now)
	}

	for _, st := range stations {
		color := ColorFor(st.Category).Scale(brightness)
		r.logger.Info("station rendered", slog.String("station", st.Code),
			slog.String("category", st.Category.String()), slog.String("color", color.String()),
			slog.Int("position", st.Position))
		if err := r.device.SetPixel(st.Position, color); err != nil {
			return &DeviceError{Op: "set", Position: st.Position, Err: err}
		}
	}
	if err := r.device.Show(); err != nil {
		return &DeviceError{Op: "show", Position: -1, Err: err}
	}
	return nil
}
