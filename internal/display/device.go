// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package display turns station categories into colors on a positional output device.
package display

import (
	"errors"
	"fmt"
)

// Device is an addressable string of pixels. SetPixel only buffers the color, Show pushes
// all buffered colors to the hardware.
type Device interface {
	SetPixel(position int, color Color) error
	Show() error
}

var ErrPositionOutOfRange = errors.New("position out of range")

// DeviceError is returned when the output device rejects a pixel or fails to show the
// buffered colors. Position is -1 for errors not related to a single pixel.
type DeviceError struct {
	Op       string
	Position int
	Err      error
}

func (e *DeviceError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("device %s failed: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("device %s at position %d failed: %s", e.Op, e.Position, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Clear switches off the first count pixels of the device.
func Clear(device Device, count int) error {
	for i := 0; i < count; i++ {
		if err := device.SetPixel(i, Off); err != nil {
			return &DeviceError{Op: "set", Position: i, Err: err}
		}
	}
	if err := device.Show(); err != nil {
		return &DeviceError{Op: "show", Position: -1, Err: err}
	}
	return nil
}

// pixelBuffer keeps the colors of a fixed number of pixels.
type pixelBuffer []Color

func (p pixelBuffer) set(position int, color Color) error {
	if position < 0 || position >= len(p) {
		return fmt.Errorf("%w: %d (pixel count %d)", ErrPositionOutOfRange, position, len(p))
	}
	p[position] = color
	return nil
}
