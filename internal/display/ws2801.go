// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	// latchDelay is the idle clock time after which WS2801 pixels latch the received colors.
	latchDelay = time.Millisecond

	// ClockSpeed is the SPI clock used for the pixel string. WS2801 chips accept up to 25MHz
	// in theory, long strings are only reliable far below that.
	ClockSpeed = physic.MegaHertz
)

// Bus transmits a frame to the pixel string. spi.Conn satisfies it.
type Bus interface {
	Tx(w, r []byte) error
}

// WS2801 drives a WS2801 pixel string attached to a SPI bus.
type WS2801 struct {
	mu     sync.Mutex
	bus    Bus
	port   io.Closer
	pixels pixelBuffer
	frame  []byte
}

// NewWS2801 returns a driver for count pixels sending frames over bus.
func NewWS2801(bus Bus, count int) (*WS2801, error) {
	if bus == nil {
		return nil, errors.New("SPI bus is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid pixel count: %d", count)
	}
	return &WS2801{
		bus:    bus,
		pixels: make(pixelBuffer, count),
		frame:  make([]byte, count*3),
	}, nil
}

// OpenWS2801 opens the SPI port with the given name (e.g. /dev/spidev0.0 or SPI0.0) in mode 0
// with 8 bit words at ClockSpeed and returns a driver for count pixels.
func OpenWS2801(name string, count int) (*WS2801, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port: %w", err)
	}
	conn, err := port.Connect(ClockSpeed, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to configure SPI port %s: %w", name, err)
	}
	device, err := NewWS2801(conn, count)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	device.port = port
	return device, nil
}

func (w *WS2801) SetPixel(position int, color Color) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pixels.set(position, color)
}

// Show sends all pixels in RGB order and waits for the string to latch.
func (w *WS2801) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, color := range w.pixels {
		w.frame[i*3] = color.R
		w.frame[i*3+1] = color.G
		w.frame[i*3+2] = color.B
	}
	if err := w.bus.Tx(w.frame, nil); err != nil {
		return fmt.Errorf("failed to send pixel data: %w", err)
	}
	time.Sleep(latchDelay)
	return nil
}

// Close releases the SPI port if the driver opened it.
func (w *WS2801) Close() error {
	if w.port == nil {
		return nil
	}
	return w.port.Close()
}
