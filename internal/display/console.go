// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package display

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Console renders the pixel string as a row of colored blocks using ANSI true color escape
// sequences. It is meant for running without LED hardware.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	pixels pixelBuffer
}

// NewConsole returns a console device with count pixels writing to out.
func NewConsole(out io.Writer, count int) (*Console, error) {
	if out == nil {
		return nil, errors.New("output writer is required")
	}
	if count <= 0 {
		return nil, fmt.Errorf("invalid pixel count: %d", count)
	}
	return &Console{out: out, pixels: make(pixelBuffer, count)}, nil
}

func (c *Console) SetPixel(position int, color Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixels.set(position, color)
}

// Show prints one line with a block per pixel.
func (c *Console) Show() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := bytes.NewBuffer(nil)
	for _, color := range c.pixels {
		_, _ = fmt.Fprintf(buf, "\x1b[48;2;%d;%d;%dm  \x1b[0m", color.R, color.G, color.B)
	}
	buf.WriteByte('\n')
	if _, err := c.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}
