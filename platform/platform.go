// Package platform supplies the raw hardware the lighting channels are built
// from. The MCU build wires machine peripherals; the host build returns
// recording fakes so services can run and be tested off-target.
package platform

import (
	"context"
	"errors"
	"io"

	"ledcore-go/lighting"

	"tinygo.org/x/drivers"
)

var ErrNoStripPin = errors.New("platform: invalid strip pin")

// SerialPort is the console transport.
type SerialPort interface {
	Write(p []byte) (int, error)
	// RecvSomeContext blocks until at least one byte arrives or ctx ends.
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// Board is everything a channel builder may ask for.
type Board interface {
	Pins() lighting.PinWriter
	I2C(id string) (drivers.I2C, bool)
	// Strip returns the byte sink for an addressable strip on pin.
	Strip(pin int) (io.Writer, error)
	Console() SerialPort
}
