// Package blinkm drives a ThingM BlinkM smart LED.
package blinkm

import (
	"ledcore-go/lighting"

	"tinygo.org/x/drivers"
)

const Address = 0x09

const (
	cmdStopScript = 'o'
	cmdGoToRGB    = 'n'
)

type Device struct {
	i2c  drivers.I2C
	addr uint16
	w    [5]byte
}

// New returns a driver; addr 0 selects the factory default.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{i2c: bus, addr: addr}
}

func (d *Device) Name() string { return "blinkm" }

// SetLEDColor stops the boot script and jumps straight to the color.
func (d *Device) SetLEDColor(c lighting.Color) error {
	d.w = [5]byte{cmdStopScript, cmdGoToRGB, c.R, c.G, c.B}
	return d.i2c.Tx(d.addr, d.w[:], nil)
}
