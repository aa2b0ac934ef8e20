// Package pca9632 drives the NXP PCA9632 four-channel LED controller as an
// RGB(W) indicator.
package pca9632

import (
	"ledcore-go/lighting"

	"tinygo.org/x/drivers"
)

const Address = 0x60

const (
	regMode1  = 0x00
	regMode2  = 0x01
	regPWM0   = 0x02
	regLEDOut = 0x08

	// auto-increment over the individual brightness registers
	autoIncPWM = 0xA0

	mode1Value = 0x01 // ALLCALL
	mode2Value = 0x15 // DMBLNK, INVRT, OUTDRV

	ledPWM = 0x02
)

// LEDOUT field shift per output.
const (
	shiftR = 0
	shiftG = 2
	shiftB = 4
	shiftW = 6
)

type Config struct {
	// Address defaults to 0x60 if zero.
	Address uint16
	// White enables the fourth PWM output.
	White bool
}

type Device struct {
	i2c   drivers.I2C
	addr  uint16
	white bool
	ready bool
	w     [6]byte
}

func New(bus drivers.I2C, cfg Config) *Device {
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	return &Device{i2c: bus, addr: cfg.Address, white: cfg.White}
}

func (d *Device) Name() string { return "pca9632" }

// Init programs MODE1/MODE2. SetLEDColor calls it on first use.
func (d *Device) Init() error {
	if err := d.writeReg(regMode1, mode1Value); err != nil {
		return err
	}
	if err := d.writeReg(regMode2, mode2Value); err != nil {
		return err
	}
	d.ready = true
	return nil
}

func (d *Device) SetLEDColor(c lighting.Color) error {
	if !d.ready {
		if err := d.Init(); err != nil {
			return err
		}
	}
	d.w[0] = autoIncPWM | regPWM0
	d.w[1], d.w[2], d.w[3] = c.R, c.G, c.B
	n := 4
	if d.white {
		d.w[4] = c.W
		n = 5
	}
	if err := d.i2c.Tx(d.addr, d.w[:n], nil); err != nil {
		return err
	}
	return d.writeReg(regLEDOut, ledOut(c, d.white))
}

// ledOut puts every nonzero output under individual PWM control.
func ledOut(c lighting.Color, white bool) byte {
	var v byte
	if c.R != 0 {
		v |= ledPWM << shiftR
	}
	if c.G != 0 {
		v |= ledPWM << shiftG
	}
	if c.B != 0 {
		v |= ledPWM << shiftB
	}
	if white && c.W != 0 {
		v |= ledPWM << shiftW
	}
	return v
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0], d.w[1] = reg, val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}
