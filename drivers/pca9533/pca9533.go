// Package pca9533 drives the NXP PCA9533 four-bit LED dimmer as an RGB
// indicator. The chip has only two PWM generators, so three distinct
// intermediate intensities have to share one.
package pca9533

import (
	"ledcore-go/x/mathx"

	"tinygo.org/x/drivers"
)

const Address = 0x62

const (
	regPSC0 = 0x01
	regPWM0 = 0x02
	regPSC1 = 0x03
	regPWM1 = 0x04
	regLS0  = 0x05

	autoInc = 0x10
)

// LS0 selector values.
const (
	opOff  = 0x00
	opOn   = 0x01
	opPWM0 = 0x02
	opPWM1 = 0x03
)

const (
	ofsR = 0
	ofsG = 2
	ofsB = 4
)

type Device struct {
	i2c  drivers.I2C
	addr uint16
	w    [6]byte
}

// New returns a driver; addr 0 selects the default.
func New(bus drivers.I2C, addr uint16) *Device {
	if addr == 0 {
		addr = Address
	}
	return &Device{i2c: bus, addr: addr}
}

func (d *Device) Name() string { return "pca9533" }

// Init zeroes both prescalers, both duty cycles and the selector.
func (d *Device) Init() error {
	d.w = [6]byte{regPSC0 | autoInc, 0, 0, 0, 0, 0}
	return d.i2c.Tx(d.addr, d.w[:], nil)
}

// Plan is the register image for one color.
type Plan struct {
	LS0, PWM0, PWM1 byte
}

// PlanRGB assigns each channel to off, on or one of the two PWM generators.
// Green is placed first. When all three need distinct duty cycles the two
// closest are averaged onto one generator.
func PlanRGB(r, g, b uint8) Plan {
	var pwm0, pwm1 byte
	var opR, opG, opB byte

	switch g {
	case 0:
		opG = opOff
	case 255:
		opG = opOn
	default:
		pwm0, opG = g, opPWM0
	}

	switch {
	case r == 0:
		opR = opOff
	case r == 255:
		opR = opOn
	case pwm0 == 0 || pwm0 == r:
		pwm0, opR = r, opPWM0
	default:
		pwm1, opR = r, opPWM1
	}

	switch {
	case b == 0:
		opB = opOff
	case b == 255:
		opB = opOn
	case pwm0 == 0 || pwm0 == b:
		pwm0, opB = b, opPWM0
	case pwm1 == 0 || pwm1 == b:
		pwm1, opB = b, opPWM1
	default:
		// g holds PWM0 and r holds PWM1 here.
		dgb := mathx.Abs(int(g) - int(b))
		dgr := mathx.Abs(int(g) - int(r))
		dbr := mathx.Abs(int(b) - int(r))
		switch {
		case dgb < dgr && dgb < dbr:
			opB, pwm0 = opPWM0, avg(g, b)
		case dbr <= dgr && dbr <= dgb:
			opB, pwm1 = opPWM1, avg(r, b)
		default:
			opR, pwm0 = opPWM0, avg(g, r)
			opB, pwm1 = opPWM1, b
		}
	}

	return Plan{
		LS0:  opR<<ofsR | opG<<ofsG | opB<<ofsB,
		PWM0: pwm0,
		PWM1: pwm1,
	}
}

func avg(a, b uint8) byte { return byte((uint16(a) + uint16(b)) / 2) }

// SetColor writes the selector, then any duty cycle in use.
func (d *Device) SetColor(r, g, b uint8) error {
	p := PlanRGB(r, g, b)
	if err := d.writeReg(regLS0, p.LS0); err != nil {
		return err
	}
	if p.PWM0 != 0 {
		if err := d.writeReg(regPWM0, p.PWM0); err != nil {
			return err
		}
	}
	if p.PWM1 != 0 {
		return d.writeReg(regPWM1, p.PWM1)
	}
	return nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0], d.w[1] = reg, val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}
