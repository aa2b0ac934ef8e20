//go:build rp2040 || rp2350

package platform

import (
	"errors"
	"io"
	"machine"
	"time"

	"ledcore-go/lighting"
	"ledcore-go/x/timex"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ws2812"
)

const (
	Device    = "pico"
	// BootDelay lets USB CDC enumerate before anything is printed.
	BootDelay = 2 * time.Second
)

const (
	pwmFreqHz   = 1000
	consoleBaud = 115200
)

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	}
	return nil
}

type pwmOut struct {
	ctrl pwmCtrl
	ch   uint8
}

// rp2Pins maps logical numbers to GP pins. Every RP2 GPIO sits on a PWM slice.
type rp2Pins struct {
	slices map[uint8]bool
	pwm    map[int]pwmOut
}

func (p *rp2Pins) IsPWM(pin int) bool {
	_, err := machine.PWMPeripheral(machine.Pin(pin))
	return err == nil
}

func (p *rp2Pins) ConfigurePWM(pin int) error {
	mp := machine.Pin(pin)
	slice, err := machine.PWMPeripheral(mp)
	if err != nil {
		return err
	}
	ctrl := pwmGroupBySlice(slice)
	if ctrl == nil {
		return errors.New("platform: no pwm slice")
	}
	// First user configures the slice period; all lighting pins share it.
	if !p.slices[slice] {
		if err := ctrl.Configure(machine.PWMConfig{Period: timex.PeriodFromHz(pwmFreqHz)}); err != nil {
			return err
		}
		p.slices[slice] = true
	}
	ch, err := ctrl.Channel(mp)
	if err != nil {
		return err
	}
	p.pwm[pin] = pwmOut{ctrl: ctrl, ch: ch}
	return nil
}

func (p *rp2Pins) ConfigureOutput(pin int) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (p *rp2Pins) WriteAnalog(pin int, v uint8) {
	o, ok := p.pwm[pin]
	if !ok {
		return
	}
	o.ctrl.Set(o.ch, uint32(v)*o.ctrl.Top()/255)
}

func (p *rp2Pins) WriteDigital(pin int, high bool) { machine.Pin(pin).Set(high) }

type rp2Board struct {
	pins    *rp2Pins
	buses   map[string]drivers.I2C
	console *uartx.UART
}

// Default configures i2c0 and i2c1 with board-default pins at 400 kHz and
// UART0 as the console.
func Default() Board {
	b := &rp2Board{
		pins:  &rp2Pins{slices: make(map[uint8]bool), pwm: make(map[int]pwmOut)},
		buses: make(map[string]drivers.I2C),
	}

	b0 := machine.I2C0
	_ = b0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	b.buses["i2c0"] = b0

	b1 := machine.I2C1
	_ = b1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C1_SDA_PIN,
		SCL:       machine.I2C1_SCL_PIN,
	})
	b.buses["i2c1"] = b1

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: consoleBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	b.console = u

	return b
}

func (b *rp2Board) Pins() lighting.PinWriter { return b.pins }

func (b *rp2Board) I2C(id string) (drivers.I2C, bool) {
	bus, ok := b.buses[id]
	return bus, ok
}

func (b *rp2Board) Strip(pin int) (io.Writer, error) {
	if pin < 0 || pin > 29 {
		return nil, ErrNoStripPin
	}
	mp := machine.Pin(pin)
	mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return ws2812.New(mp), nil
}

func (b *rp2Board) Console() SerialPort { return b.console }
