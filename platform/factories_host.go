//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"io"
	"os"
	"sync"

	"ledcore-go/lighting"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C and keeps every write for inspection.
type HostI2C struct {
	mu  sync.Mutex
	txs []Tx
	err error
}

type Tx struct {
	Addr uint16
	W    []byte
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.txs = append(h.txs, Tx{Addr: addr, W: append([]byte(nil), w...)})
	clear(r)
	return h.err
}

// SetErr makes every following transfer fail with err (nil restores).
func (h *HostI2C) SetErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// Txs returns a copy of the recorded transfers.
func (h *HostI2C) Txs() []Tx {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Tx(nil), h.txs...)
}

// ----------------------------- Pins (host) -----------------------------------

// FakePins implements lighting.PinWriter. Pins listed in PWM are analog
// capable; everything else is digital.
type FakePins struct {
	mu      sync.Mutex
	pwm     map[int]bool
	mode    map[int]string
	analog  map[int]uint8
	digital map[int]bool
}

func NewFakePins(pwm ...int) *FakePins {
	p := &FakePins{
		pwm:     make(map[int]bool),
		mode:    make(map[int]string),
		analog:  make(map[int]uint8),
		digital: make(map[int]bool),
	}
	for _, n := range pwm {
		p.pwm[n] = true
	}
	return p
}

func (p *FakePins) IsPWM(pin int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pwm[pin]
}

func (p *FakePins) ConfigurePWM(pin int) error    { return p.setMode(pin, "pwm") }
func (p *FakePins) ConfigureOutput(pin int) error { return p.setMode(pin, "out") }

func (p *FakePins) setMode(pin int, m string) error {
	p.mu.Lock()
	p.mode[pin] = m
	p.mu.Unlock()
	return nil
}

func (p *FakePins) WriteAnalog(pin int, v uint8) {
	p.mu.Lock()
	p.analog[pin] = v
	p.mu.Unlock()
}

func (p *FakePins) WriteDigital(pin int, high bool) {
	p.mu.Lock()
	p.digital[pin] = high
	p.mu.Unlock()
}

// Level reports the last value written to pin; digital highs read as 255.
func (p *FakePins) Level(pin int) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.analog[pin]; ok {
		return v
	}
	if p.digital[pin] {
		return 255
	}
	return 0
}

func (p *FakePins) Mode(pin int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode[pin]
}

// ----------------------------- Strip (host) ----------------------------------

// HostStrip keeps the last frame written.
type HostStrip struct {
	mu    sync.Mutex
	frame []byte
}

func (s *HostStrip) Write(b []byte) (int, error) {
	s.mu.Lock()
	s.frame = append(s.frame[:0], b...)
	s.mu.Unlock()
	return len(b), nil
}

func (s *HostStrip) Frame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.frame...)
}

// ----------------------------- Console (host) --------------------------------

// StreamPort adapts a reader/writer pair to SerialPort.
type StreamPort struct {
	R io.Reader
	W io.Writer
}

func (s StreamPort) Write(b []byte) (int, error) { return s.W.Write(b) }

// RecvSomeContext does a blocking read; ctx is only checked beforehand.
func (s StreamPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.R.Read(buf)
}

// ----------------------------- Board (host) ----------------------------------

const (
	// Device selects the embedded configuration.
	Device    = "host"
	// BootDelay is how long main waits before logging.
	BootDelay = 0
)

// HostBoard is an inert board with i2c0/i2c1, fake pins and in-memory strips.
type HostBoard struct {
	mu      sync.Mutex
	pins    *FakePins
	buses   map[string]*HostI2C
	strips  map[int]*HostStrip
	console SerialPort
}

func NewHostBoard(pwmPins ...int) *HostBoard {
	return &HostBoard{
		pins:    NewFakePins(pwmPins...),
		buses:   map[string]*HostI2C{"i2c0": {}, "i2c1": {}},
		strips:  make(map[int]*HostStrip),
		console: StreamPort{R: os.Stdin, W: os.Stdout},
	}
}

// Default is the board used by main on the host.
func Default() Board { return NewHostBoard(2, 3, 4, 5, 6, 7, 8, 9) }

func (b *HostBoard) Pins() lighting.PinWriter { return b.pins }
func (b *HostBoard) FakePins() *FakePins      { return b.pins }

func (b *HostBoard) I2C(id string) (drivers.I2C, bool) {
	bus, ok := b.buses[id]
	if !ok {
		return nil, false
	}
	return bus, true
}

// HostBus returns the recorder behind id.
func (b *HostBoard) HostBus(id string) *HostI2C { return b.buses[id] }

func (b *HostBoard) Strip(pin int) (io.Writer, error) {
	if pin < 0 {
		return nil, ErrNoStripPin
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.strips[pin]
	if !ok {
		s = &HostStrip{}
		b.strips[pin] = s
	}
	return s, nil
}

// HostStrip returns the strip on pin, or nil if none was created.
func (b *HostBoard) HostStrip(pin int) *HostStrip {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.strips[pin]
}

func (b *HostBoard) Console() SerialPort { return b.console }

// SetConsole replaces the console transport.
func (b *HostBoard) SetConsole(p SerialPort) { b.console = p }
