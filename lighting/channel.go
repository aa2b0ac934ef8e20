package lighting

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"ledcore-go/errcode"
	"ledcore-go/x/logx"
)

// Config describes one physical lighting channel. A nil backend is simply
// never dispatched to.
type Config struct {
	Name  string
	Index int

	Strip PixelStrip
	// Background is a strip pixel never overwritten by this channel.
	// Only honoured when ReserveBackground is set.
	Background        int
	ReserveBackground bool
	// Sequential makes event-driven writes advance one pixel per call.
	Sequential bool

	RGB    []RGBDriver
	Pins   PinWriter
	PinMap PinMap
	Preset PresetDriver

	HasWhite bool
	// Timeout enables the backlight auto-off when positive.
	Timeout time.Duration
	// Default is the user preset; the zero value means NewColor().
	Default        Color
	Presets        bool
	StartupDefault bool
	ReduceGreen    bool
}

// State is a snapshot of a channel's memory.
type State struct {
	Color     Color // last color that was on
	On        bool
	NextPixel int
	Deadline  int64 // ms, meaningful while Armed
	Armed     bool
}

// Channel owns the on/off memory of one lighting channel and serialises
// every backend write made on its behalf.
type Channel struct {
	mu    sync.Mutex
	cfg   Config
	white Color
	st    State
}

func New(cfg Config) *Channel {
	if cfg.Default == (Color{}) {
		cfg.Default = NewColor()
	}
	if cfg.Pins == nil {
		cfg.PinMap = PinMap{R: NoPin, G: NoPin, B: NoPin, W: NoPin}
	}
	return &Channel{
		cfg:   cfg,
		white: White(cfg.HasWhite, cfg.Pins != nil && !cfg.PinMap.hasWhite()),
		st:    State{Color: NewColor()},
	}
}

func (c *Channel) Name() string { return c.cfg.Name }
func (c *Channel) Index() int   { return c.cfg.Index }

// Strip returns the addressable backend, or nil.
func (c *Channel) Strip() PixelStrip { return c.cfg.Strip }

// Setup initialises every configured backend once at boot.
func (c *Channel) Setup() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if p := c.cfg.Pins; p != nil {
		for _, n := range c.pinList() {
			var err error
			if p.IsPWM(n) {
				err = p.ConfigurePWM(n)
			} else {
				err = p.ConfigureOutput(n)
			}
			if err != nil {
				errs = append(errs, c.ioErr("pins", "configure", err))
			}
		}
	}
	if s := c.cfg.Strip; s != nil {
		if err := s.Init(); err != nil {
			errs = append(errs, c.ioErr(backendName(s, "strip"), "init", err))
		}
	}
	for i, d := range c.cfg.RGB {
		if in, ok := d.(interface{ Init() error }); ok {
			if err := in.Init(); err != nil {
				errs = append(errs, c.ioErr(backendName(d, rgbName(i)), "init", err))
			}
		}
	}
	if d := c.cfg.Preset; d != nil {
		if err := d.Init(); err != nil {
			errs = append(errs, c.ioErr(backendName(d, "preset"), "init", err))
		}
	}
	if c.cfg.StartupDefault {
		errs = append(errs, c.setColorLocked(c.cfg.Default, false))
	}
	return errors.Join(errs...)
}

// SetColor applies col to every backend and records it as the remembered
// color when it is not off.
func (c *Channel) SetColor(col Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setColorLocked(col, false)
}

// SetColorSequential writes col to the next strip pixel only. On channels
// without a strip it behaves like SetColor.
func (c *Channel) SetColorSequential(col Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setColorLocked(col, true)
}

func (c *Channel) SetOff() error     { return c.SetColor(Off()) }
func (c *Channel) SetWhite() error   { return c.SetColor(c.white) }
func (c *Channel) SetGreen() error   { return c.SetColor(Green()) }
func (c *Channel) SetDefault() error { return c.SetColor(c.cfg.Default) }

// PresetColor resolves p for this channel.
func (c *Channel) PresetColor(p Preset) (Color, error) {
	if !p.core() && !c.cfg.Presets {
		return Color{}, errcode.Unsupported
	}
	switch p {
	case PresetOff:
		return Off(), nil
	case PresetWhite:
		return c.white, nil
	case PresetGreen:
		return Green(), nil
	case PresetRed:
		return Red(), nil
	case PresetOrange:
		return Orange(c.cfg.ReduceGreen), nil
	case PresetYellow:
		return Yellow(c.cfg.ReduceGreen), nil
	case PresetBlue:
		return Blue(), nil
	case PresetIndigo:
		return Indigo(), nil
	case PresetViolet:
		return Violet(), nil
	case PresetDefault:
		return c.cfg.Default, nil
	}
	return Color{}, errcode.UnknownPreset
}

func (c *Channel) SetPreset(p Preset) error {
	col, err := c.PresetColor(p)
	if err != nil {
		return err
	}
	return c.SetColor(col)
}

// GetColor returns the remembered color, or off while the channel is off.
func (c *Channel) GetColor() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.On {
		return Off()
	}
	return c.st.Color
}

// Toggle turns the channel off when on, otherwise restores the remembered color.
func (c *Channel) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.On {
		return c.setColorLocked(Off(), false)
	}
	return c.setColorLocked(c.st.Color, false)
}

// Update re-dispatches the remembered color through every backend.
func (c *Channel) Update() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setColorLocked(c.st.Color, false)
}

func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// ResetPixelCursor moves the sequential write position back to pixel 0.
func (c *Channel) ResetPixelCursor() {
	c.mu.Lock()
	c.st.NextPixel = 0
	c.mu.Unlock()
}

// StripBrightness is the strip's current intensity, or DefaultBrightness
// without a strip.
func (c *Channel) StripBrightness() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.Strip == nil {
		return DefaultBrightness
	}
	return c.cfg.Strip.Brightness()
}

// caller holds c.mu
func (c *Channel) setColorLocked(col Color, sequential bool) error {
	var errs []error

	if s := c.cfg.Strip; s != nil {
		if c.cfg.ReserveBackground && c.st.NextPixel == c.cfg.Background {
			// The cursor sits on the background pixel: step past it and drop
			// this call entirely.
			c.advancePixel(s)
			return nil
		}
		packed := s.Color(col.R, col.G, col.B, col.W)
		if col == c.white {
			packed = s.NativeWhite()
		}
		if sequential {
			// Sequential writes never touch the other backends or the memory.
			return c.writeNextPixel(s, col.Brightness, packed)
		}
		s.SetBrightness(col.Brightness)
		if err := c.fillStrip(s, packed); err != nil {
			errs = append(errs, c.ioErr(backendName(s, "strip"), "set_color", err))
		}
	}

	for i, d := range c.cfg.RGB {
		if err := d.SetLEDColor(col); err != nil {
			errs = append(errs, c.ioErr(backendName(d, rgbName(i)), "set_led_color", err))
		}
	}

	if p := c.cfg.Pins; p != nil {
		m := c.cfg.PinMap
		writePin(p, m.R, col.R)
		writePin(p, m.G, col.G)
		writePin(p, m.B, col.B)
		if m.hasWhite() {
			writePin(p, m.W, col.W)
		}
	}

	if d := c.cfg.Preset; d != nil {
		if err := d.SetColor(col.R, col.G, col.B); err != nil {
			errs = append(errs, c.ioErr(backendName(d, "preset"), "set_color", err))
		}
	}

	// Off never clobbers the remembered color.
	c.st.On = !col.IsOff()
	if c.st.On {
		c.st.Color = col
	}
	return errors.Join(errs...)
}

func (c *Channel) writeNextPixel(s PixelStrip, brightness uint8, packed uint32) error {
	at := c.st.NextPixel
	c.advancePixel(s)
	s.SetBrightness(brightness)
	s.SetPixelColor(at, packed)
	if err := s.Show(); err != nil {
		return c.ioErr(backendName(s, "strip"), "show", err)
	}
	return nil
}

func (c *Channel) advancePixel(s PixelStrip) {
	n := s.Len()
	if n <= 0 {
		c.st.NextPixel = 0
		return
	}
	c.st.NextPixel = (c.st.NextPixel + 1) % n
}

// fillStrip sets every pixel except the reserved background one.
func (c *Channel) fillStrip(s PixelStrip, packed uint32) error {
	bg := c.cfg.Background
	if !c.cfg.ReserveBackground || bg < 0 || bg >= s.Len() {
		return s.SetColor(packed)
	}
	for i := 0; i < s.Len(); i++ {
		if i != bg {
			s.SetPixelColor(i, packed)
		}
	}
	return s.Show()
}

func writePin(p PinWriter, pin int, v uint8) {
	if pin == NoPin {
		return
	}
	if p.IsPWM(pin) {
		p.WriteAnalog(pin, v)
		return
	}
	p.WriteDigital(pin, v != 0)
}

func (c *Channel) pinList() []int {
	m := c.cfg.PinMap
	pins := []int{m.R, m.G, m.B}
	if m.hasWhite() {
		pins = append(pins, m.W)
	}
	return pins
}

func (c *Channel) ioErr(backend, op string, err error) error {
	logx.Warn("lighting", "backend write failed",
		"channel", c.cfg.Name, "backend", backend, "op", op, "err", err.Error())
	return &BackendIOError{Channel: c.cfg.Name, Backend: backend, Op: op, Err: err}
}

func rgbName(i int) string { return "rgb" + strconv.Itoa(i) }
