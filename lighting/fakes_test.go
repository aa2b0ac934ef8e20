package lighting

import "errors"

var errNack = errors.New("i2c nack")

type fakeStrip struct {
	pixels     []uint32
	brightness uint8
	shows      int
	fills      int
	inits      int
	showErr    error
}

func newFakeStrip(n int) *fakeStrip {
	return &fakeStrip{pixels: make([]uint32, n), brightness: DefaultBrightness}
}

const fakeNativeWhite = 0xEEEEEEEE

func (s *fakeStrip) Init() error                   { s.inits++; return nil }
func (s *fakeStrip) SetBrightness(b uint8)         { s.brightness = b }
func (s *fakeStrip) Brightness() uint8             { return s.brightness }
func (s *fakeStrip) NativeWhite() uint32           { return fakeNativeWhite }
func (s *fakeStrip) SetPixelColor(i int, c uint32) { s.pixels[i] = c }
func (s *fakeStrip) Len() int                      { return len(s.pixels) }
func (s *fakeStrip) Color(r, g, b, w uint8) uint32 {
	return uint32(w)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
func (s *fakeStrip) SetColor(c uint32) error {
	s.fills++
	for i := range s.pixels {
		s.pixels[i] = c
	}
	return s.Show()
}
func (s *fakeStrip) Show() error { s.shows++; return s.showErr }

type fakeRGB struct {
	got  []Color
	err  error
	init int
}

func (d *fakeRGB) Init() error { d.init++; return nil }
func (d *fakeRGB) SetLEDColor(c Color) error {
	d.got = append(d.got, c)
	return d.err
}
func (d *fakeRGB) Name() string { return "fake-rgb" }

type fakePreset struct {
	got  [][3]uint8
	init int
}

func (d *fakePreset) Init() error { d.init++; return nil }
func (d *fakePreset) SetColor(r, g, b uint8) error {
	d.got = append(d.got, [3]uint8{r, g, b})
	return nil
}

type fakePins struct {
	pwm        map[int]bool
	configured map[int]string
	analog     map[int]uint8
	digital    map[int]bool
}

func newFakePins(pwm ...int) *fakePins {
	p := &fakePins{
		pwm:        map[int]bool{},
		configured: map[int]string{},
		analog:     map[int]uint8{},
		digital:    map[int]bool{},
	}
	for _, n := range pwm {
		p.pwm[n] = true
	}
	return p
}

func (p *fakePins) IsPWM(pin int) bool              { return p.pwm[pin] }
func (p *fakePins) ConfigurePWM(pin int) error      { p.configured[pin] = "pwm"; return nil }
func (p *fakePins) ConfigureOutput(pin int) error   { p.configured[pin] = "out"; return nil }
func (p *fakePins) WriteAnalog(pin int, v uint8)    { p.analog[pin] = v }
func (p *fakePins) WriteDigital(pin int, high bool) { p.digital[pin] = high }
