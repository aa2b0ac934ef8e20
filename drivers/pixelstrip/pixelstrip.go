// Package pixelstrip keeps an addressable LED frame in memory and flushes it
// to a byte sink (a ws2812 device on hardware, a buffer in tests).
//
// Colors are packed as w<<24 | r<<16 | g<<8 | b. The wire byte order is set by
// Order; three-byte orders drop the white byte.
package pixelstrip

import (
	"errors"
	"io"
)

// Order is the per-pixel byte order on the wire.
type Order uint8

const (
	GRB Order = iota
	RGB
	GRBW
)

func (o Order) bytesPerPixel() int {
	if o == GRBW {
		return 4
	}
	return 3
}

// ParseOrder accepts "grb", "rgb" or "grbw".
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "grb", "":
		return GRB, true
	case "rgb":
		return RGB, true
	case "grbw":
		return GRBW, true
	}
	return 0, false
}

var ErrNoPixels = errors.New("pixelstrip: zero length")

type Config struct {
	Pixels     int
	Order      Order
	Brightness uint8
}

// Device is a frame buffer for one strip. Not safe for concurrent use.
type Device struct {
	out        io.Writer
	order      Order
	brightness uint8
	px         []uint32
	buf        []byte
}

func New(out io.Writer, cfg Config) *Device {
	return &Device{
		out:        out,
		order:      cfg.Order,
		brightness: cfg.Brightness,
		px:         make([]uint32, cfg.Pixels),
		buf:        make([]byte, cfg.Pixels*cfg.Order.bytesPerPixel()),
	}
}

func (d *Device) Name() string { return "pixelstrip" }

// Init blanks the strip.
func (d *Device) Init() error {
	if len(d.px) == 0 {
		return ErrNoPixels
	}
	clear(d.px)
	return d.Show()
}

func (d *Device) Len() int              { return len(d.px) }
func (d *Device) SetBrightness(b uint8) { d.brightness = b }
func (d *Device) Brightness() uint8     { return d.brightness }
func (d *Device) Pixel(i int) uint32    { return d.px[i] }
func (d *Device) Color(r, g, b, w uint8) uint32 {
	return uint32(w)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// NativeWhite drives only the dedicated white LED on RGBW strips.
func (d *Device) NativeWhite() uint32 {
	if d.order == GRBW {
		return 0xFF000000
	}
	return 0x00FFFFFF
}

// SetPixelColor ignores out of range indices.
func (d *Device) SetPixelColor(i int, c uint32) {
	if i >= 0 && i < len(d.px) {
		d.px[i] = c
	}
}

// SetColor fills the frame and flushes it.
func (d *Device) SetColor(c uint32) error {
	for i := range d.px {
		d.px[i] = c
	}
	return d.Show()
}

// Show encodes the frame at the current brightness and writes it out.
func (d *Device) Show() error {
	n := d.order.bytesPerPixel()
	for i, c := range d.px {
		w, r, g, b := byte(c>>24), byte(c>>16), byte(c>>8), byte(c)
		o := d.buf[i*n:]
		switch d.order {
		case RGB:
			o[0], o[1], o[2] = d.scale(r), d.scale(g), d.scale(b)
		case GRBW:
			o[0], o[1], o[2], o[3] = d.scale(g), d.scale(r), d.scale(b), d.scale(w)
		default:
			o[0], o[1], o[2] = d.scale(g), d.scale(r), d.scale(b)
		}
	}
	_, err := d.out.Write(d.buf)
	return err
}

func (d *Device) scale(v byte) byte {
	return byte((uint16(v) * (uint16(d.brightness) + 1)) >> 8)
}
