// Package lighting presents one color-state API for a lighting channel and
// fans each write out to whichever backends the channel was configured with:
// an addressable pixel strip, I2C RGB drivers, discrete PWM/digital pins and
// an I2C preset driver.
package lighting

// DefaultBrightness is the strip intensity carried by colors that do not
// specify one.
const DefaultBrightness uint8 = 127

// Color is a set of channel intensities. W is ignored by backends without a
// white channel and Brightness only reaches an addressable strip.
//
// The zero value is off. Use NewColor for the full-white default.
type Color struct {
	R, G, B    uint8
	W          uint8
	Brightness uint8
}

// NewColor returns full white on every channel at the default brightness.
func NewColor() Color {
	return Color{R: 255, G: 255, B: 255, W: 255, Brightness: DefaultBrightness}
}

// RGB builds a color with no white component.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Brightness: DefaultBrightness}
}

// RGBW builds a color with an explicit white component.
func RGBW(r, g, b, w uint8) Color {
	return Color{R: r, G: g, B: b, W: w, Brightness: DefaultBrightness}
}

// FromArray builds a color from a raw {r,g,b,w} tuple.
func FromArray(v [4]uint8) Color { return RGBW(v[0], v[1], v[2], v[3]) }

// Assign replaces the color channels in place. Brightness is kept.
func (c *Color) Assign(v [4]uint8) {
	c.R, c.G, c.B, c.W = v[0], v[1], v[2], v[3]
}

// WithBrightness returns c with the strip intensity replaced.
func (c Color) WithBrightness(b uint8) Color {
	c.Brightness = b
	return c
}

// IsOff reports whether the color channels sum to less than 3.
// Brightness does not count.
func (c Color) IsOff() bool {
	return int(c.R)+int(c.G)+int(c.B)+int(c.W) < 3
}

// Equal compares every field, brightness included.
func (c Color) Equal(o Color) bool { return c == o }

// Array returns the raw {r,g,b,w} tuple.
func (c Color) Array() [4]uint8 { return [4]uint8{c.R, c.G, c.B, c.W} }
