package lighting

// NoPin marks an absent discrete pin (e.g. no white pin).
const NoPin = -1

// PixelStrip is an addressable strip. Colors are packed by the strip itself.
type PixelStrip interface {
	Init() error
	SetBrightness(b uint8)
	Brightness() uint8
	Color(r, g, b, w uint8) uint32
	// NativeWhite is the packed value selecting the hardware white mode.
	NativeWhite() uint32
	SetPixelColor(i int, c uint32)
	// SetColor fills every pixel and flushes.
	SetColor(c uint32) error
	Show() error
	Len() int
}

// RGBDriver is an I2C chip taking a full color in one call.
type RGBDriver interface {
	SetLEDColor(c Color) error
}

// RGBDriverFunc adapts a function to RGBDriver.
type RGBDriverFunc func(c Color) error

func (f RGBDriverFunc) SetLEDColor(c Color) error { return f(c) }

// PresetDriver is an I2C chip taking R/G/B only.
type PresetDriver interface {
	Init() error
	SetColor(r, g, b uint8) error
}

// PinWriter is the raw pin layer for discrete RGB(W) outputs.
type PinWriter interface {
	IsPWM(pin int) bool
	ConfigurePWM(pin int) error
	ConfigureOutput(pin int) error
	WriteAnalog(pin int, v uint8)
	WriteDigital(pin int, high bool)
}

// PinMap assigns pins to color channels. W may be NoPin.
type PinMap struct {
	R, G, B, W int
}

func (m PinMap) hasWhite() bool { return m.W != NoPin }

// Named lets a backend report a name in errors and logs.
type Named interface{ Name() string }

func backendName(v any, fallback string) string {
	if n, ok := v.(Named); ok {
		return n.Name()
	}
	return fallback
}
