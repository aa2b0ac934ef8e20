package lighting

// Preset names a canonical color.
type Preset uint8

const (
	PresetOff Preset = iota
	PresetWhite
	PresetGreen
	PresetRed
	PresetOrange
	PresetYellow
	PresetBlue
	PresetIndigo
	PresetViolet
	PresetDefault
)

var presetNames = [...]string{
	PresetOff:     "off",
	PresetWhite:   "white",
	PresetGreen:   "green",
	PresetRed:     "red",
	PresetOrange:  "orange",
	PresetYellow:  "yellow",
	PresetBlue:    "blue",
	PresetIndigo:  "indigo",
	PresetViolet:  "violet",
	PresetDefault: "default",
}

func (p Preset) String() string {
	if int(p) < len(presetNames) {
		return presetNames[p]
	}
	return "unknown"
}

// ParsePreset resolves a preset by name.
func ParsePreset(s string) (Preset, bool) {
	for i, n := range presetNames {
		if n == s {
			return Preset(i), true
		}
	}
	return 0, false
}

// Core presets are always available; the rest need Config.Presets.
func (p Preset) core() bool {
	return p == PresetOff || p == PresetWhite || p == PresetGreen
}

func Off() Color    { return RGB(0, 0, 0) }
func Red() Color    { return RGB(255, 0, 0) }
func Green() Color  { return RGB(0, 255, 0) }
func Blue() Color   { return RGB(0, 0, 255) }
func Indigo() Color { return RGB(0, 255, 255) }
func Violet() Color { return RGB(255, 0, 255) }

// Orange and Yellow pull green down on hardware whose green LED dominates.
func Orange(reduceGreen bool) Color {
	if reduceGreen {
		return RGB(255, 25, 0)
	}
	return RGB(255, 80, 0)
}

func Yellow(reduceGreen bool) Color {
	if reduceGreen {
		return RGB(255, 75, 0)
	}
	return RGB(255, 255, 0)
}

// White is the white-LED-only color when the channel has a white channel and
// is not driven by three-pin RGB, otherwise RGB full on.
func White(hasWhite, rgbOnlyPins bool) Color {
	if hasWhite && !rgbOnlyPins {
		return RGBW(0, 0, 0, 255)
	}
	return RGB(255, 255, 255)
}
