package lights

import (
	"time"

	"ledcore-go/drivers/blinkm"
	"ledcore-go/drivers/pca9533"
	"ledcore-go/drivers/pca9632"
	"ledcore-go/drivers/pixelstrip"
	"ledcore-go/errcode"
	"ledcore-go/lighting"
	"ledcore-go/platform"
	"ledcore-go/types"

	"tinygo.org/x/drivers"
)

// built is one channel plus what the service reports about it.
type built struct {
	ch     *lighting.Channel
	info   types.LightInfo
	events bool
}

// buildChannel resolves a channel descriptor against the board.
func buildChannel(b platform.Board, cc types.ChannelConfig) (built, error) {
	if cc.Name == "" {
		return built{}, &errcode.E{C: errcode.InvalidParams, Op: "build", Msg: "channel name required"}
	}

	cfg := lighting.Config{
		Name:           cc.Name,
		Index:          cc.Index,
		HasWhite:       cc.HasWhite,
		Timeout:        time.Duration(cc.TimeoutMs) * time.Millisecond,
		Presets:        cc.Presets,
		StartupDefault: cc.StartupDefault,
		ReduceGreen:    cc.ReduceGreen,
	}
	if cc.Default != nil {
		cfg.Default = toColor(*cc.Default)
	}

	var names []string

	if p := cc.Pins; p != nil {
		w := lighting.NoPin
		if p.W != nil && *p.W >= 0 {
			w = *p.W
		}
		cfg.Pins = b.Pins()
		cfg.PinMap = lighting.PinMap{R: p.R, G: p.G, B: p.B, W: w}
		names = append(names, "pins")
	}

	if s := cc.Strip; s != nil {
		order, ok := pixelstrip.ParseOrder(s.Order)
		if !ok {
			return built{}, &errcode.E{C: errcode.InvalidParams, Op: "build", Msg: "strip order " + s.Order}
		}
		out, err := b.Strip(s.Pin)
		if err != nil {
			return built{}, &errcode.E{C: errcode.UnknownPin, Op: "build", Err: err}
		}
		bright := lighting.DefaultBrightness
		if s.Brightness != nil {
			bright = *s.Brightness
		}
		dev := pixelstrip.New(out, pixelstrip.Config{Pixels: s.Pixels, Order: order, Brightness: bright})
		cfg.Strip = dev
		cfg.Sequential = s.Sequential
		if s.Background != nil && *s.Background >= 0 {
			cfg.Background = *s.Background
			cfg.ReserveBackground = true
		}
		names = append(names, dev.Name())
	}

	if r := cc.PCA9632; r != nil {
		bus, err := i2cBus(b, r.Bus)
		if err != nil {
			return built{}, err
		}
		d := pca9632.New(bus, pca9632.Config{Address: r.Addr, White: cc.HasWhite})
		cfg.RGB = append(cfg.RGB, d)
		names = append(names, d.Name())
	}

	if r := cc.BlinkM; r != nil {
		bus, err := i2cBus(b, r.Bus)
		if err != nil {
			return built{}, err
		}
		d := blinkm.New(bus, r.Addr)
		cfg.RGB = append(cfg.RGB, d)
		names = append(names, d.Name())
	}

	if r := cc.PCA9533; r != nil {
		bus, err := i2cBus(b, r.Bus)
		if err != nil {
			return built{}, err
		}
		d := pca9533.New(bus, r.Addr)
		cfg.Preset = d
		names = append(names, d.Name())
	}

	return built{
		ch: lighting.New(cfg),
		info: types.LightInfo{
			Index:     cc.Index,
			Backends:  names,
			HasWhite:  cc.HasWhite,
			TimeoutMs: cc.TimeoutMs,
			Presets:   cc.Presets,
		},
		events: cc.Events,
	}, nil
}

func i2cBus(b platform.Board, id string) (drivers.I2C, error) {
	bus, ok := b.I2C(id)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "build", Msg: id}
	}
	return bus, nil
}

// toColor maps a bus color; brightness 0 selects the default.
func toColor(c types.LightColor) lighting.Color {
	b := c.Brightness
	if b == 0 {
		b = lighting.DefaultBrightness
	}
	return lighting.Color{R: c.R, G: c.G, B: c.B, W: c.W, Brightness: b}
}

func fromColor(c lighting.Color) types.LightColor {
	return types.LightColor{R: c.R, G: c.G, B: c.B, W: c.W, Brightness: c.Brightness}
}
