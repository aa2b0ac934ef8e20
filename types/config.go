package types

// Lighting configuration supplied on topic "config/lighting".

type LightingConfig struct {
	PollMs   uint32          `json:"poll_ms" yaml:"poll_ms"`
	Channels []ChannelConfig `json:"channels" yaml:"channels"`
}

type ChannelConfig struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`

	Pins    *PinsConfig  `json:"pins,omitempty" yaml:"pins,omitempty"`
	Strip   *StripConfig `json:"strip,omitempty" yaml:"strip,omitempty"`
	PCA9632 *I2CRef      `json:"pca9632,omitempty" yaml:"pca9632,omitempty"`
	BlinkM  *I2CRef      `json:"blinkm,omitempty" yaml:"blinkm,omitempty"`
	PCA9533 *I2CRef      `json:"pca9533,omitempty" yaml:"pca9533,omitempty"`

	HasWhite       bool        `json:"has_white" yaml:"has_white"`
	TimeoutMs      uint32      `json:"timeout_ms" yaml:"timeout_ms"` // 0 disables
	Default        *LightColor `json:"default,omitempty" yaml:"default,omitempty"`
	StartupDefault bool        `json:"startup_default" yaml:"startup_default"`
	Presets        bool        `json:"presets" yaml:"presets"`
	ReduceGreen    bool        `json:"reduce_green" yaml:"reduce_green"`
	// Events routes heater ramps to this channel.
	Events bool `json:"events" yaml:"events"`
}

// PinsConfig names discrete GPIOs. W < 0 or absent means no white pin.
type PinsConfig struct {
	R int  `json:"r" yaml:"r"`
	G int  `json:"g" yaml:"g"`
	B int  `json:"b" yaml:"b"`
	W *int `json:"w,omitempty" yaml:"w,omitempty"`
}

type StripConfig struct {
	Pin        int    `json:"pin" yaml:"pin"`
	Pixels     int    `json:"pixels" yaml:"pixels"`
	Order      string `json:"order,omitempty" yaml:"order,omitempty"` // grb|rgb|grbw
	Brightness *uint8 `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	Background *int   `json:"background,omitempty" yaml:"background,omitempty"`
	Sequential bool   `json:"sequential" yaml:"sequential"`
}

type I2CRef struct {
	Bus  string `json:"bus" yaml:"bus"`   // "i2c0", "i2c1"
	Addr uint16 `json:"addr" yaml:"addr"` // 0 selects the chip default
}

// Logging configuration supplied on topic "config/log".
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
	JSON  bool   `json:"json" yaml:"json"`
}

// Heartbeat configuration supplied on topic "config/heartbeat".
type HeartbeatConfig struct {
	IntervalMs uint32 `json:"interval_ms" yaml:"interval_ms"`
}

// Heartbeat is published on topic "heartbeat" each interval.
type Heartbeat struct {
	UptimeMs   int64 `json:"uptime_ms"`
	Channels   int   `json:"channels"`
	ChannelsOn int   `json:"channels_on"`
}
