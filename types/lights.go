package types

// ------------------------
// Lighting channels
// ------------------------

// LightColor mirrors lighting.Color on the bus. In control payloads a zero
// Brightness selects the default.
type LightColor struct {
	R          uint8 `json:"r" yaml:"r"`
	G          uint8 `json:"g" yaml:"g"`
	B          uint8 `json:"b" yaml:"b"`
	W          uint8 `json:"w" yaml:"w"`
	Brightness uint8 `json:"brightness" yaml:"brightness"`
}

// LightSet is the payload for verb "set".
type LightSet struct {
	Color      LightColor `json:"color" yaml:"color"`
	Sequential bool       `json:"sequential,omitempty" yaml:"sequential,omitempty"`
}

// LightPreset is the payload for verb "preset".
type LightPreset struct {
	Name string `json:"name" yaml:"name"`
}

// LightValue is retained on lights/<name>/value carrying the remembered
// color even while off. The reply to verb "get" carries the shown color
// instead, which is off while the channel is dark.
type LightValue struct {
	On    bool       `json:"on"`
	Color LightColor `json:"color"`
}

// Retained info: lights/<name>/info
type LightInfo struct {
	Index     int      `json:"index"`
	Backends  []string `json:"backends"`
	HasWhite  bool     `json:"has_white"`
	TimeoutMs uint32   `json:"timeout_ms,omitempty"`
	Presets   bool     `json:"presets"`
}

// ------------------------
// Heater telemetry consumed by the event mapper
// ------------------------

// HeatRamp is published on thermal/<source>/ramp. Tenths of °C.
type HeatRamp struct {
	StartDeciC   int16 `json:"start_deci_c" yaml:"start_deci_c"`
	CurrentDeciC int16 `json:"current_deci_c" yaml:"current_deci_c"`
	TargetDeciC  int16 `json:"target_deci_c" yaml:"target_deci_c"`
}

// ------------------------
// Power
// ------------------------

// SwitchValue is the retained state of a power rail (power/psu/value).
type SwitchValue struct {
	On bool `json:"on" yaml:"on"`
}
