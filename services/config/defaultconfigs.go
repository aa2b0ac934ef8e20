package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw YAML for that device. Each top-level key becomes config/<key>.
// -----------------------------------------------------------------------------

// Pico lighting board: a 16-pixel GRBW ring on GP16 driven by heater
// telemetry, plus a PCA9632 status LED on i2c0 that times out.
const cfgPico = `
log:
  level: info
heartbeat:
  interval_ms: 10000
lighting:
  poll_ms: 500
  channels:
    - name: primary
      index: 0
      strip:
        pin: 16
        pixels: 16
        order: grbw
        brightness: 127
        background: 0
        sequential: true
      has_white: true
      presets: true
      startup_default: true
      events: true
    - name: secondary
      index: 1
      pca9632:
        bus: i2c0
      timeout_ms: 120000
      default: {r: 255, g: 255, b: 255, w: 255, brightness: 127}
      presets: true
      reduce_green: true
`

// Host development board: discrete RGB pins and a BlinkM.
const cfgHost = `
log:
  level: debug
heartbeat:
  interval_ms: 5000
lighting:
  channels:
    - name: primary
      index: 0
      pins: {r: 2, g: 3, b: 4}
      blinkm:
        bus: i2c1
      presets: true
      startup_default: true
    - name: secondary
      index: 1
      pca9533:
        bus: i2c0
      timeout_ms: 5000
`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgHost),
}
