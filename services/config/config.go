package config

import (
	"context"
	"errors"

	"ledcore-go/bus"
	"ledcore-go/x/logx"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
)

type ctxKey string

// CtxDeviceKey is the context key carrying the device ID.
const CtxDeviceKey ctxKey = "device"

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Load parses the embedded config for device into top-level sections.
func Load(device string) (map[string]any, error) {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return nil, errors.New("no embedded config for device: " + device)
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("embedded config is not a mapping")
	}
	return m, nil
}

// publishConfig publishes each top-level section retained on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}
	m, err := Load(device)
	if err != nil {
		return err
	}
	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	logx.Info(serviceName, "published", "device", device, "sections", len(m))
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			logx.Error(serviceName, "publish failed", err)
		}
	}()
}

// Decode converts a config payload into T. Payloads already of type T pass
// through; generic maps are round-tripped through YAML so struct tags apply.
func Decode[T any](src any) (T, error) {
	var out T
	switch v := src.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, errors.New("config: nil payload")
		}
		return *v, nil
	case []byte:
		err := yaml.Unmarshal(v, &out)
		return out, err
	case string:
		err := yaml.Unmarshal([]byte(v), &out)
		return out, err
	case nil:
		return out, errors.New("config: nil payload")
	}
	b, err := yaml.Marshal(src)
	if err != nil {
		return out, err
	}
	err = yaml.Unmarshal(b, &out)
	return out, err
}
