package lighting

import (
	"sync"

	"ledcore-go/x/mathx"
)

// Intensity maps current within the start..target ramp onto 0..255.
// current is clamped to the ramp; start == target yields 255.
func Intensity(start, current, target float32) uint8 {
	return mathx.ScaleU8(mathx.Unlerp(current, start, target))
}

// EventMapper turns thermal ramp progress into colors on one channel.
// Both ramps share one last-intensity gate so an unchanged value is never
// redispatched.
type EventMapper struct {
	ch *Channel

	mu   sync.Mutex
	last uint8
}

func NewEventMapper(ch *Channel) *EventMapper { return &EventMapper{ch: ch} }

// OnHeatingElementRamp fades from violet towards red as the element heats.
// dispatched is false when the intensity did not change.
func (m *EventMapper) OnHeatingElementRamp(start, current, target float32) (dispatched bool, err error) {
	v := Intensity(start, current, target)
	return m.apply(v, RGB(255, 0, 255-v))
}

// OnHeatedSurfaceRamp fades from blue towards violet as the surface heats.
func (m *EventMapper) OnHeatedSurfaceRamp(start, current, target float32) (dispatched bool, err error) {
	v := Intensity(start, current, target)
	return m.apply(v, RGB(v, 0, 255))
}

// Last is the most recently dispatched intensity.
func (m *EventMapper) Last() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

func (m *EventMapper) apply(v uint8, col Color) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v == m.last {
		return false, nil
	}
	m.last = v

	col.Brightness = m.ch.StripBrightness()
	if m.ch.cfg.Sequential && m.ch.cfg.Strip != nil {
		return true, m.ch.SetColorSequential(col)
	}
	return true, m.ch.SetColor(col)
}
