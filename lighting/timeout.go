package lighting

import (
	"ledcore-go/errcode"
	"ledcore-go/x/timex"
)

// TimeoutEnabled reports whether the backlight auto-off is configured.
func (c *Channel) TimeoutEnabled() bool { return c.cfg.Timeout > 0 }

// ResetTimeout re-arms the auto-off deadline from nowMs and lights the
// default color if the channel is currently off.
func (c *Channel) ResetTimeout(nowMs int64) error {
	if !c.TimeoutEnabled() {
		return errcode.Unsupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetTimeoutLocked(nowMs)
}

// UpdateTimeout is polled periodically. While powerOn holds the deadline
// keeps being pushed out. Once it has lapsed every poll forces the channel
// off until ResetTimeout moves the deadline again.
func (c *Channel) UpdateTimeout(powerOn bool, nowMs int64) error {
	if !c.TimeoutEnabled() {
		return errcode.Unsupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if powerOn {
		return c.resetTimeoutLocked(nowMs)
	}
	if c.st.Armed && c.st.On && timex.Elapsed(nowMs, c.st.Deadline) {
		return c.setColorLocked(Off(), false)
	}
	return nil
}

func (c *Channel) resetTimeoutLocked(nowMs int64) error {
	c.st.Deadline = nowMs + c.cfg.Timeout.Milliseconds()
	c.st.Armed = true
	if !c.st.On {
		return c.setColorLocked(c.cfg.Default, false)
	}
	return nil
}
