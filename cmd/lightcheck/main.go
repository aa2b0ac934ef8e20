// cmd/lightcheck/main.go
//
// Bring-up check for a lighting board. Starts the lights service from the
// embedded config, walks every channel through the color presets, then plays
// a simulated heater ramp so the event channels can be eyeballed.
package main

import (
	"context"
	"os"
	"slices"
	"time"

	"ledcore-go/bus"
	"ledcore-go/errcode"
	"ledcore-go/platform"
	"ledcore-go/services/config"
	"ledcore-go/services/lights"
	"ledcore-go/types"
	"ledcore-go/x/logx"
	"ledcore-go/x/ramp"
	"ledcore-go/x/strx"
)

// ---------- Configuration ----------

const (
	readyTimeout = 5 * time.Second
	replyTimeout = 500 * time.Millisecond
	infoSettle   = 100 * time.Millisecond

	presetDwell = 400 * time.Millisecond

	rampSteps    = 25
	rampDuration = 5 * time.Second
)

var presetSeq = []string{"red", "orange", "yellow", "green", "blue", "indigo", "violet", "white", "default", "off"}

// Simulated heaters, deci-°C.
var heaters = []struct {
	source        string
	start, target int16
}{
	{lights.SourceElement, 200, 2000},
	{lights.SourceSurface, 200, 600},
}

// ---------- Helpers ----------

func waitReady(c *bus.Connection, d time.Duration) bool {
	sub := c.Subscribe(bus.T(lights.TokLights, lights.TokState))
	defer c.Unsubscribe(sub)

	dead := time.After(d)
	for {
		select {
		case m := <-sub.Channel():
			if st, ok := m.Payload.(types.ServiceState); ok && st.Level == "ready" {
				return true
			}
		case <-dead:
			return false
		}
	}
}

// channelNames collects the retained info topics.
func channelNames(c *bus.Connection) []string {
	sub := c.Subscribe(bus.T(lights.TokLights, "+", lights.TokInfo))
	defer c.Unsubscribe(sub)

	var names []string
	for {
		select {
		case m := <-sub.Channel():
			if name, ok := m.Topic[1].(string); ok {
				names = append(names, name)
			}
		case <-time.After(infoSettle):
			slices.Sort(names)
			return names
		}
	}
}

func request(ctx context.Context, c *bus.Connection, name, verb string, payload any) errcode.Code {
	rctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()
	r, err := c.RequestWait(rctx, c.NewMessage(lights.ControlTopic(name, verb), payload, false))
	if err != nil {
		return errcode.Timeout
	}
	if e, ok := r.Payload.(types.ErrorReply); ok {
		return errcode.Code(e.Error)
	}
	return errcode.OK
}

// checkPresets returns false if any preset failed for a reason other than
// the channel not supporting it.
func checkPresets(ctx context.Context, c *bus.Connection, name string) bool {
	pass := true
	for _, p := range presetSeq {
		switch code := request(ctx, c, name, lights.CtrlPreset, types.LightPreset{Name: p}); code {
		case errcode.OK:
			logx.Info("lightcheck", "preset", "channel", name, "preset", p)
		case errcode.Unsupported:
			logx.Debug("lightcheck", "preset skipped", "channel", name, "preset", p)
		default:
			logx.Warn("lightcheck", "preset failed", "channel", name, "preset", p, "code", string(code))
			pass = false
		}
		time.Sleep(presetDwell)
	}
	return pass
}

func playRamp(ctx context.Context, c *bus.Connection, source string, start, target int16) {
	logx.Info("lightcheck", "ramp", "source", source, "from", start, "to", target)
	ramp.Linear(ctx, int32(start), int32(target), rampSteps, rampDuration, func(v int32) {
		c.Publish(c.NewMessage(lights.RampTopic(source), types.HeatRamp{
			StartDeciC:   start,
			CurrentDeciC: int16(v),
			TargetDeciC:  target,
		}, false))
	})
}

// ---------- Main ----------

func main() {
	time.Sleep(platform.BootDelay)
	logx.Setup(logx.LevelDebug, false, nil)

	device := strx.Coalesce(os.Getenv("LEDCORE_DEVICE"), platform.Device)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	b := bus.NewBus(8)
	ui := b.NewConnection("ui")

	go lights.New(b.NewConnection("lights"), platform.Default()).Run(ctx)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	if !waitReady(ui, readyTimeout) {
		logx.Warn("lightcheck", "lights not ready", "device", device)
		return
	}

	names := channelNames(ui)
	pass := len(names) > 0
	for _, n := range names {
		pass = checkPresets(ctx, ui, n) && pass
	}

	for _, h := range heaters {
		playRamp(ctx, ui, h.source, h.start, h.target)
	}

	for _, n := range names {
		request(ctx, ui, n, lights.CtrlOff, nil)
	}
	logx.Info("lightcheck", "done", "channels", len(names), "pass", pass)
}
