// Package heartbeat logs and publishes a periodic liveness summary of the
// lighting channels.
package heartbeat

import (
	"context"
	"time"

	"ledcore-go/bus"
	"ledcore-go/services/config"
	"ledcore-go/types"
	"ledcore-go/x/logx"
)

const defaultInterval = time.Second

var (
	topicConfigHeartbeat = bus.Topic{"config", "heartbeat"}
	topicLightValues     = bus.Topic{"lights", "+", "value"}
	topicHeartbeat       = bus.Topic{"heartbeat"}
)

type Service struct {
	start time.Time
	lit   map[string]bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	valSub := conn.Subscribe(topicLightValues)
	defer conn.Unsubscribe(cfgSub)
	defer conn.Unsubscribe(valSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick, config and channel values
	for {
		select {
		case <-ctx.Done():
			logx.Info("heartbeat", "stopping")
			return
		case <-tick.C:
			s.beat(conn)
		case msg := <-cfgSub.Channel():
			c, err := config.Decode[types.HeartbeatConfig](msg.Payload)
			if err != nil || c.IntervalMs == 0 {
				logx.Warn("heartbeat", "ignoring config")
				continue
			}
			tick.Reset(time.Duration(c.IntervalMs) * time.Millisecond)
			logx.Info("heartbeat", "interval set", "ms", c.IntervalMs)
		case msg := <-valSub.Channel():
			if v, ok := msg.Payload.(types.LightValue); ok && len(msg.Topic) == 3 {
				name, _ := msg.Topic[1].(string)
				s.lit[name] = v.On
			}
		}
	}
}

func (s *Service) beat(conn *bus.Connection) {
	hb := types.Heartbeat{
		UptimeMs: time.Since(s.start).Milliseconds(),
		Channels: len(s.lit),
	}
	for _, on := range s.lit {
		if on {
			hb.ChannelsOn++
		}
	}
	logx.Debug("heartbeat", "alive", "uptime_ms", hb.UptimeMs, "channels_on", hb.ChannelsOn)
	conn.Publish(conn.NewMessage(topicHeartbeat, hb, false))
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	s.start = time.Now()
	s.lit = make(map[string]bool)
	go s.serviceLoop(ctx, conn)
	return nil
}
