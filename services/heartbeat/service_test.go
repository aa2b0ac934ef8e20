package heartbeat

import (
	"context"
	"testing"
	"time"

	"ledcore-go/bus"
	"ledcore-go/types"
)

func TestHeartbeat_CountsLitChannels(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	hbSub := conn.Subscribe(topicHeartbeat)
	defer conn.Unsubscribe(hbSub)

	conn.Publish(conn.NewMessage(bus.T("lights", "a", "value"), types.LightValue{On: true}, true))
	conn.Publish(conn.NewMessage(bus.T("lights", "b", "value"), types.LightValue{On: false}, true))
	conn.Publish(conn.NewMessage(topicConfigHeartbeat, map[string]any{"interval_ms": 10}, true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var s Service
	if err := s.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case m := <-hbSub.Channel():
			hb := m.Payload.(types.Heartbeat)
			if hb.Channels == 2 && hb.ChannelsOn == 1 {
				return
			}
		case <-deadline:
			t.Fatal("no heartbeat with both channels")
		}
	}
}
