package main

import (
	"context"
	"os"
	"time"

	"ledcore-go/bus"
	"ledcore-go/platform"
	"ledcore-go/services/config"
	"ledcore-go/services/console"
	"ledcore-go/services/heartbeat"
	"ledcore-go/services/lights"
	"ledcore-go/types"
	"ledcore-go/x/logx"
	"ledcore-go/x/strx"
)

const logConfigWait = 500 * time.Millisecond

func main() {
	time.Sleep(platform.BootDelay)

	device := strx.Coalesce(os.Getenv("LEDCORE_DEVICE"), platform.Device)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	b := bus.NewBus(8)
	mainConn := b.NewConnection("main")

	// Logging is configured before anything else starts talking.
	logSub := mainConn.Subscribe(bus.T("config", "log"))
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	setupLogging(logSub)
	mainConn.Unsubscribe(logSub)
	logx.Info("main", "boot", "device", device)

	board := platform.Default()

	go lights.New(b.NewConnection("lights"), board).Run(ctx)

	hb := &heartbeat.Service{}
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		logx.Error("main", "heartbeat start", err)
	}

	// The console owns the main goroutine; without a port we just idle.
	if port := board.Console(); port != nil {
		console.New(b.NewConnection("console")).Run(ctx, port)
		logx.Info("main", "console closed")
	}
	<-ctx.Done()
}

func setupLogging(sub *bus.Subscription) {
	var lc types.LogConfig
	select {
	case m := <-sub.Channel():
		c, err := config.Decode[types.LogConfig](m.Payload)
		if err != nil {
			logx.Error("main", "bad log config", err)
			break
		}
		lc = c
	case <-time.After(logConfigWait):
	}
	logx.Setup(logx.ParseLevel(lc.Level), lc.JSON, os.Stderr)
}
