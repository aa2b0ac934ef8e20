//go:build !rp2040 && !rp2350

package platform

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*HostI2C)(nil)
var _ Board = (*HostBoard)(nil)

func TestHostBoard_Buses(t *testing.T) {
	b := NewHostBoard()
	bus, ok := b.I2C("i2c1")
	if !ok {
		t.Fatal("i2c1 missing")
	}
	if _, ok := b.I2C("i2c9"); ok {
		t.Fatal("unknown bus resolved")
	}
	_ = bus.Tx(0x60, []byte{1, 2}, nil)
	txs := b.HostBus("i2c1").Txs()
	if len(txs) != 1 || txs[0].Addr != 0x60 || !bytes.Equal(txs[0].W, []byte{1, 2}) {
		t.Fatalf("txs %+v", txs)
	}
}

func TestHostBoard_PinsAndStrips(t *testing.T) {
	b := NewHostBoard(4)
	p := b.Pins()
	if !p.IsPWM(4) || p.IsPWM(5) {
		t.Fatal("pwm capability")
	}
	p.WriteAnalog(4, 90)
	p.WriteDigital(5, true)
	if b.FakePins().Level(4) != 90 || b.FakePins().Level(5) != 255 {
		t.Fatal("levels")
	}

	w, err := b.Strip(16)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write([]byte{1, 2, 3})
	if !bytes.Equal(b.HostStrip(16).Frame(), []byte{1, 2, 3}) {
		t.Fatal("frame")
	}
	if _, err := b.Strip(-1); err == nil {
		t.Fatal("negative pin accepted")
	}
}

func TestStreamPort(t *testing.T) {
	var out bytes.Buffer
	sp := StreamPort{R: strings.NewReader("hi"), W: &out}
	buf := make([]byte, 8)
	n, err := sp.RecvSomeContext(context.Background(), buf)
	if err != nil || string(buf[:n]) != "hi" {
		t.Fatalf("read %q %v", buf[:n], err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sp.RecvSomeContext(ctx, buf); err == nil {
		t.Fatal("cancelled ctx ignored")
	}
}
