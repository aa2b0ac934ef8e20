package bus

import (
	"context"
	"errors"
	"testing"
	"time"
)

func recv(t *testing.T, s *Subscription) *Message {
	t.Helper()
	select {
	case m, ok := <-s.Channel():
		if !ok {
			t.Fatalf("subscription %v closed", s.Topic())
		}
		return m
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("nothing on %v", s.Topic())
	}
	return nil
}

func quiet(t *testing.T, s *Subscription) {
	t.Helper()
	select {
	case m := <-s.Channel():
		t.Fatalf("unexpected %v on %v", m.Topic, s.Topic())
	default:
	}
}

func TestMatch_LightTopics(t *testing.T) {
	cases := []struct {
		pattern Topic
		topic   Topic
		want    bool
	}{
		{T("lights", "case", "value"), T("lights", "case", "value"), true},
		{T("lights", "case", "value"), T("lights", "status", "value"), false},
		{T("lights", "+", "value"), T("lights", "status", "value"), true},
		{T("lights", "+", "value"), T("lights", "case", "info"), false},
		{T("lights", "+", "control", "+"), T("lights", "case", "control", "set"), true},
		{T("lights", "+", "control", "+"), T("lights", "case", "control"), false},
		{T("lights", "#"), T("lights"), true},
		{T("lights", "#"), T("lights", "case", "control", "toggle"), true},
		{T("#"), T("thermal", "element", "ramp"), true},
		{T("thermal", "+", "ramp"), T("thermal", "element", "ramp"), true},
		{T("thermal", "+", "ramp"), T("thermal", "ramp"), false},
		{T("lights", 0), T("lights", 0), true},
		{T("lights", 0), T("lights", 1), false},
	}
	for _, tc := range cases {
		b := NewBus(2)
		c := b.NewConnection("t")
		s := c.Subscribe(tc.pattern)
		c.Publish(c.NewMessage(tc.topic, 1, false))
		select {
		case <-s.Channel():
			if !tc.want {
				t.Errorf("%v matched %v", tc.pattern, tc.topic)
			}
		default:
			if tc.want {
				t.Errorf("%v did not match %v", tc.pattern, tc.topic)
			}
		}
	}
}

func TestRetained_ValueFanOut(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("lights")
	svc.Publish(svc.NewMessage(T("lights", "case", "value"), "red", true))
	svc.Publish(svc.NewMessage(T("lights", "status", "value"), "green", true))
	svc.Publish(svc.NewMessage(T("lights", "case", "control", "on"), "live", false))

	ui := b.NewConnection("ui")
	all := ui.Subscribe(T("lights", "+", "value"))
	got := map[string]any{}
	for i := 0; i < 2; i++ {
		m := recv(t, all)
		if !m.Retained {
			t.Fatalf("%v not flagged retained", m.Topic)
		}
		got[m.Topic[1].(string)] = m.Payload
	}
	if got["case"] != "red" || got["status"] != "green" {
		t.Fatalf("retained set %v", got)
	}
	quiet(t, all)

	// Newer retained value replaces the old one.
	svc.Publish(svc.NewMessage(T("lights", "case", "value"), "blue", true))
	if m := recv(t, all); m.Payload != "blue" {
		t.Fatalf("live update %v", m.Payload)
	}
	one := ui.Subscribe(T("lights", "case", "value"))
	if m := recv(t, one); m.Payload != "blue" {
		t.Fatalf("late subscriber got %v", m.Payload)
	}
}

func TestRetained_NilPayloadClears(t *testing.T) {
	b := NewBus(4)
	c := b.NewConnection("t")
	c.Publish(c.NewMessage(T("power", "psu", "value"), true, true))
	c.Publish(c.NewMessage(T("power", "psu", "value"), nil, true))

	if len(b.root.children) != 0 {
		t.Fatalf("trie not pruned: %v", b.root.children)
	}
	s := c.Subscribe(T("power", "#"))
	quiet(t, s)
}

func TestDeliver_DropsOldest(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("t")
	s := c.Subscribe(T("thermal", "element", "ramp"))
	for i := 1; i <= 5; i++ {
		c.Publish(c.NewMessage(T("thermal", "element", "ramp"), i, false))
	}
	if a, z := recv(t, s).Payload, recv(t, s).Payload; a != 4 || z != 5 {
		t.Fatalf("kept %v,%v want 4,5", a, z)
	}
	quiet(t, s)
}

func TestRequestWait_Reply(t *testing.T) {
	b := NewBus(4)
	svc := b.NewConnection("lights")
	ctrl := svc.Subscribe(T("lights", "+", "control", "+"))
	go func() {
		for m := range ctrl.Channel() {
			if !m.CanReply() {
				continue
			}
			svc.Reply(m, "ok:"+m.Topic[3].(string), false)
		}
	}()
	defer svc.Disconnect()

	cli := b.NewConnection("cli")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := cli.RequestWait(ctx, cli.NewMessage(T("lights", "case", "control", "get"), nil, false))
	if err != nil {
		t.Fatal(err)
	}
	if r.Payload != "ok:get" {
		t.Fatalf("reply %v", r.Payload)
	}
	if r.Topic[0] != "_reply" || r.Topic[1] != "cli" {
		t.Fatalf("reply topic %v", r.Topic)
	}
	// The private reply subscription is gone once RequestWait returns.
	b.mu.Lock()
	_, left := b.root.children["_reply"]
	b.mu.Unlock()
	if left {
		t.Fatal("reply topic left in the trie")
	}
}

func TestRequestWait_ContextEnds(t *testing.T) {
	b := NewBus(1)
	c := b.NewConnection("cli")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.RequestWait(ctx, c.NewMessage(T("lights", "nobody", "control", "get"), nil, false))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err %v", err)
	}
}

func TestRequestWait_ClosedByDisconnect(t *testing.T) {
	b := NewBus(1)
	c := b.NewConnection("cli")
	done := make(chan error, 1)
	go func() {
		_, err := c.RequestWait(context.Background(), c.NewMessage(T("lights", "case", "control", "get"), nil, false))
		done <- err
	}()
	// Wait for the request to register its reply subscription.
	deadline := time.Now().Add(time.Second)
	for {
		c.mu.Lock()
		n := len(c.subs)
		c.mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("request never subscribed")
		}
		time.Sleep(time.Millisecond)
	}
	c.Disconnect()
	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("err %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RequestWait did not return")
	}
}

func TestReply_WithoutReplyTo(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("t")
	watch := c.Subscribe(T("#"))
	m := c.NewMessage(T("lights", "case", "control", "off"), nil, false)
	if m.CanReply() {
		t.Fatal("plain message claims a reply topic")
	}
	c.Reply(m, "ignored", false)
	quiet(t, watch)
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	b := NewBus(2)
	c := b.NewConnection("t")
	keep := c.Subscribe(T("lights", "case", "value"))
	drop := c.Subscribe(T("lights", "case", "value"))

	drop.Unsubscribe()
	drop.Unsubscribe()
	if _, ok := <-drop.Channel(); ok {
		t.Fatal("channel still open")
	}

	c.Publish(c.NewMessage(T("lights", "case", "value"), "x", false))
	if m := recv(t, keep); m.Payload != "x" {
		t.Fatalf("payload %v", m.Payload)
	}
	c.Disconnect()
	keep.Unsubscribe()
	if len(b.root.children) != 0 {
		t.Fatalf("trie not pruned: %v", b.root.children)
	}
}

func TestTopic_TokensAndAppend(t *testing.T) {
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("float token accepted")
			}
		}()
		T("lights", 1.5)
	}()

	base := T("lights", "case")
	a := base.Append("control", "set")
	v := base.Append("value")
	if len(base) != 2 || len(a) != 4 || len(v) != 3 {
		t.Fatalf("lengths %d %d %d", len(base), len(a), len(v))
	}
	if a[3] != "set" || v[2] != "value" {
		t.Fatalf("append shared storage: %v %v", a, v)
	}
}
