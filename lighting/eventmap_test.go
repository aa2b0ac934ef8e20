package lighting

import "testing"

func TestIntensity(t *testing.T) {
	cases := []struct {
		start, cur, target float32
		want               uint8
	}{
		{0, 0, 100, 0},
		{0, 50, 100, 128},
		{0, 100, 100, 255},
		{0, -20, 100, 0},
		{0, 150, 100, 255},
		{20, 60, 220, 51},
		{100, 75, 0, 64},
		{40, 40, 40, 255},
	}
	for _, tc := range cases {
		if got := Intensity(tc.start, tc.cur, tc.target); got != tc.want {
			t.Errorf("Intensity(%v,%v,%v) = %d, want %d", tc.start, tc.cur, tc.target, got, tc.want)
		}
	}
}

func TestEventMapper_ElementRampSuppressesRepeats(t *testing.T) {
	rgb := &fakeRGB{}
	ch := New(Config{RGB: []RGBDriver{rgb}})
	m := NewEventMapper(ch)

	ok, err := m.OnHeatingElementRamp(0, 50, 100)
	if err != nil || !ok {
		t.Fatalf("first dispatch: %v %v", ok, err)
	}
	if got := rgb.got[0]; got != RGB(255, 0, 127) {
		t.Fatalf("color %+v", got)
	}
	if ok, _ := m.OnHeatingElementRamp(0, 50, 100); ok || len(rgb.got) != 1 {
		t.Fatal("repeat intensity redispatched")
	}
	if m.Last() != 128 {
		t.Fatalf("last = %d", m.Last())
	}
}

func TestEventMapper_SharedGate(t *testing.T) {
	rgb := &fakeRGB{}
	ch := New(Config{RGB: []RGBDriver{rgb}})
	m := NewEventMapper(ch)

	_, _ = m.OnHeatingElementRamp(0, 100, 100)
	// Same intensity from the other source is gated too.
	if ok, _ := m.OnHeatedSurfaceRamp(0, 60, 60); ok {
		t.Fatal("surface ramp passed a shared gate at equal intensity")
	}
	if ok, _ := m.OnHeatedSurfaceRamp(0, 30, 60); !ok {
		t.Fatal("surface ramp not dispatched")
	}
	if got := rgb.got[len(rgb.got)-1]; got != RGB(128, 0, 255) {
		t.Fatalf("surface color %+v", got)
	}
}

func TestEventMapper_SequentialStripUsesStripBrightness(t *testing.T) {
	strip := newFakeStrip(2)
	strip.brightness = 33
	ch := New(Config{Strip: strip, Sequential: true})
	m := NewEventMapper(ch)

	_, _ = m.OnHeatedSurfaceRamp(0, 10, 10)
	_, _ = m.OnHeatedSurfaceRamp(0, 5, 10)
	if strip.fills != 0 {
		t.Fatal("sequential channel filled the whole strip")
	}
	if strip.pixels[0] != 0xFF00FF || strip.pixels[1] != 0x8000FF {
		t.Fatalf("pixels %#x %#x", strip.pixels[0], strip.pixels[1])
	}
	if strip.brightness != 33 {
		t.Fatalf("brightness %d", strip.brightness)
	}
	if ch.State().On {
		t.Fatal("sequential writes changed channel memory")
	}
}
