package lighting

import (
	"errors"
	"testing"
	"time"

	"ledcore-go/errcode"
)

func TestScenario_BootOffOnToggle(t *testing.T) {
	strip := newFakeStrip(4)
	ch := New(Config{Name: "primary", Strip: strip})
	if err := ch.Setup(); err != nil {
		t.Fatal(err)
	}
	if strip.inits != 1 {
		t.Fatalf("strip init calls = %d", strip.inits)
	}

	if err := ch.SetColor(RGB(0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if st := ch.State(); st.On || !st.Color.Equal(NewColor()) {
		t.Fatalf("after off: %+v", st)
	}

	red := RGB(10, 0, 0)
	_ = ch.SetColor(red)
	if st := ch.State(); !st.On || st.Color != red {
		t.Fatalf("after red: %+v", st)
	}

	_ = ch.Toggle()
	if st := ch.State(); st.On || st.Color != red {
		t.Fatalf("after toggle off: %+v", st)
	}
	if strip.pixels[0] != 0 {
		t.Fatalf("strip not cleared: %#x", strip.pixels[0])
	}
	if ch.GetColor() != Off() {
		t.Fatal("GetColor should report off while off")
	}

	_ = ch.Toggle()
	if st := ch.State(); !st.On || st.Color != red {
		t.Fatalf("after toggle on: %+v", st)
	}
	if strip.pixels[3] != 0x0A0000 {
		t.Fatalf("red not redispatched: %#x", strip.pixels[3])
	}
}

func TestSetColor_FansOutToEveryBackend(t *testing.T) {
	strip := newFakeStrip(2)
	rgb := &fakeRGB{}
	pre := &fakePreset{}
	pins := newFakePins(10, 11) // 12 and 13 are digital only
	ch := New(Config{
		Name:   "all",
		Strip:  strip,
		RGB:    []RGBDriver{rgb},
		Pins:   pins,
		PinMap: PinMap{R: 10, G: 11, B: 12, W: 13},
		Preset: pre,
	})
	if err := ch.Setup(); err != nil {
		t.Fatal(err)
	}
	if pins.configured[10] != "pwm" || pins.configured[12] != "out" || pins.configured[13] != "out" {
		t.Fatalf("pin modes: %v", pins.configured)
	}
	if rgb.init != 1 || pre.init != 1 {
		t.Fatal("drivers not initialised")
	}

	c := RGBW(200, 100, 0, 7).WithBrightness(50)
	if err := ch.SetColor(c); err != nil {
		t.Fatal(err)
	}
	if strip.brightness != 50 || strip.pixels[1] != 0x07C86400 {
		t.Fatalf("strip: b=%d px=%#x", strip.brightness, strip.pixels[1])
	}
	if len(rgb.got) != 1 || rgb.got[0] != c {
		t.Fatalf("rgb driver got %v", rgb.got)
	}
	if pins.analog[10] != 200 || pins.analog[11] != 100 {
		t.Fatalf("analog pins %v", pins.analog)
	}
	if pins.digital[12] || !pins.digital[13] {
		t.Fatalf("digital pins %v", pins.digital)
	}
	if len(pre.got) != 1 || pre.got[0] != [3]uint8{200, 100, 0} {
		t.Fatalf("preset driver got %v", pre.got)
	}
}

func TestSetColor_NoWhitePinSkipsW(t *testing.T) {
	pins := newFakePins()
	ch := New(Config{Pins: pins, PinMap: PinMap{R: 1, G: 2, B: 3, W: NoPin}})
	_ = ch.Setup()
	_ = ch.SetColor(RGBW(1, 0, 0, 9))
	if _, ok := pins.digital[NoPin]; ok {
		t.Fatal("wrote to NoPin")
	}
	if len(pins.configured) != 3 {
		t.Fatalf("configured %v", pins.configured)
	}
}

func TestSetWhite_UsesNativeWhite(t *testing.T) {
	strip := newFakeStrip(3)
	ch := New(Config{Strip: strip, HasWhite: true})
	_ = ch.SetWhite()
	if strip.pixels[2] != fakeNativeWhite {
		t.Fatalf("pixel = %#x, want native white", strip.pixels[2])
	}
	// Same channels, different brightness: not the preset, sent literally.
	_ = ch.SetColor(RGBW(0, 0, 0, 255).WithBrightness(9))
	if strip.pixels[2] != 0xFF000000 || strip.brightness != 9 {
		t.Fatalf("pixel = %#x", strip.pixels[2])
	}
}

func TestSetColor_OffKeepsMemory(t *testing.T) {
	ch := New(Config{})
	c := RGB(1, 2, 3)
	_ = ch.SetColor(c)
	_ = ch.SetOff()
	_ = ch.SetColor(RGB(1, 1, 0))
	st := ch.State()
	if st.On || st.Color != c {
		t.Fatalf("state %+v", st)
	}
	_ = ch.Update()
	if st := ch.State(); !st.On || st.Color != c {
		t.Fatalf("update did not restore: %+v", st)
	}
}

func TestSequential_AdvancesAndSkipsBackground(t *testing.T) {
	strip := newFakeStrip(3)
	ch := New(Config{Strip: strip, Background: 1, ReserveBackground: true, Sequential: true})
	before := ch.State()

	c := RGB(0, 0, 5)
	for i := 0; i < 4; i++ {
		if err := ch.SetColorSequential(c); err != nil {
			t.Fatal(err)
		}
	}
	if strip.pixels[0] != 5 || strip.pixels[2] != 5 {
		t.Fatalf("pixels %v", strip.pixels)
	}
	if strip.pixels[1] != 0 {
		t.Fatal("background pixel overwritten")
	}
	// 0, 1 (skipped), 2, 0
	if strip.shows != 3 {
		t.Fatalf("shows = %d", strip.shows)
	}
	st := ch.State()
	if st.NextPixel != 1 {
		t.Fatalf("cursor = %d", st.NextPixel)
	}
	if st.On != before.On || st.Color != before.Color {
		t.Fatal("sequential write touched channel memory")
	}

	ch.ResetPixelCursor()
	if ch.State().NextPixel != 0 {
		t.Fatal("cursor not reset")
	}
}

func TestSetColor_CursorOnBackgroundDropsCall(t *testing.T) {
	strip := newFakeStrip(3)
	rgb := &fakeRGB{}
	ch := New(Config{Strip: strip, RGB: []RGBDriver{rgb}, Background: 0, ReserveBackground: true})

	if err := ch.SetColor(RGB(4, 0, 0)); err != nil {
		t.Fatal(err)
	}
	st := ch.State()
	if strip.shows != 0 || len(rgb.got) != 0 {
		t.Fatalf("backends written: shows=%d rgb=%d", strip.shows, len(rgb.got))
	}
	if st.On || st.NextPixel != 1 {
		t.Fatalf("state %+v", st)
	}

	// Cursor has moved on, so the next call goes through and spares pixel 0.
	_ = ch.SetColor(RGB(4, 0, 0))
	if st := ch.State(); !st.On || st.Color != RGB(4, 0, 0) {
		t.Fatalf("state %+v", st)
	}
	if strip.pixels[0] != 0 || strip.pixels[1] != 0x040000 || len(rgb.got) != 1 {
		t.Fatalf("pixels %v rgb %d", strip.pixels, len(rgb.got))
	}
}

func TestSetColor_WholeStripSparesBackground(t *testing.T) {
	strip := newFakeStrip(4)
	strip.pixels[2] = 0xABCDEF
	ch := New(Config{Strip: strip, Background: 2, ReserveBackground: true})
	_ = ch.SetColor(RGB(1, 2, 3))
	for i, px := range strip.pixels {
		want := uint32(0x010203)
		if i == 2 {
			want = 0xABCDEF
		}
		if px != want {
			t.Errorf("pixel %d = %#x, want %#x", i, px, want)
		}
	}
	if strip.shows != 1 {
		t.Fatalf("shows = %d", strip.shows)
	}
}

func TestSetColor_BackendErrorDoesNotStopFanOut(t *testing.T) {
	bad := &fakeRGB{err: errNack}
	pre := &fakePreset{}
	ch := New(Config{Name: "primary", RGB: []RGBDriver{bad}, Preset: pre})

	c := RGB(9, 9, 9)
	err := ch.SetColor(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if errcode.Of(err) != errcode.BackendIO {
		t.Fatalf("code = %v", errcode.Of(err))
	}
	var be *BackendIOError
	if !errors.As(err, &be) || be.Backend != "fake-rgb" || be.Channel != "primary" {
		t.Fatalf("error = %v", err)
	}
	if !errors.Is(err, errNack) {
		t.Fatal("cause lost")
	}
	if len(pre.got) != 1 {
		t.Fatal("preset driver skipped after earlier failure")
	}
	if st := ch.State(); !st.On || st.Color != c {
		t.Fatalf("memory not updated: %+v", st)
	}
}

func TestPresetColor(t *testing.T) {
	plain := New(Config{})
	if _, err := plain.PresetColor(PresetRed); err != errcode.Unsupported {
		t.Fatalf("red without presets: %v", err)
	}
	if c, err := plain.PresetColor(PresetGreen); err != nil || c != Green() {
		t.Fatalf("green: %v %v", c, err)
	}

	def := RGB(4, 5, 6)
	full := New(Config{Presets: true, ReduceGreen: true, Default: def})
	if c, _ := full.PresetColor(PresetOrange); c != RGB(255, 25, 0) {
		t.Fatalf("orange = %+v", c)
	}
	if err := full.SetPreset(PresetDefault); err != nil {
		t.Fatal(err)
	}
	if full.GetColor() != def {
		t.Fatalf("default = %+v", full.GetColor())
	}
	if _, err := full.PresetColor(Preset(99)); err != errcode.UnknownPreset {
		t.Fatalf("unknown: %v", err)
	}
}

func TestSetup_StartupDefault(t *testing.T) {
	rgb := &fakeRGB{}
	ch := New(Config{RGB: []RGBDriver{rgb}, StartupDefault: true})
	_ = ch.Setup()
	if len(rgb.got) != 1 || rgb.got[0] != NewColor() {
		t.Fatalf("startup color %v", rgb.got)
	}
}

func TestChannels_AreIndependent(t *testing.T) {
	a := New(Config{Name: "a", Timeout: time.Second})
	b := New(Config{Name: "b", Index: 1, Timeout: time.Second})
	_ = a.SetColor(RGB(5, 0, 0))
	_ = a.ResetTimeout(100)
	if st := b.State(); st.On || st.Armed || st.Color != NewColor() {
		t.Fatalf("b changed: %+v", st)
	}
}
