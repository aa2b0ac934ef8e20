// Package lights puts the lighting channels on the bus. It builds channels
// from the config/lighting descriptor, serves control verbs, polls backlight
// timeouts and feeds heater telemetry to the event mappers.
package lights

import (
	"context"
	"errors"
	"time"

	"ledcore-go/bus"
	"ledcore-go/errcode"
	"ledcore-go/lighting"
	"ledcore-go/platform"
	"ledcore-go/services/config"
	"ledcore-go/types"
	"ledcore-go/x/logx"
	"ledcore-go/x/timex"
)

const (
	component     = "lights"
	defaultPollMs = 1000
)

type Option func(*Service)

// WithClock replaces the millisecond clock used for timeouts.
func WithClock(now func() int64) Option { return func(s *Service) { s.now = now } }

type channelEntry struct {
	ch     *lighting.Channel
	mapper *lighting.EventMapper // nil unless the channel takes events
	last   types.LightValue
	link   types.Link // "" until first published
	code   string
}

type Service struct {
	conn  *bus.Connection
	board platform.Board
	now   func() int64

	reg     *lighting.Registry
	entries map[string]*channelEntry
	order   []string

	poll    time.Duration
	powerOn bool
}

func New(conn *bus.Connection, board platform.Board, opts ...Option) *Service {
	s := &Service{
		conn:    conn,
		board:   board,
		now:     timex.NowMs,
		reg:     lighting.NewRegistry(),
		entries: map[string]*channelEntry{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry exposes the configured channels.
func (s *Service) Registry() *lighting.Registry { return s.reg }

func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	ctrlSub := s.conn.Subscribe(topicCtrl)
	psuSub := s.conn.Subscribe(topicPSU)
	heatSub := s.conn.Subscribe(topicThermal)
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)
	defer s.conn.Unsubscribe(psuSub)
	defer s.conn.Unsubscribe(heatSub)

	s.publishState("idle", "awaiting_config")

	var ticker *time.Ticker
	var tick <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled")
			return

		case msg := <-cfgSub.Channel():
			if s.reg.Len() > 0 {
				// The descriptor is evaluated once at boot.
				logx.Warn(component, "ignoring repeated config")
				continue
			}
			cfg, err := config.Decode[types.LightingConfig](msg.Payload)
			if err != nil {
				logx.Error(component, "bad config", err)
				s.publishState("error", "config_wrong_type")
				continue
			}
			if err := s.applyConfig(cfg); err != nil {
				logx.Error(component, "apply config", err)
				s.publishState("error", string(errcode.Of(err)))
				continue
			}
			if s.hasTimeouts() {
				ticker = time.NewTicker(s.poll)
				tick = ticker.C
			}
			s.publishState("ready", "configured")

		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)

		case msg := <-psuSub.Channel():
			v, err := config.Decode[types.SwitchValue](msg.Payload)
			if err != nil {
				continue
			}
			rising := v.On && !s.powerOn
			s.powerOn = v.On
			if rising {
				s.pollTimeouts()
			}

		case msg := <-heatSub.Channel():
			s.handleRamp(msg)

		case <-tick:
			s.pollTimeouts()
		}
	}
}

func (s *Service) applyConfig(cfg types.LightingConfig) error {
	if len(cfg.Channels) == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: "no channels"}
	}
	s.poll = time.Duration(cfg.PollMs) * time.Millisecond
	if s.poll <= 0 {
		s.poll = defaultPollMs * time.Millisecond
	}

	for _, cc := range cfg.Channels {
		b, err := buildChannel(s.board, cc)
		if err != nil {
			return err
		}
		if err := s.reg.Add(b.ch); err != nil {
			return &errcode.E{C: errcode.Of(err), Op: "config", Msg: "duplicate channel " + cc.Name}
		}
		e := &channelEntry{ch: b.ch}
		if b.events {
			e.mapper = lighting.NewEventMapper(b.ch)
		}
		s.entries[cc.Name] = e
		s.order = append(s.order, cc.Name)

		s.pubRet(InfoTopic(cc.Name), b.info)
		err = b.ch.Setup()
		s.noteResult(cc.Name, e, err)
		if err != nil {
			logx.Warn(component, "setup degraded", "channel", cc.Name, "err", err.Error())
		}
		s.publishValue(cc.Name, e, true)
		logx.Info(component, "channel ready", "channel", cc.Name, "index", cc.Index)
	}
	return nil
}

func (s *Service) hasTimeouts() bool {
	for _, c := range s.reg.All() {
		if c.TimeoutEnabled() {
			return true
		}
	}
	return false
}

func (s *Service) handleControl(msg *bus.Message) {
	if len(msg.Topic) != 4 {
		return
	}
	name, _ := msg.Topic[1].(string)
	verb, _ := msg.Topic[3].(string)
	e, ok := s.entries[name]
	if !ok {
		s.replyErr(msg, errcode.UnknownChannel)
		return
	}

	var err error
	switch verb {
	case CtrlGet:
		s.conn.Reply(msg, currentOf(e.ch), false)
		return
	case CtrlSet:
		var p types.LightSet
		if p, err = config.Decode[types.LightSet](msg.Payload); err != nil {
			s.replyErr(msg, errcode.InvalidPayload)
			return
		}
		if p.Sequential {
			err = e.ch.SetColorSequential(toColor(p.Color))
		} else {
			err = e.ch.SetColor(toColor(p.Color))
		}
	case CtrlOff:
		err = e.ch.SetOff()
	case CtrlOn:
		err = e.ch.Update()
	case CtrlToggle:
		err = e.ch.Toggle()
	case CtrlPreset:
		p, derr := config.Decode[types.LightPreset](msg.Payload)
		if derr != nil {
			s.replyErr(msg, errcode.InvalidPayload)
			return
		}
		pr, ok := lighting.ParsePreset(p.Name)
		if !ok {
			s.replyErr(msg, errcode.UnknownPreset)
			return
		}
		err = e.ch.SetPreset(pr)
	case CtrlActivity:
		err = e.ch.ResetTimeout(s.now())
	default:
		s.replyErr(msg, errcode.Unsupported)
		return
	}

	s.afterWrite(name, e, err)
	if err != nil {
		s.replyErr(msg, errcode.Of(err))
		return
	}
	s.conn.Reply(msg, types.OKReply{OK: true}, false)
}

// afterWrite refreshes status and value after any channel write.
func (s *Service) afterWrite(name string, e *channelEntry, err error) {
	var be *lighting.BackendIOError
	if err != nil && !errors.As(err, &be) {
		// Rejected before any backend was touched.
		return
	}
	s.noteResult(name, e, err)
	s.publishValue(name, e, false)
}

func (s *Service) pollTimeouts() {
	now := s.now()
	for _, name := range s.order {
		e := s.entries[name]
		if !e.ch.TimeoutEnabled() {
			continue
		}
		err := e.ch.UpdateTimeout(s.powerOn, now)
		s.afterWrite(name, e, err)
	}
}

func (s *Service) handleRamp(msg *bus.Message) {
	if len(msg.Topic) != 3 {
		return
	}
	source, _ := msg.Topic[1].(string)
	r, err := config.Decode[types.HeatRamp](msg.Payload)
	if err != nil {
		return
	}
	start, cur, target := deci(r.StartDeciC), deci(r.CurrentDeciC), deci(r.TargetDeciC)

	for _, name := range s.order {
		e := s.entries[name]
		if e.mapper == nil {
			continue
		}
		var sent bool
		switch source {
		case SourceElement:
			sent, err = e.mapper.OnHeatingElementRamp(start, cur, target)
		case SourceSurface:
			sent, err = e.mapper.OnHeatedSurfaceRamp(start, cur, target)
		default:
			return
		}
		if sent {
			s.afterWrite(name, e, err)
		}
	}
}

func deci(v int16) float32 { return float32(v) / 10 }

func valueOf(ch *lighting.Channel) types.LightValue {
	st := ch.State()
	return types.LightValue{On: st.On, Color: fromColor(st.Color)}
}

// currentOf is what the channel shows right now: the off color while dark.
func currentOf(ch *lighting.Channel) types.LightValue {
	st := ch.State()
	if !st.On {
		return types.LightValue{Color: fromColor(lighting.Off())}
	}
	return types.LightValue{On: true, Color: fromColor(st.Color)}
}

// publishValue publishes the retained value when it changed.
func (s *Service) publishValue(name string, e *channelEntry, force bool) {
	v := valueOf(e.ch)
	if !force && v == e.last {
		return
	}
	e.last = v
	s.pubRet(ValueTopic(name), v)
}

// noteResult tracks backend health; only transitions are published.
func (s *Service) noteResult(name string, e *channelEntry, err error) {
	link, code := types.LinkUp, ""
	if err != nil {
		link, code = types.LinkDegraded, string(errcode.Of(err))
	}
	if link == e.link && code == e.code {
		return
	}
	e.link, e.code = link, code
	s.pubRet(StatusTopic(name), types.CapabilityStatus{Link: link, TS: time.Now().UnixNano(), Error: code})
}

func (s *Service) publishState(level, status string) {
	s.pubRet(topicState, types.ServiceState{Level: level, Status: status, TS: time.Now().UnixNano()})
}

func (s *Service) replyErr(req *bus.Message, code errcode.Code) {
	if !req.CanReply() {
		return
	}
	if code == "" {
		code = errcode.Error
	}
	s.conn.Reply(req, types.ErrorReply{OK: false, Error: string(code)}, false)
}

func (s *Service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}
