// Package console is a line-oriented command shell for the lighting
// channels. Each line is tokenised shell-style, turned into a request on
// lights/<name>/control/<verb> and answered with exactly one line.
package console

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"ledcore-go/bus"
	"ledcore-go/errcode"
	"ledcore-go/platform"
	"ledcore-go/services/lights"
	"ledcore-go/types"
	"ledcore-go/x/conv"
	"ledcore-go/x/logx"

	"github.com/google/shlex"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	component      = "console"
	defaultTimeout = 500 * time.Millisecond
	maxLine        = 128
)

const usage = `led <name> set <r> <g> <b> [w] [brightness]
led <name> seq <r> <g> <b>
led <name> hex <rrggbb>
led <name> off|on|toggle|get|activity
led <name> preset <off|white|green|red|orange|yellow|blue|indigo|violet|default>
help`

type Console struct {
	conn    *bus.Connection
	timeout time.Duration
}

func New(conn *bus.Connection) *Console {
	return &Console{conn: conn, timeout: defaultTimeout}
}

// SetTimeout bounds how long Exec waits for the lights service.
func (c *Console) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Run serves port until ctx ends or the stream closes.
func (c *Console) Run(ctx context.Context, port platform.SerialPort) {
	buf := make([]byte, 64)
	line := make([]byte, 0, maxLine)
	for {
		n, err := port.RecvSomeContext(ctx, buf)
		for _, b := range buf[:max(n, 0)] {
			switch b {
			case '\n':
				if reply := c.Exec(ctx, string(line)); reply != "" {
					port.Write([]byte(reply + "\n"))
				}
				line = line[:0]
			case '\r':
			default:
				if len(line) < maxLine {
					line = append(line, b)
				}
			}
		}
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, io.EOF) {
				logx.Warn(component, "read failed", "err", err.Error())
			}
			return
		}
	}
}

// Exec runs one command line and returns its reply. Blank lines and
// comments yield "".
func (c *Console) Exec(ctx context.Context, line string) string {
	args, err := shlex.Split(line)
	if err != nil {
		return errLine(errcode.InvalidParams)
	}
	if len(args) == 0 {
		return ""
	}
	switch args[0] {
	case "help", "?":
		return usage
	case "led":
	default:
		return errLine(errcode.Unsupported)
	}
	if len(args) < 3 {
		return errLine(errcode.InvalidParams)
	}

	name, verb, rest := args[1], args[2], args[3:]
	var payload any
	switch verb {
	case "set", "seq":
		col, ok := parseColor(rest, verb == "set")
		if !ok {
			return errLine(errcode.InvalidParams)
		}
		payload = types.LightSet{Color: col, Sequential: verb == "seq"}
		verb = lights.CtrlSet
	case "hex":
		if len(rest) != 1 {
			return errLine(errcode.InvalidParams)
		}
		col, ok := parseHex(rest[0])
		if !ok {
			return errLine(errcode.InvalidParams)
		}
		payload = types.LightSet{Color: col}
		verb = lights.CtrlSet
	case "preset":
		if len(rest) != 1 {
			return errLine(errcode.InvalidParams)
		}
		payload = types.LightPreset{Name: strings.ToLower(rest[0])}
	case lights.CtrlOff, lights.CtrlOn, lights.CtrlToggle, lights.CtrlGet, lights.CtrlActivity:
		if len(rest) != 0 {
			return errLine(errcode.InvalidParams)
		}
	default:
		return errLine(errcode.Unsupported)
	}

	return c.request(ctx, lights.ControlTopic(name, verb), payload)
}

func (c *Console) request(ctx context.Context, t bus.Topic, payload any) string {
	rctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	reply, err := c.conn.RequestWait(rctx, c.conn.NewMessage(t, payload, false))
	if err != nil {
		return errLine(errcode.Timeout)
	}
	switch p := reply.Payload.(type) {
	case types.OKReply:
		return "ok"
	case types.ErrorReply:
		return "error: " + p.Error
	case types.LightValue:
		return valueLine(p)
	}
	return errLine(errcode.Error)
}

// parseColor reads r g b, then optionally w and brightness when extended.
func parseColor(args []string, extended bool) (types.LightColor, bool) {
	limit := 3
	if extended {
		limit = 5
	}
	if len(args) < 3 || len(args) > limit {
		return types.LightColor{}, false
	}
	var v [5]uint8
	for i, a := range args {
		n, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return types.LightColor{}, false
		}
		v[i] = uint8(n)
	}
	return types.LightColor{R: v[0], G: v[1], B: v[2], W: v[3], Brightness: v[4]}, true
}

// parseHex accepts rrggbb, #rrggbb and the short rgb forms. An unquoted
// leading '#' never reaches here since the tokenizer reads it as a comment.
func parseHex(s string) (types.LightColor, bool) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return types.LightColor{}, false
	}
	col, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return types.LightColor{}, false
	}
	r, g, b := col.RGB255()
	return types.LightColor{R: r, G: g, B: b}, true
}

func valueLine(v types.LightValue) string {
	b := make([]byte, 0, 48)
	b = append(b, "on="...)
	b = conv.AppendBool(b, v.On)
	for _, f := range [...]struct {
		k string
		v uint8
	}{{" r=", v.Color.R}, {" g=", v.Color.G}, {" b=", v.Color.B}, {" w=", v.Color.W}, {" i=", v.Color.Brightness}} {
		b = append(b, f.k...)
		b = conv.AppendUint(b, uint64(f.v))
	}
	return string(b)
}

func errLine(c errcode.Code) string { return "error: " + string(c) }
