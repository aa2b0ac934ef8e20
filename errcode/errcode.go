package errcode

import "errors"

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Busy           Code = "busy"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	InvalidTopic   Code = "invalid_topic"
	NotReady       Code = "not_ready"
	Conflict       Code = "conflict"

	UnknownChannel Code = "unknown_channel"
	UnknownPreset  Code = "unknown_preset"
	UnknownBus     Code = "unknown_bus"
	UnknownPin     Code = "unknown_pin"
	BackendIO      Code = "backend_io"
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// E keeps an operation and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

type coder interface{ Code() Code }

// Of extracts a Code from an error, defaulting to Error.
// Wrapped and joined errors are searched; the first coded error wins.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
