//go:build !(rp2040 || rp2350)

package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. w defaults to stderr.
func Setup(level Level, useJSON bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if useJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05.000",
			NoColor:    true,
		})
	}
	zerolog.SetGlobalLevel(toZerolog(level))
}

func toZerolog(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// kv is a flat list of alternating string keys and values.
func Debug(component, msg string, kv ...any) {
	log.Debug().Str("component", component).Fields(kv).Msg(msg)
}

func Info(component, msg string, kv ...any) {
	log.Info().Str("component", component).Fields(kv).Msg(msg)
}

func Warn(component, msg string, kv ...any) {
	log.Warn().Str("component", component).Fields(kv).Msg(msg)
}

func Error(component, msg string, err error, kv ...any) {
	log.Error().Err(err).Str("component", component).Fields(kv).Msg(msg)
}
