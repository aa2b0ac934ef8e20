//go:build rp2040 || rp2350

package logx

import "io"

var minLevel = LevelInfo

// Setup sets the minimum level. Output always goes to the USB/UART console.
func Setup(level Level, _ bool, _ io.Writer) { minLevel = level }

func Debug(component, msg string, kv ...any) { emit(LevelDebug, "DBG", component, msg, nil, kv) }
func Info(component, msg string, kv ...any)  { emit(LevelInfo, "INF", component, msg, nil, kv) }
func Warn(component, msg string, kv ...any)  { emit(LevelWarn, "WRN", component, msg, nil, kv) }
func Error(component, msg string, err error, kv ...any) {
	emit(LevelError, "ERR", component, msg, err, kv)
}

func emit(l Level, tag, component, msg string, err error, kv []any) {
	if l < minLevel {
		return
	}
	print(tag, " [", component, "] ", msg)
	if err != nil {
		print(" error=", err.Error())
	}
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		print(" ", k, "=")
		printValue(kv[i+1])
	}
	println()
}

func printValue(v any) {
	switch x := v.(type) {
	case string:
		print(x)
	case bool:
		print(x)
	case int:
		print(x)
	case int16:
		print(x)
	case int32:
		print(x)
	case int64:
		print(x)
	case uint8:
		print(x)
	case uint16:
		print(x)
	case uint32:
		print(x)
	case error:
		print(x.Error())
	default:
		print("?")
	}
}
