package logger

import (
	"fmt"
	"unicode/utf8"

	"fplot/kernel"
	"fplot/proto"
)

// MaxLineBytes is the longest line that fits in one log message.
const MaxLineBytes = kernel.MaxMessageBytes - 1

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Long lines are truncated.
func Log(ctx *kernel.Context, logCap kernel.Capability, level proto.LogLevel, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidToCap
	}
	b := []byte(line)
	if len(b) > MaxLineBytes {
		cut := MaxLineBytes
		for cut > 0 && !utf8.RuneStart(b[cut]) {
			cut--
		}
		b = b[:cut]
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(level, b), kernel.Capability{})
}

// Logf formats according to format and sends the result with Log.
func Logf(ctx *kernel.Context, logCap kernel.Capability, level proto.LogLevel, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, level, fmt.Sprintf(format, args...))
}
