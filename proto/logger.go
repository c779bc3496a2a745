package proto

// LogLevel is the severity carried in the first byte of a MsgLogLine payload.
type LogLevel uint8

const (
	LevelInfo LogLevel = iota
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Byte 0 is the level, the rest is UTF-8 text without a trailing newline.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(level LogLevel, line []byte) []byte {
	b := make([]byte, 1+len(line))
	b[0] = byte(level)
	copy(b[1:], line)
	return b
}

// DecodeLogLinePayload splits a MsgLogLine payload into level and text.
func DecodeLogLinePayload(b []byte) (level LogLevel, line []byte, ok bool) {
	if len(b) == 0 {
		return 0, nil, false
	}
	level = LogLevel(b[0])
	if level > LevelError {
		return 0, nil, false
	}
	return level, b[1:], true
}
