package duolog

import (
	"fmt"
	"runtime"
	"strconv"
	"time"
)

// timestampLayout renders ISO-8601 timestamps in UTC with millisecond
// precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// maxStackDepth bounds the frames captured for trace-level entries.
const maxStackDepth = 32

// lineBuilder assembles a single log line into a reused buffer. Each logger
// owns one builder; access is serialized by the logger's mutex.
type lineBuilder struct {
	buf []byte
}

func newLineBuilder() *lineBuilder {
	return &lineBuilder{buf: make([]byte, 0, 256)}
}

func (b *lineBuilder) reset() {
	b.buf = b.buf[:0]
}

// bracket appends one [text] segment, wrapped in the given markup pair when
// colored output is requested.
func (b *lineBuilder) bracket(color, text string, colored bool) {
	if colored {
		b.buf = append(b.buf, color...)
	}
	b.buf = append(b.buf, '[')
	b.buf = append(b.buf, text...)
	b.buf = append(b.buf, ']')
	if colored {
		b.buf = append(b.buf, colorReset...)
	}
}

// build composes a complete line: bracketed timestamp, bracketed uptime in
// seconds with 7 decimal places (omitted in cut mode), the precomputed
// prefix, the bracketed uppercase level tag, a space, the message body and a
// trailing newline. The colored variant wraps timestamp and uptime in the
// default markup and the level tag and body in the level's display color.
// The returned slice is valid until the next build call.
func (b *lineBuilder) build(ts time.Time, uptime float64, prefix string, level Level, color, body string, cut, colored bool) []byte {
	b.reset()
	b.bracket(colorDefault, ts.UTC().Format(timestampLayout), colored)
	if !cut {
		b.bracket(colorDefault, strconv.FormatFloat(uptime, 'f', 7, 64), colored)
	}
	b.buf = append(b.buf, prefix...)
	b.bracket(color, level.Tag(), colored)
	b.buf = append(b.buf, ' ')
	if colored {
		b.buf = append(b.buf, color...)
	}
	b.buf = append(b.buf, body...)
	if colored {
		b.buf = append(b.buf, colorReset...)
	}
	b.buf = append(b.buf, '\n')
	return b.buf
}

// resolveMessage normalizes the message argument of an emit call. A message
// may be a literal string or a zero-argument function producing one; any
// other shape is a validation error, as is an empty resolved string.
// Interpolation applies only when extra arguments are present.
func resolveMessage(msg any, args []any) (string, error) {
	if msg == nil {
		return "", ErrMissingMessage
	}
	var text string
	switch m := msg.(type) {
	case string:
		text = m
	case func() string:
		text = m()
	case func() any:
		v := m()
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%w: function returned %T", ErrInvalidMessage, v)
		}
		text = s
	default:
		return "", fmt.Errorf("%w: got %T", ErrInvalidMessage, msg)
	}
	if text == "" {
		return "", ErrEmptyMessage
	}
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	return text, nil
}

// captureStack returns msg followed by the call stack of the emitting
// goroutine, one frame per line. Trace-level entries always carry a stack
// instead of the bare message text.
func captureStack(msg string, skip int) string {
	pc := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return msg
	}
	frames := runtime.CallersFrames(pc[:n])
	buf := make([]byte, 0, 512)
	buf = append(buf, msg...)
	for {
		frame, more := frames.Next()
		buf = append(buf, "\n    at "...)
		buf = append(buf, frame.Function...)
		buf = append(buf, " ("...)
		buf = append(buf, frame.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(frame.Line), 10)
		buf = append(buf, ')')
		if !more {
			break
		}
	}
	return string(buf)
}

// stringifyValue converts an arbitrary recovered or error value to a string
// representation, with a placeholder for values that render to nothing.
func stringifyValue(v any) string {
	switch m := v.(type) {
	case nil:
		return "(unknown error)"
	case string:
		if m == "" {
			return "(unknown error)"
		}
		return m
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	default:
		s := fmt.Sprintf("%+v", m)
		if s == "" {
			return "(unknown error)"
		}
		return s
	}
}
