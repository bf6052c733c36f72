package duolog

import (
	"fmt"
	"strings"
)

// Level is the severity of a log message. Levels form a fixed total order;
// a logger configured at level L emits a message at level M only when M's
// rank does not exceed L's rank. LevelNone suppresses everything and
// LevelTrace allows everything.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
	LevelTrace
)

// levelNames is indexed by rank.
var levelNames = [...]string{"none", "error", "warning", "info", "debug", "trace"}

// String returns the lowercase name of the level.
func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("unknown(%d)", int(l))
	}
	return levelNames[l]
}

// Tag returns the uppercase name used in emitted lines.
func (l Level) Tag() string {
	return strings.ToUpper(l.String())
}

// valid reports whether l is a member of the enumeration.
func (l Level) valid() bool {
	return l >= LevelNone && l <= LevelTrace
}

// allows reports whether a logger configured at l emits a message at m.
func (l Level) allows(m Level) bool {
	return m <= l
}

// ParseLevel converts a level name to its Level constant. Matching is
// case-insensitive and accepts the common short forms.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return LevelNone, nil
	case "error":
		return LevelError, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "info", "information":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelNone, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
