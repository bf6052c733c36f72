package duolog

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sync"
	"time"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// stackSkip drops the capture machinery from trace stacks:
// runtime.Callers, captureStack, emit and the public Trace wrapper.
const stackSkip = 4

// Logger is a named, dual-sink, leveled logger. Instances are created
// through a Registry, which enforces name uniqueness, and removed only by
// Registry.TryClearAllLoggers or process exit. All methods are safe for
// concurrent use.
type Logger struct {
	mu   sync.Mutex
	name string

	level           Level
	logToConsole    bool
	logToFileSystem bool
	logWithColor    bool
	cutLogPrefix    bool // fixed at construction

	// Prefix families are built on first use and cached for the logger's
	// lifetime.
	plainPrefix string
	colorPrefix string
	havePlain   bool
	haveColor   bool

	sink    *fileSink
	reg     *Registry
	builder *lineBuilder
}

// Name returns the unique logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the configured emission gate.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LogToConsole reports whether the console sink is enabled.
func (l *Logger) LogToConsole() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logToConsole
}

// LogToFileSystem reports whether the file sink is enabled.
func (l *Logger) LogToFileSystem() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logToFileSystem
}

// LogWithColor reports whether console output is colorized.
func (l *Logger) LogWithColor() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logWithColor
}

// CutLogPrefix reports whether the short prefix form is in effect.
func (l *Logger) CutLogPrefix() bool {
	return l.cutLogPrefix
}

// FileName returns the current log file name, empty while no sink is open.
func (l *Logger) FileName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.fileName
}

// FilePath returns the fully qualified log file path, empty while no sink is
// open.
func (l *Logger) FilePath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.path
}

// SetLevel changes the emission gate. The level must be a member of the
// enumeration.
func (l *Logger) SetLevel(level Level) error {
	if !level.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	return nil
}

// SetLogToConsole toggles the console sink.
func (l *Logger) SetLogToConsole(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logToConsole = v
}

// SetLogWithColor toggles colorized console output.
func (l *Logger) SetLogWithColor(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logWithColor = v
}

// SetLogToFileSystem toggles the file sink. Turning it on opens the stream
// immediately; turning it off closes the stream and clears the cached file
// name. Setting the current value is a no-op.
func (l *Logger) SetLogToFileSystem(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v == l.logToFileSystem {
		return
	}
	l.logToFileSystem = v
	if v {
		if err := l.sink.open(l.name, l.reg.host.Runtime, l.reg.host.PID); err != nil {
			l.disableSinkLocked(err)
		}
	} else {
		l.sink.close()
	}
}

// Log emits at info level with the default display color.
func (l *Logger) Log(msg any, args ...any) error {
	return l.emit(LevelInfo, colorDefault, msg, args)
}

// Information emits at info level.
func (l *Logger) Information(msg any, args ...any) error {
	return l.emit(LevelInfo, colorGreen, msg, args)
}

// Warning emits at warning level.
func (l *Logger) Warning(msg any, args ...any) error {
	return l.emit(LevelWarning, colorYellow, msg, args)
}

// Error emits at error level.
func (l *Logger) Error(msg any, args ...any) error {
	return l.emit(LevelError, colorRed, msg, args)
}

// Debug emits at debug level.
func (l *Logger) Debug(msg any, args ...any) error {
	return l.emit(LevelDebug, colorCyan, msg, args)
}

// Trace emits at trace level. The message text is replaced by a call stack
// whose first line is the text itself.
func (l *Logger) Trace(msg any, args ...any) error {
	return l.emit(LevelTrace, colorMagenta, msg, args)
}

// emit runs the shared pipeline: gate, resolve, format, console sink, file
// sink. Validation failures are returned; sink failures are not.
func (l *Logger) emit(level Level, color string, msg any, args []any) error {
	l.mu.Lock()
	gate := l.level
	l.mu.Unlock()
	if !gate.allows(level) {
		return nil
	}

	text, err := resolveMessage(msg, args)
	if err != nil {
		return err
	}
	if level == LevelTrace {
		text = captureStack(text, stackSkip)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLocked(level, color, text)
	return nil
}

// writeLocked renders and writes one line to the enabled sinks, console
// first. A file sink failure degrades the logger to console-only output and
// is self-reported as a warning.
func (l *Logger) writeLocked(level Level, color, text string) {
	now := time.Now()
	uptime := time.Since(l.reg.start).Seconds()
	if l.logToConsole {
		line := l.builder.build(now, uptime, l.prefixLocked(l.logWithColor), level, color, text, l.cutLogPrefix, l.logWithColor)
		l.reg.console.Write(line)
	}
	if l.logToFileSystem {
		line := l.builder.build(now, uptime, l.prefixLocked(false), level, color, text, l.cutLogPrefix, false)
		if err := l.sink.write(l.name, l.reg.host.Runtime, l.reg.host.PID, line); err != nil {
			l.disableSinkLocked(err)
		}
	}
}

// disableSinkLocked forces the sink into its disabled state, flips the file
// flag off and reports the failure through this same logger. The warning
// respects the logger's level gate.
func (l *Logger) disableSinkLocked(err error) {
	l.sink.disable()
	l.logToFileSystem = false
	if l.level.allows(LevelWarning) {
		l.writeLocked(LevelWarning, colorYellow, sinkFailureText(err))
	}
}

// sinkFailureText classifies a sink failure for the self-reported warning.
// Permission failures get a specific text; anything else carries the
// stringified error.
func sinkFailureText(err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return "file logging disabled: permission denied on the log directory"
	}
	return "file logging disabled: " + stringifyValue(err)
}

// prefixLocked returns the cached prefix of the requested family, building
// it on first use. Cached values survive for the logger's lifetime.
func (l *Logger) prefixLocked(colored bool) string {
	if colored {
		if !l.haveColor {
			l.colorPrefix = buildColorPrefix(l.reg.host, l.name, l.cutLogPrefix)
			l.haveColor = true
		}
		return l.colorPrefix
	}
	if !l.havePlain {
		l.plainPrefix = buildPrefix(l.reg.host, l.name, l.cutLogPrefix)
		l.havePlain = true
	}
	return l.plainPrefix
}

// closeSink shuts the file stream without changing the file flag. Used by
// registry maintenance before the log directory is recreated.
func (l *Logger) closeSink() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.close()
}

// reopenSink recreates the sink for a logger that still has file logging
// enabled. Loggers disabled by an earlier failure are not retried; their
// flag is already off.
func (l *Logger) reopenSink() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.logToFileSystem {
		return
	}
	if err := l.sink.open(l.name, l.reg.host.Runtime, l.reg.host.PID); err != nil {
		l.disableSinkLocked(err)
	}
}

// forceDisableSink drives the sink into its disabled state from registry
// maintenance. The failure is reported once by the caller instead of per
// logger.
func (l *Logger) forceDisableSink() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.disable()
	l.logToFileSystem = false
}
