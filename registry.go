package duolog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/term"
)

// noopLoggerName is the reserved name of the discard singleton.
const noopLoggerName = "noop-logger"

// Registry owns the process-wide set of named loggers. Names are unique
// across live instances. Two well-known entries, the default singleton and
// the noop logger, are created on first access and survive bulk clearing.
type Registry struct {
	mu          sync.Mutex
	cfg         *Config
	host        HostInfo
	console     io.Writer
	start       time.Time
	interactive bool
	dir         string

	loggers []*Logger // insertion order
	byName  map[string]*Logger

	singleton *Logger
	noop      *Logger
}

// Option adjusts registry construction. Mainly used by tests to substitute
// the console stream and terminal detection.
type Option func(*Registry)

// WithConsoleWriter redirects console output, default os.Stdout.
func WithConsoleWriter(w io.Writer) Option {
	return func(r *Registry) { r.console = w }
}

// WithInteractive overrides interactive-terminal detection.
func WithInteractive(v bool) Option {
	return func(r *Registry) { r.interactive = v }
}

// NewRegistry validates cfg and builds an empty registry. A nil cfg selects
// the defaults.
func NewRegistry(cfg *Config, host HostInfo, opts ...Option) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalized()
	if !namePattern.MatchString(cfg.DefaultLoggerName) {
		return nil, fmt.Errorf("%w: default logger name %q", ErrInvalidName, cfg.DefaultLoggerName)
	}
	if _, err := ParseLevel(cfg.DefaultLevel); err != nil {
		return nil, err
	}

	r := &Registry{
		cfg:         cfg,
		host:        host,
		console:     os.Stdout,
		start:       time.Now(),
		interactive: term.IsTerminal(int(os.Stdout.Fd())) || term.IsTerminal(int(os.Stderr.Fd())),
		byName:      make(map[string]*Logger),
	}
	r.dir = cfg.LogDirectory
	if r.dir == "" {
		r.dir = defaultLogDirectory()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// defaultLogDirectory resolves the base directory next to the executable,
// falling back to the working directory when the executable path is unknown.
func defaultLogDirectory() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join(".", "logs")
	}
	return filepath.Join(filepath.Dir(exe), "logs")
}

// LogDirectory returns the resolved base log directory.
func (r *Registry) LogDirectory() string {
	return r.dir
}

// NewLogger creates and registers a logger. It fails when the name is
// missing, does not match the allowed pattern or is already registered, and
// when the level is not a member of the enumeration. LogToConsole is forced
// off when neither stdout nor stderr is an interactive terminal.
func (r *Registry) NewLogger(name string, level Level, toConsole, toFileSystem, withColor bool) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newLoggerLocked(name, level, toConsole, toFileSystem, withColor)
}

// NewDefaultLogger registers a logger configured from the registry defaults.
func (r *Registry) NewDefaultLogger(name string) (*Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newDefaultLoggerLocked(name)
}

func (r *Registry) newDefaultLoggerLocked(name string) (*Logger, error) {
	lvl, err := ParseLevel(r.cfg.DefaultLevel)
	if err != nil {
		return nil, err
	}
	return r.newLoggerLocked(name, lvl, r.cfg.LogToConsole, r.cfg.LogToFileSystem, r.cfg.LogWithColor)
}

func (r *Registry) newLoggerLocked(name string, level Level, toConsole, toFileSystem, withColor bool) (*Logger, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !level.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if !r.interactive {
		toConsole = false
	}
	l := &Logger{
		name:            name,
		level:           level,
		logToConsole:    toConsole,
		logToFileSystem: toFileSystem,
		logWithColor:    withColor,
		cutLogPrefix:    r.cfg.CutLogPrefix,
		sink:            newFileSink(r.dir),
		reg:             r,
		builder:         newLineBuilder(),
	}
	r.byName[name] = l
	r.loggers = append(r.loggers, l)
	return l, nil
}

// Singleton returns the default logger, creating it on first access with the
// configured default name and flags. A logger already registered under that
// name is adopted as the singleton.
func (r *Registry) Singleton() *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.singleton == nil {
		if existing, ok := r.byName[r.cfg.DefaultLoggerName]; ok {
			r.singleton = existing
		} else {
			// Name and level were validated with the registry config.
			l, _ := r.newDefaultLoggerLocked(r.cfg.DefaultLoggerName)
			r.singleton = l
		}
	}
	return r.singleton
}

// Noop returns the discard logger: level none, every sink disabled.
func (r *Registry) Noop() *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.noop == nil {
		if existing, ok := r.byName[noopLoggerName]; ok {
			r.noop = existing
		} else {
			l, _ := r.newLoggerLocked(noopLoggerName, LevelNone, false, false, false)
			r.noop = l
		}
	}
	return r.noop
}

// Get returns a registered logger by name.
func (r *Registry) Get(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byName[name]
	return l, ok
}

// Loggers returns a snapshot of the live instances in insertion order.
func (r *Registry) Loggers() []*Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Logger, len(r.loggers))
	copy(out, r.loggers)
	return out
}

// TryClearLocalLog closes every open file sink, removes and recreates the
// base log directory, then reopens the sink of every logger that still has
// file logging enabled. When the persist-local-logs flag is set the
// operation aborts with a warning unless override is true. Failures never
// propagate to the caller: they disable file logging on every instance and
// are reported through the default singleton.
func (r *Registry) TryClearLocalLog(override bool) {
	singleton := r.Singleton()
	singleton.Information("clearing local log directory")
	if r.cfg.PersistLocalLogs && !override {
		singleton.Warning("local logs are configured to persist, skipping clear (pass override to force)")
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.degradeAll()
			singleton.Warning("failed to clear local log directory: %s", stringifyValue(rec))
		}
	}()

	loggers := r.Loggers()
	for _, l := range loggers {
		l.closeSink()
	}
	if err := os.RemoveAll(r.dir); err != nil {
		r.reportClearFailure(singleton, err)
		return
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		r.reportClearFailure(singleton, err)
		return
	}
	for _, l := range loggers {
		l.reopenSink()
	}
}

// reportClearFailure degrades every file sink and emits one classified
// warning through the default singleton.
func (r *Registry) reportClearFailure(singleton *Logger, err error) {
	r.degradeAll()
	if errors.Is(err, fs.ErrPermission) {
		singleton.Warning("failed to clear local log directory: permission denied")
		return
	}
	singleton.Warning("failed to clear local log directory: %s", stringifyValue(err))
}

// degradeAll forces every logger's file sink into its disabled state.
func (r *Registry) degradeAll() {
	for _, l := range r.Loggers() {
		l.forceDisableSink()
	}
}

// TryClearAllLoggers removes every registered logger except the default
// singleton and the noop logger, closing each removed logger's file sink.
// The removed names become available again. Failures are reported through
// the default singleton and never propagate.
func (r *Registry) TryClearAllLoggers() {
	singleton := r.Singleton()
	noop := r.Noop()
	singleton.Information("clearing all registered loggers")
	defer func() {
		if rec := recover(); rec != nil {
			singleton.Warning("failed to clear loggers: %s", stringifyValue(rec))
		}
	}()

	r.mu.Lock()
	kept := make([]*Logger, 0, 2)
	var removed []*Logger
	for _, l := range r.loggers {
		if l == singleton || l == noop {
			kept = append(kept, l)
			continue
		}
		delete(r.byName, l.name)
		removed = append(removed, l)
	}
	r.loggers = kept
	r.mu.Unlock()

	for _, l := range removed {
		l.closeSink()
	}
}

// LogDirSize returns the total size in bytes of the .log files under the
// base directory.
func (r *Registry) LogDirSize() (int64, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, err
	}
	var size int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.IsDir() && filepath.Ext(entry.Name()) == ".log" {
			size += info.Size()
		}
	}
	return size, nil
}
