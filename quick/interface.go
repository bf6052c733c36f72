package quick

import (
	"sync"

	"github.com/revenlok/duolog"
)

var (
	mu       sync.Mutex
	registry *duolog.Registry
)

// Init builds the process-wide registry from "key=value" settings, for
// example quick.Init("default_level=debug", "log_with_color=false").
// Keys match the duolog.Config toml tags.
func Init(args ...string) error {
	cfg, err := config(args...)
	if err != nil {
		return err
	}
	reg, err := duolog.NewRegistry(cfg, duolog.DetectHost())
	if err != nil {
		return err
	}
	mu.Lock()
	registry = reg
	mu.Unlock()
	return nil
}

// Registry returns the process-wide registry, creating it with defaults on
// first access.
func Registry() *duolog.Registry {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		// The default configuration always validates.
		registry, _ = duolog.NewRegistry(nil, duolog.DetectHost())
	}
	return registry
}

// I logs an info message through the default singleton.
func I(msg any, args ...any) error {
	return Registry().Singleton().Information(msg, args...)
}

// W logs a warning message through the default singleton.
func W(msg any, args ...any) error {
	return Registry().Singleton().Warning(msg, args...)
}

// E logs an error message through the default singleton.
func E(msg any, args ...any) error {
	return Registry().Singleton().Error(msg, args...)
}

// D logs a debug message through the default singleton.
func D(msg any, args ...any) error {
	return Registry().Singleton().Debug(msg, args...)
}

// T logs a trace message through the default singleton; the emitted body is
// a call stack headed by the message text.
func T(msg any, args ...any) error {
	return Registry().Singleton().Trace(msg, args...)
}
