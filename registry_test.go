package duolog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSingletonIsLazyAndStable(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	s1 := reg.Singleton()
	s2 := reg.Singleton()
	if s1 != s2 {
		t.Error("Singleton should return the same instance")
	}
	if s1.Name() != "singleton-logger" {
		t.Errorf("singleton name = %q", s1.Name())
	}
}

func TestSingletonAdoptsExistingName(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	own, err := reg.NewLogger("singleton-logger", LevelError, false, false, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if reg.Singleton() != own {
		t.Error("singleton should adopt the logger already holding the default name")
	}
}

func TestNoopEmitsNothing(t *testing.T) {
	reg, buf := newTestRegistry(t, nil)

	noop := reg.Noop()
	if noop.Level() != LevelNone {
		t.Errorf("noop level = %s, want none", noop.Level())
	}
	noop.Error("should vanish")
	noop.Information("should vanish too")
	if buf.Len() != 0 {
		t.Errorf("noop produced output: %q", buf.String())
	}
	if noop.LogToFileSystem() || noop.LogToConsole() {
		t.Error("noop sinks should be disabled")
	}
}

func TestTryClearAllLoggers(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	singleton := reg.Singleton()
	noop := reg.Noop()
	a, err := reg.NewLogger("a", LevelInfo, false, true, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if _, err := reg.NewLogger("b", LevelInfo, false, false, false); err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	a.Information("open the sink")
	if a.FileName() == "" {
		t.Fatal("expected an open sink before clearing")
	}

	reg.TryClearAllLoggers()

	live := reg.Loggers()
	if len(live) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(live))
	}
	if live[0] != singleton || live[1] != noop {
		t.Error("survivors should be the singleton and the noop logger, in order")
	}
	if a.FileName() != "" {
		t.Error("removed logger's sink should be closed")
	}
	if _, ok := reg.Get("a"); ok {
		t.Error("removed name still resolvable")
	}

	// Cleared names become available again.
	if _, err := reg.NewLogger("a", LevelInfo, false, false, false); err != nil {
		t.Errorf("name not reusable after clear: %v", err)
	}
}

func TestTryClearLocalLogRespectsPersistFlag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PersistLocalLogs = true
	reg, buf := newTestRegistry(t, cfg)

	marker := filepath.Join(reg.LogDirectory(), "marker.log")
	if err := os.WriteFile(marker, []byte("keep"), 0644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	reg.TryClearLocalLog(false)

	if _, err := os.Stat(marker); err != nil {
		t.Error("directory was mutated despite the persist flag")
	}
	if !strings.Contains(buf.String(), "[WARNING]") {
		t.Error("expected a warning about persisted logs")
	}
}

func TestTryClearLocalLogOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PersistLocalLogs = true
	reg, _ := newTestRegistry(t, cfg)

	l, err := reg.NewLogger("writer", LevelInfo, false, true, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	l.Information("open the sink")
	oldName := l.FileName()
	if oldName == "" {
		t.Fatal("expected an open sink")
	}

	marker := filepath.Join(reg.LogDirectory(), "marker.log")
	if err := os.WriteFile(marker, []byte("stale"), 0644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	reg.TryClearLocalLog(true)

	if _, err := os.Stat(marker); !errors.Is(err, os.ErrNotExist) {
		t.Error("override should remove the old directory contents")
	}
	if _, err := os.Stat(reg.LogDirectory()); err != nil {
		t.Error("base directory should be recreated")
	}
	if l.FileName() == "" {
		t.Error("file-logging instance's sink should be reopened")
	}
	if !l.LogToFileSystem() {
		t.Error("file flag should survive the clear")
	}
}

func TestTryClearLocalLogSkipsDisabledSinks(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	l, err := reg.NewLogger("cold", LevelInfo, false, false, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	reg.TryClearLocalLog(false)

	if l.FileName() != "" || l.LogToFileSystem() {
		t.Error("instance without file logging should stay untouched")
	}
}

func TestLogDirSize(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	if err := os.WriteFile(filepath.Join(reg.LogDirectory(), "one.log"), []byte("12345"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(reg.LogDirectory(), "ignored.txt"), []byte("nope"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	size, err := reg.LogDirSize()
	if err != nil {
		t.Fatalf("LogDirSize: %v", err)
	}
	if size != 5 {
		t.Errorf("size = %d, want 5", size)
	}
}

func TestNewRegistryValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLoggerName = "not a valid name"
	if _, err := NewRegistry(cfg, testHost()); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.DefaultLevel = "verbose"
	if _, err := NewRegistry(cfg, testHost()); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestLoggersSnapshotOrder(t *testing.T) {
	reg, _ := newTestRegistry(t, nil)

	names := []string{"first", "second", "third"}
	for _, n := range names {
		if _, err := reg.NewLogger(n, LevelInfo, false, false, false); err != nil {
			t.Fatalf("NewLogger(%q): %v", n, err)
		}
	}

	live := reg.Loggers()
	if len(live) != len(names) {
		t.Fatalf("got %d loggers, want %d", len(live), len(names))
	}
	for i, n := range names {
		if live[i].Name() != n {
			t.Errorf("position %d = %q, want %q", i, live[i].Name(), n)
		}
	}
}
