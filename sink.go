package duolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// sinkState tracks the lifecycle of a logger's file sink.
type sinkState int

const (
	sinkNone sinkState = iota
	sinkOpen
	sinkDisabled
)

// fileSink owns the append-mode log file of a single logger. All transitions
// run under the owning logger's mutex. A failure in the sink never reaches
// the caller of an emit method; the owner disables the sink and reports the
// failure itself.
type fileSink struct {
	state    sinkState
	dir      string
	fileName string
	path     string
	file     io.WriteCloser

	// openFile is swapped in tests to inject failing streams.
	openFile func(path string) (io.WriteCloser, error)
}

func newFileSink(dir string) *fileSink {
	return &fileSink{
		dir: dir,
		openFile: func(path string) (io.WriteCloser, error) {
			return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		},
	}
}

// logFileName derives the per-process file name for a logger. The timestamp
// keeps only ASCII letters and digits so the name stays filesystem-safe, and
// the pid is rendered in hex.
func logFileName(name, runtimeVersion string, ts time.Time, pid int) string {
	return fmt.Sprintf("log_%s_%s_%s_%s.log",
		name, runtimeVersion, fileSafeTimestamp(ts), strconv.FormatInt(int64(pid), 16))
}

// fileSafeTimestamp strips every non-alphanumeric character from the
// ISO-8601 rendering of ts.
func fileSafeTimestamp(ts time.Time) string {
	stamp := ts.UTC().Format(timestampLayout)
	buf := make([]byte, 0, len(stamp))
	for i := 0; i < len(stamp); i++ {
		c := stamp[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// open transitions to sinkOpen: it ensures the base directory exists,
// derives the file name and opens the stream in append mode. Calling open on
// an already open sink is a no-op.
func (s *fileSink) open(name, runtimeVersion string, pid int) error {
	if s.state == sinkOpen {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	fileName := logFileName(name, runtimeVersion, time.Now(), pid)
	path := filepath.Join(s.dir, fileName)
	file, err := s.openFile(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.state = sinkOpen
	s.fileName = fileName
	s.path = path
	s.file = file
	return nil
}

// write appends one line to the stream, opening it on first use.
func (s *fileSink) write(name, runtimeVersion string, pid int, line []byte) error {
	if s.state != sinkOpen {
		if err := s.open(name, runtimeVersion, pid); err != nil {
			return err
		}
	}
	if _, err := s.file.Write(line); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return nil
}

// close transitions to sinkNone, releasing the stream and clearing the
// cached file name and path.
func (s *fileSink) close() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.fileName = ""
	s.path = ""
	s.state = sinkNone
}

// disable transitions to sinkDisabled after an I/O failure. The stream and
// cached names are torn down; the owning logger flips its file flag off and
// reports the failure.
func (s *fileSink) disable() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.fileName = ""
	s.path = ""
	s.state = sinkDisabled
}
