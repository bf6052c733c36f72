package duolog

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestResolveMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     any
		args    []any
		want    string
		wantErr error
	}{
		{"literal", "hello", nil, "hello", nil},
		{"verbatim without args", "load %d%%", nil, "load %d%%", nil},
		{"interpolated", "slot %d: %s", []any{3, "slow"}, "slot 3: slow", nil},
		{"supplier", func() string { return "built" }, nil, "built", nil},
		{"supplier interpolated", func() string { return "n=%d" }, []any{7}, "n=7", nil},
		{"any supplier string", func() any { return "ok" }, nil, "ok", nil},
		{"nil message", nil, nil, "", ErrMissingMessage},
		{"empty literal", "", nil, "", ErrEmptyMessage},
		{"empty supplier", func() string { return "" }, nil, "", ErrEmptyMessage},
		{"non-string supplier", func() any { return 42 }, nil, "", ErrInvalidMessage},
		{"wrong type", 42, nil, "", ErrInvalidMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveMessage(tt.msg, tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolved %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineBuilderPlain(t *testing.T) {
	ts := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	b := newLineBuilder()

	line := string(b.build(ts, 1.5, "[10.1.2.3][testhost][api]", LevelInfo, colorGreen, "hello", false, false))
	want := "[2026-08-27T10:30:00.000Z][1.5000000][10.1.2.3][testhost][api][INFO] hello\n"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestLineBuilderCutOmitsUptime(t *testing.T) {
	ts := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	b := newLineBuilder()

	line := string(b.build(ts, 1.5, "[api]", LevelError, colorRed, "boom", true, false))
	want := "[2026-08-27T10:30:00.000Z][api][ERROR] boom\n"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestLineBuilderColored(t *testing.T) {
	ts := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	b := newLineBuilder()

	line := string(b.build(ts, 0, "", LevelWarning, colorYellow, "careful", true, true))
	want := colorDefault + "[2026-08-27T10:30:00.000Z]" + colorReset +
		colorYellow + "[WARNING]" + colorReset +
		" " + colorYellow + "careful" + colorReset + "\n"
	if line != want {
		t.Errorf("line = %q, want %q", line, want)
	}
}

func TestCaptureStackMultiline(t *testing.T) {
	got := captureStack("trace label", 1)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected multi-line stack, got %q", got)
	}
	if lines[0] != "trace label" {
		t.Errorf("first line = %q, want the message text", lines[0])
	}
	for _, frame := range lines[1:] {
		if !strings.HasPrefix(frame, "    at ") {
			t.Errorf("frame line %q missing 'at' marker", frame)
		}
	}
}

func TestStringifyValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{errors.New("broken pipe"), "broken pipe"},
		{"plain text", "plain text"},
		{nil, "(unknown error)"},
		{"", "(unknown error)"},
		{42, "42"},
	}
	for _, tt := range tests {
		if got := stringifyValue(tt.in); got != tt.want {
			t.Errorf("stringifyValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
