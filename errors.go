package duolog

import "errors"

// Validation errors returned to callers from construction, property setters
// and emit calls. Sink I/O failures are never surfaced through these; they
// disable the affected file sink instead.
var (
	ErrMissingName    = errors.New("logger name is required")
	ErrInvalidName    = errors.New("logger name must match [A-Za-z0-9_-]{1,100}")
	ErrDuplicateName  = errors.New("logger name already registered")
	ErrInvalidLevel   = errors.New("invalid log level")
	ErrMissingMessage = errors.New("log message is required")
	ErrInvalidMessage = errors.New("log message must be a string or a string-producing function")
	ErrEmptyMessage   = errors.New("log message is empty")
)
