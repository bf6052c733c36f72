package duolog

// ANSI markup written around colored line segments. The codes are treated as
// an opaque enumeration; nothing outside this file composes escape sequences.
const (
	colorReset   = "\033[0m"
	colorDefault = "\033[39m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)
