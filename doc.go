// Package duolog provides named, leveled logging with dual console and file
// sinks and a process-wide registry enforcing unique logger names.
//
// Features:
//   - Fixed severity order: none, error, warning, info, debug, trace
//   - Deterministic metadata prefixes (long or short, plain or colorized)
//   - One append-mode log file per logger, created lazily per process
//   - Self-disabling file sink: I/O failures degrade to console-only
//     logging and are reported through the affected logger itself
//   - Registry maintenance: clear the log directory, clear all loggers
//   - Configuration from defaults, DUOLOG_* environment variables or TOML
//   - Trace-level entries carry a call stack instead of the bare message
//
// Prefixes are computed once per logger on first use and cached for the
// logger's lifetime.
package duolog
