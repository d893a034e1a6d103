package log

// Package log wraps zerolog with a process-wide base logger and helpers for
// component-scoped child loggers.
