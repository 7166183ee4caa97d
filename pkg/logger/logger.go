package logger

import "io"

type Logger interface {
	Log(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	// With returns a logger that adds key/value pairs to every record.
	With(kv ...any) Logger
}

// Discard is a logger for tests and tools that must stay quiet.
func Discard() *BaseLogger {
	return NewLogger(io.Discard, "")
}
