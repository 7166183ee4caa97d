package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// BaseLogger печатает сообщения с префиксом компонента через slog.
type BaseLogger struct {
	prefix string
	out    *slog.Logger
	attrs  []any
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &BaseLogger{
		prefix: prefix,
		out:    slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.emit(slog.LevelInfo, format, v...)
}

func (l *BaseLogger) Warn(format string, v ...interface{}) {
	l.emit(slog.LevelWarn, format, v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.emit(slog.LevelError, format, v...)
}

func (l *BaseLogger) emit(level slog.Level, format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	args := append([]any{"component", l.prefix}, l.attrs...)
	l.out.Log(context.Background(), level, message, args...)
}

// With returns a child logger; the parent is left untouched.
func (l *BaseLogger) With(kv ...any) Logger {
	attrs := make([]any, 0, len(l.attrs)+len(kv))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, kv...)
	return &BaseLogger{prefix: l.prefix, out: l.out, attrs: attrs}
}
