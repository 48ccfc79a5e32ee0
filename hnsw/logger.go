package hnsw

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with graph-specific helper methods. The zero
// value is not usable; construct one with NewLogger, NewJSONLogger, or
// NoopLogger. A *Graph is safe to construct with a nil *Logger, in which
// case logging is skipped entirely.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler falls
// back to a text handler on stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))}
}

func (l *Logger) logInsert(id int64, level int) {
	if l == nil {
		return
	}
	l.Debug("insert completed", "id", id, "level", level)
}

func (l *Logger) logSearch(k, ef, found int) {
	if l == nil {
		return
	}
	l.Debug("search completed", "k", k, "ef", ef, "found", found)
}

func (l *Logger) logBuild(count int) {
	if l == nil {
		return
	}
	l.Info("build completed", "count", count)
}

func (l *Logger) logSnapshot(nodes int, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Error("snapshot failed", "nodes", nodes, "error", err)
		return
	}
	l.Info("snapshot saved", "nodes", nodes)
}

func (l *Logger) logRestore(nodes int, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Error("restore failed", "error", err)
		return
	}
	l.Info("restore completed", "nodes", nodes)
}
