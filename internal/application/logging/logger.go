package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger provides structured logging for commands and queries
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "WARNING": 2, "ERROR": 3}

// StdLogger writes log lines through the standard library logger
type StdLogger struct {
	out      *log.Logger
	minLevel int
	json     bool
	now      func() time.Time
}

// NewStdLogger creates a logger writing to w. Level is one of debug, info, warn,
// error; format is json or text.
func NewStdLogger(w io.Writer, level, format string) *StdLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank["INFO"]
	}
	return &StdLogger{
		out:      log.New(w, "", 0),
		minLevel: rank,
		json:     format == "json",
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Log writes one entry when level is at or above the configured minimum
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank, ok := levelRank[level]; ok && rank < l.minLevel {
		return
	}
	ts := l.now().Format(time.RFC3339)

	if l.json {
		entry := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["time"] = ts
		entry["level"] = level
		entry["msg"] = message
		line, err := json.Marshal(entry)
		if err != nil {
			l.out.Printf(`{"time":%q,"level":"ERROR","msg":"unencodable log entry: %v"}`, ts, err)
			return
		}
		l.out.Println(string(line))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s", ts, level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, metadata[k])
	}
	l.out.Println(sb.String())
}
