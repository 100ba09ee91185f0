package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log levels supported by the logger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the name of the log file inside the log directory.
const FileName = "rfpdesk.log"

// Attribute keys the log viewer filters on.
const (
	KeyOperation = "operation"
	KeySession   = "session_id"
	KeyRequest   = "request_id"
)

var slogLevels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// Options controls file output and rotation.
type Options struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept.
	MaxBackups int
	// Compress gzips rotated files.
	Compress bool
}

// sink is the destination shared by a root logger and all its children.
type sink struct {
	mu     sync.Mutex
	closer io.Closer
}

func (s *sink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// Logger writes JSON lines through slog. Child loggers created with the
// With methods carry their attributes on every line. It is safe for
// concurrent use.
type Logger struct {
	slog *slog.Logger
	sink *sink
}

// NewLogger creates a Logger that writes JSON lines to {dir}/rfpdesk.log,
// rotated by lumberjack. If dir is empty, logs go to stderr.
func NewLogger(dir string, opts Options) (*Logger, error) {
	out := io.Writer(os.Stderr)
	s := &sink{}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(dir, FileName),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   opts.Compress,
		}
		out = rotator
		s.closer = rotator
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slogLevels[ParseLevel(opts.Level)]})
	return &Logger{slog: slog.New(handler), sink: s}, nil
}

// NopLogger returns a Logger that discards all log output.
func NopLogger() *Logger {
	return &Logger{slog: slog.New(slog.NewJSONHandler(io.Discard, nil)), sink: &sink{}}
}

// WithSession returns a child Logger tagged with a backend session id.
func (l *Logger) WithSession(sessionID int) *Logger {
	return l.child(slog.Int(KeySession, sessionID))
}

// WithOperation returns a child Logger tagged with a gateway operation name.
func (l *Logger) WithOperation(op string) *Logger {
	return l.child(slog.String(KeyOperation, op))
}

// With returns a child Logger with alternating key-value attributes.
// Pairs whose key is not a string are dropped.
func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs = append(attrs, slog.Any(key, args[i+1]))
		}
	}
	if len(attrs) == 0 {
		return l
	}
	return l.child(attrs...)
}

func (l *Logger) child(attrs ...any) *Logger {
	return &Logger{slog: l.slog.With(attrs...), sink: l.sink}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Close closes the log file. Loggers writing to stderr are unaffected.
// Children share the file with their root, so close only the root.
func (l *Logger) Close() error {
	return l.sink.close()
}

// ParseLevel normalizes a level name. Unknown names become LevelInfo.
func ParseLevel(level string) string {
	upper := strings.ToUpper(strings.TrimSpace(level))
	if _, ok := slogLevels[upper]; ok {
		return upper
	}
	return LevelInfo
}

// ValidLevels returns the list of valid log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
