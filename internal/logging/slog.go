package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	multi "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Options controls where log records go.
//
// Records are always written to Stdout as JSON. When File is set they are
// also written to a size-rotated file.
type Options struct {
	Level  string
	File   string
	Stdout io.Writer
}

// New builds a slog.Logger from opts, fanning records out to every sink.
// The returned closer releases the rotating file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	ho := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	handlers := []slog.Handler{slog.NewJSONHandler(out, ho)}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    64,
			MaxBackups: 8,
			MaxAge:     30,
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(file, ho))
		closer = file
	}

	return slog.New(multi.Fanout(handlers...)), closer
}

// ParseLevel maps a textual level to slog.Level; unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, withRequestID(ctx, args)...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

func withRequestID(ctx context.Context, args []any) []any {
	if id := RequestID(ctx); id != "" {
		return append(args, "request_id", id)
	}
	return args
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
