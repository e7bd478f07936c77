// Package output provides console and file logging for kiro-merge.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"kiro.dev/kiro-merge/internal/config"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides structured logging and output.
// Info and Debug go to stdout; Warn and Error go to stderr.
type Splog struct {
	logger    *slog.Logger
	errLogger *slog.Logger
	logWriter io.WriteCloser // Lumberjack logger for file logging
}

// NewSplogWithWriters creates a console-only splog writing to the given streams.
func NewSplogWithWriters(stdout, stderr io.Writer, debug bool) *Splog {
	return newSplog(stdout, stderr, debug, nil)
}

// NewSplogWithConfig creates a splog from cfg. When cfg.LogFile is set, every
// record (debug included) is also written, timestamped, to a rotated log file.
func NewSplogWithConfig(cfg *config.Config, stdout, stderr io.Writer) (*Splog, error) {
	var fileLogger *lumberjack.Logger
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileLogger = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
			Compress:   false,
		}
	}
	return newSplog(stdout, stderr, cfg.Debug, fileLogger), nil
}

func newSplog(stdout, stderr io.Writer, debug bool, fileLogger *lumberjack.Logger) *Splog {
	splog := &Splog{}

	outHandlers := []slog.Handler{&simpleHandler{writer: stdout, debugMode: debug}}
	errHandlers := []slog.Handler{&simpleHandler{writer: stderr, debugMode: debug}}

	if fileLogger != nil {
		splog.logWriter = fileLogger
		fileHandler := slog.NewTextHandler(fileLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug, // Always log everything to file
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		outHandlers = append(outHandlers, fileHandler)
		errHandlers = append(errHandlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: outHandlers})
	splog.errLogger = slog.New(&multiHandler{handlers: errHandlers})
	return splog
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(msg string, args ...interface{}) {
	s.logger.Log(context.Background(), slog.LevelInfo, format(msg, args))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(msg string, args ...interface{}) {
	s.logger.Log(context.Background(), slog.LevelDebug, format(msg, args))
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(msg string, args ...interface{}) {
	s.errLogger.Log(context.Background(), slog.LevelWarn, format(msg, args))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(msg string, args ...interface{}) {
	s.errLogger.Log(context.Background(), slog.LevelError, format(msg, args))
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
