// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/quire/internal/core/domain"
	"go.trai.ch/quire/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	debugLogMaxSizeMB  = 10
	debugLogMaxBackups = 3
)

// Logger implements ports.Logger using log/slog.
//
// Info, Warn and Error go to the console. Every message, Debug included,
// is also mirrored to the rotating debug file when one is configured.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	debug    *slog.Logger
	file     *lumberjack.Logger
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(w, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(w, opts))
}

// SetOutput updates the console destination. If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetJSON switches the console between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonMode = enable
	l.rebuild()
}

// SetDebugFile mirrors all messages as JSON into a rotating file at path.
// An empty path disables the debug file.
func (l *Logger) SetDebugFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
		l.file, l.debug = nil, nil
	}
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create debug log directory"), "path", path)
	}

	l.file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    debugLogMaxSizeMB,
		MaxBackups: debugLogMaxBackups,
	}
	l.debug = slog.New(slog.NewJSONHandler(l.file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return nil
}

// Close releases the debug file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file, l.debug = nil, nil
	return err
}

// Debug logs a message to the debug file only.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.debug != nil {
		l.debug.Debug(msg)
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
	if l.debug != nil {
		l.debug.Info(msg)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
	if l.debug != nil {
		l.debug.Warn(msg)
	}
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.debug != nil {
		l.debug.Error("operation failed", "error", err.Error())
	}
	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
