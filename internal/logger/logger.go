// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// replica-keeper client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain call-scoped
// loggers via FromContext.
//
// Besides JSON output the package can format entries as human-readable
// "[timestamp] - message" lines and hand them to a [Sink], which is how the
// console and any host application receive the client log.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

// maxProgressiveLogFiles bounds the search for a free daily log file name.
const maxProgressiveLogFiles = 1000

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a *Logger for the given role label writing JSON
// entries to os.Stdout.
//
// The logger is configured with:
//   - global log level set to Debug (all levels are emitted);
//   - a "role" field set to role;
//   - a timestamp on every entry;
//   - a "func" caller field holding the fully-qualified function name.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewClientLogger constructs a *Logger that writes JSON entries to a daily
// log file inside dir, named "<role>.<YYYY-MM-DD>_<n>.log" where n is the
// first progressive number not used yet. The file is rotated by lumberjack.
//
// level is parsed with zerolog.ParseLevel; an empty or invalid value falls
// back to Debug. If the directory cannot be created the logger falls back to
// os.Stdout.
func NewClientLogger(role, dir, level string) *Logger {
	setLevel(level)

	var out io.Writer = os.Stdout
	if name, err := nextLogFileName(afero.NewOsFs(), dir, role, time.Now()); err == nil {
		out = &lumberjack.Logger{
			Filename:   name,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
		}
	}

	logger := zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewSinkLogger constructs a *Logger that formats every entry as a single
// "[timestamp] - LEVEL message key=value" line and passes it to sink.
// Additional writers (e.g. a JSON log file) receive the raw JSON entries.
func NewSinkLogger(role string, sink Sink, extra ...io.Writer) *Logger {
	console := zerolog.ConsoleWriter{
		Out:        &sinkWriter{sink: sink},
		NoColor:    true,
		TimeFormat: time.RFC3339,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"role", zerolog.CallerFieldName},
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%v] -", i)
		},
	}

	writers := append([]io.Writer{console}, extra...)

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext attaches the logger to ctx so that FromContext can retrieve it
// further down the call chain.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

func setLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// nextLogFileName returns the first "<role>.<date>_<n>.log" path in dir that
// does not exist yet, creating dir when needed.
func nextLogFileName(fs afero.Fs, dir, role string, now time.Time) (string, error) {
	if dir == "" {
		execPath, err := os.Executable()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(filepath.Dir(execPath), "logs")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	date := now.UTC().Format(time.DateOnly)
	for n := 1; n <= maxProgressiveLogFiles; n++ {
		name := filepath.Join(dir, fmt.Sprintf("%s.%s_%03d.log", role, date, n))
		exists, err := afero.Exists(fs, name)
		if err != nil {
			return "", fmt.Errorf("check log file %s: %w", name, err)
		}
		if !exists {
			return name, nil
		}
	}

	return "", fmt.Errorf("no free log file name in %s", dir)
}
