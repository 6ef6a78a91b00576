package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/APrigarina/open-model-zoo/internal/env"
)

// Options configures logger construction.
type Options struct {
	level     slog.Level
	logToFile bool
	logFile   string
}

// Option mutates logger Options.
type Option func(*Options)

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.level = level
	}
}

// WithLogToFile enables mirroring log output to a rotating file.
func WithLogToFile(enabled bool) Option {
	return func(o *Options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path used when file logging is enabled.
func WithLogFile(path string) Option {
	return func(o *Options) {
		o.logFile = path
	}
}

// New creates a slog.Logger for the given environment.
// Development uses a colored console handler, production uses JSON.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	options := &Options{
		level:   slog.LevelInfo,
		logFile: "logs/open-model-zoo.log",
	}
	for _, opt := range opts {
		opt(options)
	}

	out := io.Writer(os.Stdout)
	if options.logToFile {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   options.logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	var handler slog.Handler
	switch environment {
	case env.Production:
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: options.level})
	default:
		handler = tint.NewHandler(out, &tint.Options{
			Level:      options.level,
			TimeFormat: time.Kitchen,
		})
	}

	return slog.New(handler)
}
