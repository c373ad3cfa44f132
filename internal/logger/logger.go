package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a thin leveled wrapper around zerolog. Handlers and pipelines
// take it by pointer so call sites stay printf-style.
type Logger struct {
	base zerolog.Logger
}

func New(level string) *Logger {
	return NewWithFormat(level, os.Getenv("LOG_FORMAT"))
}

func NewWithFormat(level, format string) *Logger {
	var output = zerolog.New(os.Stdout)
	if format == "console" || format == "" {
		output = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}

	base := output.With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{base: base}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.base.Debug().Msgf(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.base.Info().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.base.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.base.Error().Msgf(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.base.Fatal().Msgf(msg, args...)
}
