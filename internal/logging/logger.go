package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface shared by the evaluator, the verification
// runner and the application wiring.
type Logger interface {
	Info(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Log output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatPlain   = "plain"
)

// Formats lists the accepted log output formats.
var Formats = []string{FormatConsole, FormatJSON, FormatPlain}

// New builds the process logger on w. Console is zerolog's human-readable
// writer, json is one zerolog object per line, and plain goes through the
// standard log package with bracketed levels.
//
// Returns:
//   - Logger: the logger, filtering entries below level.
//   - error: An error if format is not one of Formats.
func New(w io.Writer, format string, level zerolog.Level, noColor bool) (Logger, error) {
	switch format {
	case "", FormatConsole:
		out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}
		zl := zerolog.New(out).With().Timestamp().Str("component", "bigcalc").Logger()
		return NewZerologAdapter(zl).WithLevel(level), nil
	case FormatJSON:
		return NewLogger(w, "bigcalc").WithLevel(level), nil
	case FormatPlain:
		return NewStdLoggerAdapter(log.New(w, "bigcalc: ", log.LstdFlags), level), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a JSON logger writing to w, tagged with component.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return NewZerologAdapter(zl)
}

// ParseLevel maps a level name (debug, info, warn, error, disabled) to a
// zerolog level. The empty string means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// WithLevel returns a copy of the adapter filtering below level.
func (a *ZerologAdapter) WithLevel(level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{logger: a.logger.Level(level)}
}

// Info logs at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Debug logs at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Error logs at error level with err attached.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// StdLoggerAdapter implements Logger on top of the standard log package.
// Entries read "[LEVEL] msg key=value ...".
type StdLoggerAdapter struct {
	logger *log.Logger
	level  zerolog.Level
}

// NewStdLoggerAdapter wraps a standard library logger, dropping entries
// below level.
func NewStdLoggerAdapter(logger *log.Logger, level zerolog.Level) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger, level: level}
}

func (a *StdLoggerAdapter) enabled(l zerolog.Level) bool {
	return a.level != zerolog.Disabled && l >= a.level
}

// Info logs with an [INFO] prefix.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	if a.enabled(zerolog.InfoLevel) {
		a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
	}
}

// Debug logs with a [DEBUG] prefix.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	if a.enabled(zerolog.DebugLevel) {
		a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
	}
}

// Error logs with an [ERROR] prefix and the error text.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if a.enabled(zerolog.ErrorLevel) {
		a.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
	}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
