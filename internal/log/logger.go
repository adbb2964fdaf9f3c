// Package log is the structured, leveled logger used across lookat.
// It is a thin layer over logrus that adds the Field helper, error-aware
// fields and a replaceable process-wide logger.
package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"lookat/internal/errors"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out   io.Writer
	json  bool
	file  string
	level logrus.Level
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sets the writer log lines go to (stderr by default).
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log lines to the file at path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithLevel sets the minimum level by name (debug, info, warn, error).
// Unknown names keep the default.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			o.level = lvl
		}
	}
}

// Logger writes structured log entries.
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
	file  *os.File
}

// NewLogger creates a logger from options.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stderr, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	base := logrus.New()
	// gating happens in Logger so SetDebug can flip it at runtime
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{level: o.level}
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyLevel: "level",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the process-wide logger.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil {
		_ = old.Close()
	}
}

// SetDebug enables or disables debug output for every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a logger that adds fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), level: l.level, file: l.file}
}

// WithContext attaches ctx to the entry.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), level: l.level, file: l.file}
}

// WithError adds err and its classification as fields.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) enabled(lvl logrus.Level) bool {
	if lvl == logrus.DebugLevel && isDebug {
		return true
	}
	return l.level >= lvl
}

func (l *Logger) Debug(args ...interface{}) {
	if l.enabled(logrus.DebugLevel) {
		l.entry.Debug(args...)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.enabled(logrus.DebugLevel) {
		l.entry.Debugf(format, args...)
	}
}

func (l *Logger) Info(args ...interface{}) {
	if l.enabled(logrus.InfoLevel) {
		l.entry.Info(args...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.enabled(logrus.InfoLevel) {
		l.entry.Infof(format, args...)
	}
}

func (l *Logger) Warn(args ...interface{}) {
	if l.enabled(logrus.WarnLevel) {
		l.entry.Warn(args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.enabled(logrus.WarnLevel) {
		l.entry.Warnf(format, args...)
	}
}

func (l *Logger) Error(args ...interface{}) {
	if l.enabled(logrus.ErrorLevel) {
		l.entry.Error(args...)
	}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.enabled(logrus.ErrorLevel) {
		l.entry.Errorf(format, args...)
	}
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var navErr *errors.NavigationError
	if errors.As(err, &navErr) && navErr.Operation() != "" {
		fields = append(fields, F("operation", navErr.Operation()))
	}
	return fields
}

// LogWithFields returns the process logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the process logger with error fields attached.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	logger.WithError(err).Error(msg)
}

func Debug(args ...interface{}) { logger.Debug(args...) }

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

func Info(args ...interface{}) { logger.Info(args...) }

func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

// Warn logs a warning message
func Warn(args ...interface{}) { logger.Warn(args...) }

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

// Error logs an error message
func Error(args ...interface{}) { logger.Error(args...) }

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
