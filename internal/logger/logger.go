// Package logger is the structured logger shared by generation runs, the
// HTTP API and the CLI. Events are JSON by default and can be teed into a
// rotating file.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps zerolog.
type Logger struct {
	zlog       zerolog.Logger
	timeFormat string
}

// Fields are attached to a single event.
type Fields map[string]interface{}

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	TimeFormat string // rfc3339, unix, unixms, unixmicro; applied process-wide by SetGlobal
	Output     io.Writer

	// File, when set, receives a copy of every event through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs JSON at info level to stderr, keeping stdout free for
// generated output and the MCP stdio transport.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "json",
		TimeFormat: "rfc3339",
		Output:     os.Stderr,
	}
}

var timeFormats = map[string]string{
	"unix":      zerolog.TimeFormatUnix,
	"unixms":    zerolog.TimeFormatUnixMs,
	"unixmicro": zerolog.TimeFormatUnixMicro,
}

// New creates a logger from cfg; nil means DefaultConfig. The level is set
// per logger so several loggers can coexist. TimeFormat only takes effect
// once the logger is passed to SetGlobal, since zerolog keeps the timestamp
// format in a package variable.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	tf, ok := timeFormats[cfg.TimeFormat]
	if !ok {
		tf = time.RFC3339
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if cfg.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}

	return &Logger{
		zlog: zerolog.New(out).
			Level(ParseLevel(cfg.Level)).
			With().Timestamp().Caller().Logger(),
		timeFormat: tf,
	}
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// mean info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// WithContext stores l in ctx for FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zlog.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the global one.
func FromContext(ctx context.Context) *Logger {
	zlog := zerolog.Ctx(ctx)
	if zlog.GetLevel() == zerolog.Disabled {
		return global
	}
	return &Logger{zlog: *zlog, timeFormat: global.timeFormat}
}

// With starts a child logger.
func (l *Logger) With() *Context {
	return &Context{ctx: l.zlog.With(), timeFormat: l.timeFormat}
}

// Context builds the fields of a child logger.
type Context struct {
	ctx        zerolog.Context
	timeFormat string
}

func (c *Context) Str(key, val string) *Context {
	c.ctx = c.ctx.Str(key, val)
	return c
}

func (c *Context) Int(key string, val int) *Context {
	c.ctx = c.ctx.Int(key, val)
	return c
}

func (c *Context) Err(err error) *Context {
	c.ctx = c.ctx.Err(err)
	return c
}

func (c *Context) Logger() *Logger {
	return &Logger{zlog: c.ctx.Logger(), timeFormat: c.timeFormat}
}

func (l *Logger) Debug(msg string) { l.zlog.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zlog.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zlog.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zlog.Error().Msg(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// InfoWith logs msg with fields.
func (l *Logger) InfoWith(msg string, fields Fields) {
	send(l.zlog.Info(), nil, fields, msg)
}

// WarnWith logs msg with err and fields.
func (l *Logger) WarnWith(msg string, err error, fields Fields) {
	send(l.zlog.Warn(), err, fields, msg)
}

// ErrorWith logs msg with err and fields.
func (l *Logger) ErrorWith(msg string, err error, fields Fields) {
	send(l.zlog.Error(), err, fields, msg)
}

func send(event *zerolog.Event, err error, fields Fields, msg string) {
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(map[string]interface{}(fields)).Msg(msg)
}

// HTTPEvent starts an info event for one served request.
func (l *Logger) HTTPEvent() *zerolog.Event {
	return l.zlog.Info()
}

var global = New(nil)

// L returns the process-wide logger.
func L() *Logger {
	return global
}

// SetGlobal replaces the process-wide logger and applies its time format to
// every zerolog logger in the process; call once during startup.
func SetGlobal(l *Logger) {
	global = l
	if l.timeFormat != "" {
		zerolog.TimeFieldFormat = l.timeFormat
	}
}
