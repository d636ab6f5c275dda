// Package logging provides the simulator's structured console logger,
// adapted from the Counter-UAS simulation's pkg/logger package: the same
// level/field/prefix API, recolored through fatih/color instead of raw
// ANSI escapes since this tree already pulls that dependency in for CLI
// output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is a log severity.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel parses a string level name, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

var levelColor = map[Level]*color.Color{
	DebugLevel: color.New(color.FgHiBlack),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgRed, color.Bold),
}

var levelName = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO ",
	WarnLevel:  "WARN ",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
}

// Logger is the structured logging interface the tick pipeline, CLI, and
// batch/replay/distributed runners all log through.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithPrefix(prefix string) Logger
}

type logger struct {
	mu       sync.Mutex
	level    Level
	writer   io.Writer
	fields   map[string]interface{}
	prefix   string
	noColor  bool
	showTime bool
}

// Config configures a new Logger.
type Config struct {
	Level    Level
	Writer   io.Writer
	NoColor  bool
	ShowTime bool
}

// New builds a logger writing to stdout at InfoLevel with timestamps and
// color enabled.
func New() Logger {
	return NewWithConfig(Config{Level: InfoLevel, Writer: os.Stdout, ShowTime: true})
}

// NewWithConfig builds a logger from an explicit configuration.
func NewWithConfig(cfg Config) Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	return &logger{
		level:    cfg.Level,
		writer:   cfg.Writer,
		fields:   make(map[string]interface{}),
		noColor:  cfg.NoColor,
		showTime: cfg.ShowTime,
	}
}

func (l *logger) log(level Level, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()

	var parts []string
	if l.showTime {
		parts = append(parts, time.Now().Format("15:04:05"))
	}
	if l.noColor {
		parts = append(parts, levelName[level])
	} else {
		parts = append(parts, levelColor[level].Sprint(levelName[level]))
	}
	if l.prefix != "" {
		if l.noColor {
			parts = append(parts, "["+l.prefix+"]")
		} else {
			parts = append(parts, color.CyanString("[%s]", l.prefix))
		}
	}
	if len(l.fields) > 0 {
		var fieldParts []string
		for k, v := range l.fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, v))
		}
		fieldsStr := strings.Join(fieldParts, " ")
		if l.noColor {
			parts = append(parts, fieldsStr)
		} else {
			parts = append(parts, color.HiBlackString(fieldsStr))
		}
	}
	parts = append(parts, fmt.Sprint(args...))

	_, _ = fmt.Fprintln(l.writer, strings.Join(parts, " "))
	l.mu.Unlock()

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (l *logger) logf(level Level, format string, args ...interface{}) {
	l.log(level, fmt.Sprintf(format, args...))
}

func (l *logger) Debug(args ...interface{})                 { l.log(DebugLevel, args...) }
func (l *logger) Debugf(f string, args ...interface{})      { l.logf(DebugLevel, f, args...) }
func (l *logger) Info(args ...interface{})                  { l.log(InfoLevel, args...) }
func (l *logger) Infof(f string, args ...interface{})       { l.logf(InfoLevel, f, args...) }
func (l *logger) Warn(args ...interface{})                  { l.log(WarnLevel, args...) }
func (l *logger) Warnf(f string, args ...interface{})       { l.logf(WarnLevel, f, args...) }
func (l *logger) Error(args ...interface{})                 { l.log(ErrorLevel, args...) }
func (l *logger) Errorf(f string, args ...interface{})      { l.logf(ErrorLevel, f, args...) }
func (l *logger) Fatal(args ...interface{})                 { l.log(FatalLevel, args...) }
func (l *logger) Fatalf(f string, args ...interface{})      { l.logf(FatalLevel, f, args...) }

func (l *logger) clone() *logger {
	n := &logger{level: l.level, writer: l.writer, fields: make(map[string]interface{}), prefix: l.prefix, noColor: l.noColor, showTime: l.showTime}
	for k, v := range l.fields {
		n.fields[k] = v
	}
	return n
}

func (l *logger) WithField(key string, value interface{}) Logger {
	n := l.clone()
	n.fields[key] = value
	return n
}

func (l *logger) WithFields(fields map[string]interface{}) Logger {
	n := l.clone()
	for k, v := range fields {
		n.fields[k] = v
	}
	return n
}

func (l *logger) WithPrefix(prefix string) Logger {
	n := l.clone()
	n.prefix = prefix
	return n
}
