package biome

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the leveled sink every module writes through. Debug lines are
// dropped unless debug output is enabled.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel uint8

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

func (lv logLevel) String() string { return levelNames[lv] }

// DefaultLogger writes "[prefix] LEVEL: message" lines. Debug and info go
// to the regular stream, warn and error to the error stream.
type DefaultLogger struct {
	tag     string
	debug   atomic.Bool
	streams [2]*log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(prefix, debug, os.Stdout, os.Stderr)
}

// NewWriterLogger is NewDefaultLogger with explicit writers. out and errOut
// may be the same writer.
func NewWriterLogger(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	const flags = log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		streams: [2]*log.Logger{log.New(out, "", flags), log.New(errOut, "", flags)},
	}
	if prefix != "" {
		l.tag = "[" + prefix + "] "
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool    { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) emit(lv logLevel, format string, args ...any) {
	if lv == levelDebug && !l.DebugEnabled() {
		return
	}
	stream := l.streams[0]
	if lv >= levelWarn {
		stream = l.streams[1]
	}
	stream.Print(l.tag + lv.String() + ": " + fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.emit(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(levelError, format, args...) }

// LoggingModule makes a Logger available to every system through
// App.Logger. Without an explicit Logger it builds a DefaultLogger.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Logger Logger
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	sink := m.Logger
	if sink == nil {
		sink = NewDefaultLogger(m.Prefix, m.Debug)
	}
	app.addResources(&loggerResource{Logger: sink})
}

type loggerResource struct {
	Logger
}

// discard satisfies Logger and drops everything.
type discard struct{}

func NewNopLogger() Logger { return discard{} }

func (discard) DebugEnabled() bool    { return false }
func (discard) SetDebug(bool)         {}
func (discard) Debugf(string, ...any) {}
func (discard) Infof(string, ...any)  {}
func (discard) Warnf(string, ...any)  {}
func (discard) Errorf(string, ...any) {}

// Logger returns the installed logger. An app without a LoggingModule, or
// a nil app, gets a logger that drops everything.
func (app *App) Logger() Logger {
	if app != nil {
		if res, ok := Resource[loggerResource](app); ok && res.Logger != nil {
			return res.Logger
		}
	}
	return NewNopLogger()
}
