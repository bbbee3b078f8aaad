// Package core is the in-process implementation of the spi capability
// layer: live logger contexts, the handles they hand out, the factory
// that caches contexts by name, and the watcher that reloads a context
// when its configuration file changes.
package core

import (
	"sync/atomic"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/appender"
	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
)

const badKey = "!BADKEY"

// Logger is a named handle into a context. Handles are long-lived and
// cache the LoggerConfig they resolved against the current
// configuration, so the emit path is two atomic loads and never touches
// the registry.
type Logger struct {
	name string
	ctx  *LoggerContext
	cfg  atomic.Pointer[config.LoggerConfig]
}

func newLogger(name string, ctx *LoggerContext) *Logger {
	return &Logger{name: name, ctx: ctx}
}

func (l *Logger) Name() string {
	return l.name
}

// Context returns the owning context.
func (l *Logger) Context() *LoggerContext {
	return l.ctx
}

// Level returns the effective configured level.
func (l *Logger) Level() level.Level {
	if lc := l.cfg.Load(); lc != nil {
		return lc.Level()
	}

	return level.Off
}

// Enabled reports whether an event at lvl would be emitted.
func (l *Logger) Enabled(lvl level.Level) bool {
	lc := l.cfg.Load()

	return lc != nil && lc.Enabled(lvl)
}

// refresh re-resolves the cached entry against cfg.
func (l *Logger) refresh(cfg config.Configuration) {
	if cfg == nil {
		return
	}

	l.cfg.Store(cfg.LoggerConfig(l.name))
}

func (l *Logger) Trace(msg string, args ...any) { l.log(level.Trace, msg, args) }
func (l *Logger) Debug(msg string, args ...any) { l.log(level.Debug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(level.Info, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(level.Warn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(level.Error, msg, args) }
func (l *Logger) Fatal(msg string, args ...any) { l.log(level.Fatal, msg, args) }

// Log emits at an arbitrary level, custom ordinals included.
func (l *Logger) Log(lvl level.Level, msg string, args ...any) {
	l.log(lvl, msg, args)
}

func (l *Logger) log(lvl level.Level, msg string, args []any) {
	lc := l.cfg.Load()
	if lc == nil || !lc.Enabled(lvl) {
		return
	}

	lc.Log(appender.Event{
		Time:    time.Now(),
		Level:   lvl,
		Logger:  l.name,
		Message: msg,
		Fields:  fields(args),
	})
}

// fields pairs slog-style variadic arguments into event fields. A
// non-string key or a dangling value is kept under the bad key marker.
func fields(args []any) []appender.Field {
	if len(args) == 0 {
		return nil
	}

	out := make([]appender.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			out = append(out, appender.Field{Key: badKey, Value: args[i]})
			i++

			continue
		}

		out = append(out, appender.Field{Key: key, Value: args[i+1]})
		i += 2
	}

	return out
}
