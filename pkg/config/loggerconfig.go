// Package config holds the live configuration a logger context runs on:
// per-name LoggerConfig entries indexed by a registry, the appenders they
// deliver to, and the loader that builds all of it from a source.
package config

import (
	"sync/atomic"

	"github.com/Sunyelw/logging-log4j2/pkg/appender"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
)

// LoggerConfig is the configuration entry of one named logger scope. The
// empty name is the root scope. The level is read lock-free on every
// emit; additivity and the appender set are fixed at construction.
type LoggerConfig struct {
	name     string
	additive bool

	lvl       atomic.Int32
	parent    atomic.Pointer[LoggerConfig]
	appenders []appender.Appender
}

// NewLoggerConfig builds an entry. Lazily created entries pass no
// appenders and stay additive, so their events reach the root appenders
// through the parent chain.
func NewLoggerConfig(name string, lvl level.Level, additive bool, apps ...appender.Appender) *LoggerConfig {
	lc := &LoggerConfig{
		name:      name,
		additive:  additive,
		appenders: apps,
	}
	lc.lvl.Store(int32(lvl))

	return lc
}

func (lc *LoggerConfig) Name() string {
	return lc.name
}

func (lc *LoggerConfig) Additive() bool {
	return lc.additive
}

// Level returns the currently configured level.
func (lc *LoggerConfig) Level() level.Level {
	return level.Level(lc.lvl.Load())
}

// SetLevel stores a new level. The store has release semantics: once it
// returns, every subsequent Level call anywhere observes the new value.
func (lc *LoggerConfig) SetLevel(l level.Level) {
	lc.lvl.Store(int32(l))
}

// Enabled reports whether this entry admits an event at l.
func (lc *LoggerConfig) Enabled(l level.Level) bool {
	return lc.Level().Enables(l)
}

// Parent returns the nearest ancestor entry, nil for the root.
func (lc *LoggerConfig) Parent() *LoggerConfig {
	return lc.parent.Load()
}

func (lc *LoggerConfig) setParent(p *LoggerConfig) {
	lc.parent.Store(p)
}

// AppenderNames lists the appenders attached directly to this entry.
func (lc *LoggerConfig) AppenderNames() []string {
	names := make([]string, 0, len(lc.appenders))
	for _, a := range lc.appenders {
		names = append(names, a.Name())
	}

	return names
}

// Log delivers an event to this entry's appenders and, while entries
// are additive, to their ancestors' appenders up to the root.
func (lc *LoggerConfig) Log(e appender.Event) {
	for cur := lc; cur != nil; cur = cur.Parent() {
		for _, a := range cur.appenders {
			a.Append(e)
		}

		if !cur.additive {
			return
		}
	}
}
