// Package appender delivers log events to their sinks. A Configuration
// owns a named set of appenders; logger configs reference them and feed
// them events.
package appender

import (
	"context"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
)

// Field is one key/value pair attached to an event.
type Field struct {
	Key   string
	Value any
}

// Event is a single log record on its way to the appenders.
type Event struct {
	Time    time.Time
	Level   level.Level
	Logger  string
	Message string
	Fields  []Field
}

// Appender writes events to a sink. Append must be safe for concurrent
// use; events arriving after Stop are dropped silently.
type Appender interface {
	Name() string
	Append(e Event)
	Stop(ctx context.Context) error
}
