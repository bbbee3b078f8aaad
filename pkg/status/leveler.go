package status

import (
	"log/slog"
	"sync/atomic"
)

// DynamicLeveler is a slog.Leveler whose level can change while handlers
// built on it stay installed.
type DynamicLeveler struct {
	level atomic.Value
}

func NewDynamicLeveler(initial slog.Level) *DynamicLeveler {
	dl := &DynamicLeveler{}
	dl.level.Store(initial)

	return dl
}

// Level returns the current logging level.
func (dl *DynamicLeveler) Level() slog.Level {
	return dl.level.Load().(slog.Level)
}

// SetLevel updates the logging level.
func (dl *DynamicLeveler) SetLevel(level slog.Level) {
	dl.level.Store(level)
}
