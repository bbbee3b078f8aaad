// Package spi defines the capability surface between the configurator
// and context implementations. The configurator consumes these
// interfaces only; pkg/core provides the in-process implementation.
package spi

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
)

// LoggerContext is a running logging context: one configuration plus the
// live logger handles reading it.
type LoggerContext interface {
	Name() string

	// Configuration returns the context's current configuration.
	Configuration() config.Configuration

	// UpdateLoggers pushes the current configuration out to every live
	// logger handle. Safe to call concurrently with emission.
	UpdateLoggers()

	Stop(ctx context.Context) error
}

// ContextRequest carries everything a factory may use to locate or
// build a context. Factories are free to return an existing context
// unchanged regardless of Source and Location.
type ContextRequest struct {
	// CallerID tags status reports with who asked.
	CallerID string

	// Name selects a named context. Empty selects the default.
	Name string

	// Source supplies configuration content directly.
	Source *config.Source

	// Location points at configuration to load.
	Location *url.URL

	// External is an opaque handle attached to the created context.
	External any

	// CurrentOnly restricts the lookup to the current context and never
	// creates a named one.
	CurrentOnly bool
}

// ContextFactory locates or builds logger contexts.
type ContextFactory interface {
	GetContext(req ContextRequest) (LoggerContext, error)
}

// capabilitySlot wraps the registered value so the atomic slot always
// stores one concrete type.
type capabilitySlot struct {
	v any
}

var capability atomic.Value

// SetFactory registers the process-wide context capability. The slot
// holds any value; consumers type-assert the interfaces they need and
// treat a mismatch as an unusable capability.
func SetFactory(v any) {
	capability.Store(capabilitySlot{v: v})
}

// Factory returns the registered capability, nil when none is set.
func Factory() any {
	if s, ok := capability.Load().(capabilitySlot); ok {
		return s.v
	}

	return nil
}
