// Package configurator adjusts the level policy of running logger
// contexts: obtain or create a context from a configuration source,
// then raise or lower the effective level of one, several, or all
// loggers without a restart.
//
// Failures never reach the caller. They are reported on the status
// channel and the operation simply has no effect, so a misconfigured
// logging subsystem degrades instead of faulting the application that
// asked for more verbosity.
package configurator

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
)

// Configurator is a stateless service over an injected context factory.
// The zero dependencies case falls back to the ambient capability
// registered with spi.SetFactory.
type Configurator struct {
	resolver *contextResolver
	log      *slog.Logger
}

type options struct {
	factory spi.ContextFactory
	resolve LocationResolver
	log     *slog.Logger
}

// Option configures a Configurator.
type Option func(*options)

// WithFactory injects the context factory to resolve against instead of
// the ambient capability.
func WithFactory(f spi.ContextFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithLocationResolver replaces how raw location strings become URIs.
func WithLocationResolver(r LocationResolver) Option {
	return func(o *options) {
		o.resolve = r
	}
}

// WithStatusLogger replaces the status channel this instance reports
// to.
func WithStatusLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func New(opts ...Option) *Configurator {
	var o options
	for _, apply := range opts {
		apply(&o)
	}

	if o.log == nil {
		o.log = status.Logger().With("component", "configurator")
	}

	return &Configurator{
		resolver: newContextResolver(o.factory, o.resolve, o.log),
		log:      o.log,
	}
}

// InitOptions describes the context Initialize should obtain. Location
// and LocationURI are alternatives; the URI wins when both are set. A
// zero value asks for the default context with its default
// configuration.
type InitOptions struct {
	// CallerID tags status reports with who asked.
	CallerID string

	// ContextName selects a named context. Empty selects the default.
	ContextName string

	// Location is a raw configuration location: a URI or a bare file
	// path.
	Location string

	// LocationURI is a pre-resolved configuration location.
	LocationURI *url.URL

	// Source supplies configuration content directly.
	Source *config.Source

	// External is an opaque handle attached to the created context.
	External any
}

// Initialize obtains or creates a logger context per opts and returns
// it. On any failure it reports to the status channel and returns nil.
func (c *Configurator) Initialize(opts InitOptions) spi.LoggerContext {
	loc := opts.LocationURI
	if loc == nil && opts.Location != "" {
		u, err := c.resolver.resolve(opts.Location)
		if err != nil {
			c.log.Error("cannot initialize logger context",
				"context", opts.ContextName,
				"caller", opts.CallerID,
				"err", NewInvalidLocationError(opts.Location, err))

			return nil
		}

		loc = u
	}

	return c.resolver.resolveContext(spi.ContextRequest{
		CallerID: opts.CallerID,
		Name:     opts.ContextName,
		Source:   opts.Source,
		Location: loc,
		External: opts.External,
	})
}

// CurrentContext returns the caller's current context, nil when none
// can be resolved.
func (c *Configurator) CurrentContext() spi.LoggerContext {
	return c.resolver.resolveContext(spi.ContextRequest{CurrentOnly: true})
}

// SetLevel sets the level of the named logger in the current context.
// An empty name targets the root logger. A name with no exact entry
// gets one created at lvl, additive, even when an ancestor entry
// covers it. Live handles are refreshed at most once, and only when a
// level actually changed.
func (c *Configurator) SetLevel(name string, lvl level.Level) {
	c.apply(func(cfg config.Configuration) bool {
		return c.setLevelIn(cfg, name, lvl)
	})
}

// SetLevels applies a batch of level assignments. Iteration order is
// unspecified; every entry targets an independent name. Live handles
// are refreshed exactly once for the whole batch, and only when at
// least one entry changed a level.
func (c *Configurator) SetLevels(levels map[string]level.Level) {
	if len(levels) == 0 {
		return
	}

	c.apply(func(cfg config.Configuration) bool {
		changed := false
		for name, lvl := range levels {
			if c.setLevelIn(cfg, name, lvl) {
				changed = true
			}
		}

		return changed
	})
}

// SetRootLevel sets the root logger's level, refreshing live handles
// only when it moves.
func (c *Configurator) SetRootLevel(lvl level.Level) {
	c.apply(func(cfg config.Configuration) bool {
		return setConfigLevel(cfg.RootLogger(), lvl)
	})
}

// Shutdown stops the given context. A nil handle is a no-op, not an
// error.
func (c *Configurator) Shutdown(ctx context.Context, lctx spi.LoggerContext) {
	if lctx == nil {
		return
	}

	if err := lctx.Stop(ctx); err != nil {
		c.log.Error("failed to stop logger context",
			"context", lctx.Name(),
			"err", err)
	}
}

// apply resolves the current context, runs mutate against its
// configuration and propagates to live handles only when mutate
// reports a change. With no resolvable context it is a safe no-op.
func (c *Configurator) apply(mutate func(config.Configuration) bool) {
	lctx := c.CurrentContext()
	if lctx == nil {
		return
	}

	if mutate(lctx.Configuration()) {
		lctx.UpdateLoggers()
	}
}

// setLevelIn targets the exact named entry, never an ancestor. A miss
// creates the entry, which always counts as a change; a hit changes
// only when the level differs.
func (c *Configurator) setLevelIn(cfg config.Configuration, name string, lvl level.Level) bool {
	if name == "" {
		return setConfigLevel(cfg.RootLogger(), lvl)
	}

	lc, ok := cfg.ExactLoggerConfig(name)
	if !ok {
		// New entries are additive with no appenders of their own.
		cfg.AddLogger(name, config.NewLoggerConfig(name, lvl, true))

		return true
	}

	return setConfigLevel(lc, lvl)
}

// setConfigLevel is a compare-before-write: an equal level is a true
// no-op with no store.
func setConfigLevel(lc *config.LoggerConfig, lvl level.Level) bool {
	if lc.Level() == lvl {
		return false
	}

	lc.SetLevel(lvl)

	return true
}
