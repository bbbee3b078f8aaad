package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
)

// LoggerContext runs one configuration and hands out the logger handles
// reading it.
type LoggerContext struct {
	name     string
	external any

	mu  sync.RWMutex
	cfg config.Configuration

	loggers sync.Map // logger name -> *Logger

	watcher *Watcher

	stopped   atomic.Bool
	startTime time.Time
	log       *slog.Logger
}

// NewLoggerContext assembles a context around cfg. The factory starts
// it before handing it out.
func NewLoggerContext(name string, cfg config.Configuration, external any) *LoggerContext {
	return &LoggerContext{
		name:     name,
		external: external,
		cfg:      cfg,
		log:      status.Logger().With("component", "context", "context", name),
	}
}

func (c *LoggerContext) Name() string {
	return c.name
}

// External returns the opaque handle the context was created with.
func (c *LoggerContext) External() any {
	return c.external
}

// StartTime returns when the context started, zero before start.
func (c *LoggerContext) StartTime() time.Time {
	return c.startTime
}

// Configuration returns the current configuration.
func (c *LoggerContext) Configuration() config.Configuration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.cfg
}

// GetLogger returns the handle for name, creating it on first use. All
// callers asking for one name share a single handle.
func (c *LoggerContext) GetLogger(name string) *Logger {
	if v, ok := c.loggers.Load(name); ok {
		return v.(*Logger)
	}

	v, loaded := c.loggers.LoadOrStore(name, newLogger(name, c))
	lg := v.(*Logger)
	if !loaded {
		// Resolve after insertion: a concurrent configuration swap
		// either finds the handle in its update pass or this refresh
		// already reads the new configuration.
		lg.refresh(c.Configuration())
	}

	return lg
}

// Loggers snapshots the live handles.
func (c *LoggerContext) Loggers() []*Logger {
	var out []*Logger

	c.loggers.Range(func(_, v any) bool {
		out = append(out, v.(*Logger))
		return true
	})

	return out
}

// UpdateLoggers re-resolves every live handle against the current
// configuration. Safe to call concurrently with emission and with
// handle creation.
func (c *LoggerContext) UpdateLoggers() {
	cfg := c.Configuration()

	c.loggers.Range(func(_, v any) bool {
		v.(*Logger).refresh(cfg)
		return true
	})
}

// SetConfiguration starts next, swaps it in, refreshes all handles and
// stops the configuration it replaced.
func (c *LoggerContext) SetConfiguration(ctx context.Context, next config.Configuration) error {
	if next == nil {
		return errors.New("nil configuration")
	}

	if err := next.Start(ctx); err != nil {
		return fmt.Errorf("failed to start configuration: %w", err)
	}

	c.mu.Lock()
	prev := c.cfg
	c.cfg = next
	c.mu.Unlock()

	c.UpdateLoggers()

	if prev != nil && prev != next {
		if err := prev.Stop(ctx); err != nil {
			c.log.Warn("failed to stop previous configuration", "err", err)
		}
	}

	c.log.Debug("configuration swapped", "configuration", next.Name())

	return nil
}

// Reconfigure reloads from the original source. A failed reload keeps
// the running configuration in place.
func (c *LoggerContext) Reconfigure(ctx context.Context) error {
	src := c.Configuration().Source()
	if src == nil {
		return errors.New("configuration has no reloadable source")
	}

	next, err := config.Load(ctx, src)
	if err != nil {
		c.log.Error("reconfigure failed, keeping previous configuration",
			"source", src.String(),
			"err", err)

		return err
	}

	if err := c.SetConfiguration(ctx, next); err != nil {
		return err
	}

	c.log.Info("context reconfigured", "source", src.String())

	return nil
}

// start brings the configuration and the optional watcher up.
func (c *LoggerContext) start(ctx context.Context) error {
	c.startTime = time.Now()

	if err := c.Configuration().Start(ctx); err != nil {
		return err
	}

	if c.watcher != nil {
		if err := c.watcher.Start(); err != nil {
			c.log.Warn("configuration watcher failed to start", "err", err)
			c.watcher = nil
		}
	}

	return nil
}

// Stop shuts the context down, watcher first, then the configuration
// and its appenders. Stopping twice is a no-op.
func (c *LoggerContext) Stop(ctx context.Context) error {
	if !c.stopped.CompareAndSwap(false, true) {
		return nil
	}

	if c.watcher != nil {
		c.watcher.Stop()
	}

	c.log.Debug("context stopped")

	return c.Configuration().Stop(ctx)
}
