package config

import (
	"context"
	"sync/atomic"

	"github.com/Sunyelw/logging-log4j2/pkg/appender"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// Configuration is the state one logger context runs on.
type Configuration interface {
	// Name labels this configuration in status reports and listings.
	Name() string

	// Source returns where the configuration came from, nil for
	// assembled ones.
	Source() *Source

	// RootLogger returns the root entry, which always exists.
	RootLogger() *LoggerConfig

	// ExactLoggerConfig returns the entry named exactly name. A miss
	// is a normal outcome, not an error.
	ExactLoggerConfig(name string) (*LoggerConfig, bool)

	// LoggerConfig returns the entry for name or its nearest ancestor,
	// falling back to the root.
	LoggerConfig(name string) *LoggerConfig

	// AddLogger inserts or replaces a fully built entry.
	AddLogger(name string, lc *LoggerConfig)

	// LoggerConfigs returns a point-in-time copy of all entries.
	LoggerConfigs() map[string]*LoggerConfig

	// Appenders returns the named appenders this configuration owns.
	Appenders() map[string]appender.Appender

	// WatchEnabled reports whether the source should be watched for
	// changes.
	WatchEnabled() bool

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Default is the standard Configuration implementation.
type Default struct {
	id        string
	name      string
	source    *Source
	registry  *Registry
	appenders map[string]appender.Appender
	watch     bool

	started atomic.Bool
	stopped atomic.Bool
}

// New assembles a configuration from prebuilt parts. The root entry may
// be nil, yielding the built-in default root.
func New(name string, source *Source, root *LoggerConfig, apps map[string]appender.Appender, watch bool) *Default {
	if name == "" {
		name = "default"
	}

	if apps == nil {
		apps = map[string]appender.Appender{}
	}

	return &Default{
		id:        uuid.NewString(),
		name:      name,
		source:    source,
		registry:  NewRegistry(root),
		appenders: apps,
		watch:     watch,
	}
}

// NewDefault returns the built-in fallback configuration: a root logger
// at Error wired to a stderr console appender.
func NewDefault() *Default {
	console := appender.NewConsole("console", nil, nil)
	root := NewLoggerConfig("", level.Error, true, console)

	return New("default", nil, root, map[string]appender.Appender{console.Name(): console}, false)
}

// ID is the unique instance id, distinguishing reloaded generations of
// the same configuration in status reports.
func (d *Default) ID() string {
	return d.id
}

func (d *Default) Name() string {
	return d.name
}

func (d *Default) Source() *Source {
	return d.source
}

func (d *Default) RootLogger() *LoggerConfig {
	return d.registry.Root()
}

func (d *Default) ExactLoggerConfig(name string) (*LoggerConfig, bool) {
	return d.registry.Get(name)
}

func (d *Default) LoggerConfig(name string) *LoggerConfig {
	return d.registry.Resolve(name)
}

func (d *Default) AddLogger(name string, lc *LoggerConfig) {
	d.registry.Put(name, lc)
}

func (d *Default) LoggerConfigs() map[string]*LoggerConfig {
	return d.registry.Entries()
}

func (d *Default) Appenders() map[string]appender.Appender {
	out := make(map[string]appender.Appender, len(d.appenders))
	for n, a := range d.appenders {
		out[n] = a
	}

	return out
}

func (d *Default) WatchEnabled() bool {
	if d.source == nil {
		return false
	}

	_, isFile := d.source.FilePath()

	return d.watch && isFile
}

// Start marks the configuration live. Starting twice is a no-op.
func (d *Default) Start(_ context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return nil
	}

	status.Logger().Debug("configuration started",
		"component", "config",
		"name", d.name,
		"id", d.id,
		"source", d.source.String())

	return nil
}

// Stop shuts down all owned appenders concurrently. Stopping twice is a
// no-op.
func (d *Default) Stop(ctx context.Context) error {
	if !d.stopped.CompareAndSwap(false, true) {
		return nil
	}

	p := pool.New().WithErrors().WithContext(ctx)
	for _, a := range d.appenders {
		p.Go(func(ctx context.Context) error {
			return a.Stop(ctx)
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	status.Logger().Debug("configuration stopped",
		"component", "config",
		"name", d.name,
		"id", d.id)

	return nil
}
