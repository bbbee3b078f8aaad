package core

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"
)

// DefaultContextName names the context used when callers do not select
// one.
const DefaultContextName = "default"

// Factory builds and caches logger contexts by name. The first context
// it builds becomes the current one.
type Factory struct {
	mu       sync.RWMutex
	contexts map[string]*LoggerContext

	group   singleflight.Group
	current atomic.Pointer[LoggerContext]
	log     *slog.Logger
}

// DefaultFactory returns the process-wide factory the package-level
// configurator API is bound to.
var DefaultFactory = sync.OnceValue(func() *Factory {
	return NewFactory()
})

// Importing this package makes it the ambient context capability,
// unless something else registered one first.
func init() {
	if spi.Factory() == nil {
		spi.SetFactory(DefaultFactory())
	}
}

func NewFactory() *Factory {
	return &Factory{
		contexts: make(map[string]*LoggerContext),
		log:      status.Logger().With("component", "factory"),
	}
}

// GetContext returns the context the request selects, building it when
// absent. Concurrent first requests for one name build a single
// context. A cached context is returned unchanged even when the request
// carries a source or location.
func (f *Factory) GetContext(req spi.ContextRequest) (spi.LoggerContext, error) {
	if req.CurrentOnly {
		if cur := f.current.Load(); cur != nil {
			return cur, nil
		}

		// First use with no context at all boots the default one.
		req = spi.ContextRequest{CallerID: req.CallerID, Name: DefaultContextName}
	}

	name := req.Name
	if name == "" {
		name = DefaultContextName
	}

	if lctx := f.lookup(name); lctx != nil {
		return lctx, nil
	}

	v, err, _ := f.group.Do(name, func() (any, error) {
		if lctx := f.lookup(name); lctx != nil {
			return lctx, nil
		}

		return f.build(name, req)
	})
	if err != nil {
		return nil, err
	}

	return v.(*LoggerContext), nil
}

// Current returns the current context, nil before the first build.
func (f *Factory) Current() *LoggerContext {
	return f.current.Load()
}

// Contexts snapshots all cached contexts.
func (f *Factory) Contexts() []*LoggerContext {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*LoggerContext, 0, len(f.contexts))
	for _, c := range f.contexts {
		out = append(out, c)
	}

	return out
}

// ShutdownAll stops every cached context concurrently and empties the
// cache.
func (f *Factory) ShutdownAll(ctx context.Context) error {
	f.mu.Lock()
	contexts := f.contexts
	f.contexts = make(map[string]*LoggerContext)
	f.mu.Unlock()

	f.current.Store(nil)

	p := pool.New().WithErrors().WithContext(ctx)
	for _, c := range contexts {
		p.Go(func(ctx context.Context) error {
			return c.Stop(ctx)
		})
	}

	return p.Wait()
}

func (f *Factory) lookup(name string) *LoggerContext {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.contexts[name]
}

func (f *Factory) build(name string, req spi.ContextRequest) (*LoggerContext, error) {
	cfg, err := f.configurationFor(req)
	if err != nil {
		return nil, err
	}

	lctx := NewLoggerContext(name, cfg, req.External)

	if path, ok := watchPath(cfg); ok {
		w, err := NewWatcher(path, defaultWatchDebounce, lctx.Reconfigure)
		if err != nil {
			f.log.Warn("cannot watch configuration", "path", path, "err", err)
		} else {
			lctx.watcher = w
		}
	}

	if err := lctx.start(context.Background()); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.contexts[name] = lctx
	f.mu.Unlock()

	f.current.CompareAndSwap(nil, lctx)

	f.log.Debug("context created",
		"context", name,
		"caller", req.CallerID,
		"configuration", cfg.Name())

	return lctx, nil
}

func (f *Factory) configurationFor(req spi.ContextRequest) (config.Configuration, error) {
	switch {
	case req.Source != nil:
		return config.Load(context.Background(), req.Source)
	case req.Location != nil:
		src, err := config.NewURISource(req.Location)
		if err != nil {
			return nil, err
		}

		return config.Load(context.Background(), src)
	}

	return config.NewDefault(), nil
}

func watchPath(cfg config.Configuration) (string, bool) {
	if !cfg.WatchEnabled() {
		return "", false
	}

	return cfg.Source().FilePath()
}
