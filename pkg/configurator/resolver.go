package configurator

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/Sunyelw/logging-log4j2/internal/fileutil"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
)

// LocationResolver turns a raw configuration location into a canonical
// URI. The default accepts URIs and bare file paths.
type LocationResolver func(raw string) (*url.URL, error)

// contextResolver obtains logger contexts through a factory capability
// and converts every failure mode into a status report plus an absent
// result. Callers only ever see a nil context.
type contextResolver struct {
	factory spi.ContextFactory
	resolve LocationResolver
	log     *slog.Logger

	warnOnce sync.Once
}

func newContextResolver(factory spi.ContextFactory, resolve LocationResolver, log *slog.Logger) *contextResolver {
	if resolve == nil {
		resolve = fileutil.ToURI
	}

	return &contextResolver{
		factory: factory,
		resolve: resolve,
		log:     log,
	}
}

// resolveContext returns the context the request selects, nil when it
// cannot be obtained. Every failure is reported on the status channel
// and swallowed here.
func (r *contextResolver) resolveContext(req spi.ContextRequest) spi.LoggerContext {
	factory, ok := r.usableFactory()
	if !ok {
		return nil
	}

	lctx, err := r.getContext(factory, req)
	if err != nil {
		r.log.Error("failed to obtain logger context",
			"context", req.Name,
			"caller", req.CallerID,
			"err", err)

		return nil
	}

	return lctx
}

// usableFactory picks the injected factory, falling back to the ambient
// capability. A capability that is not a ContextFactory is a wiring
// mistake, reported once per resolver.
func (r *contextResolver) usableFactory() (spi.ContextFactory, bool) {
	if r.factory != nil {
		return r.factory, true
	}

	capability := spi.Factory()
	factory, ok := capability.(spi.ContextFactory)
	if !ok {
		r.warnOnce.Do(func() {
			r.log.Error("cannot obtain logger contexts",
				"err", NewIncompatibleFactoryError(capability))
		})

		return nil, false
	}

	return factory, true
}

// getContext shields callers from the factory: an error or a panic
// during construction becomes a ContextCreationError.
func (r *contextResolver) getContext(factory spi.ContextFactory, req spi.ContextRequest) (lctx spi.LoggerContext, err error) {
	defer func() {
		if p := recover(); p != nil {
			lctx = nil
			err = NewContextCreationError(fmt.Errorf("factory panic: %v", p))
		}
	}()

	lctx, err = factory.GetContext(req)
	if err != nil {
		return nil, NewContextCreationError(err)
	}

	return lctx, nil
}
