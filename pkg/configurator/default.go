package configurator

import (
	"context"
	"sync"

	"github.com/Sunyelw/logging-log4j2/pkg/core"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
)

// The package-level functions drive a shared instance bound to the
// in-process context factory.
var defaultConfigurator = sync.OnceValue(func() *Configurator {
	return New(WithFactory(core.DefaultFactory()))
})

// Default returns the Configurator behind the package-level functions.
func Default() *Configurator {
	return defaultConfigurator()
}

// Initialize obtains or creates a logger context, nil on failure.
func Initialize(opts InitOptions) spi.LoggerContext {
	return Default().Initialize(opts)
}

// CurrentContext returns the current context, nil when none resolves.
func CurrentContext() spi.LoggerContext {
	return Default().CurrentContext()
}

// SetLevel sets one logger's level in the current context.
func SetLevel(name string, lvl level.Level) {
	Default().SetLevel(name, lvl)
}

// SetLevels applies a batch of level assignments to the current
// context.
func SetLevels(levels map[string]level.Level) {
	Default().SetLevels(levels)
}

// SetRootLevel sets the root logger's level in the current context.
func SetRootLevel(lvl level.Level) {
	Default().SetRootLevel(lvl)
}

// Shutdown stops a context obtained from Initialize. Passing nil is a
// no-op.
func Shutdown(ctx context.Context, lctx spi.LoggerContext) {
	Default().Shutdown(ctx, lctx)
}
