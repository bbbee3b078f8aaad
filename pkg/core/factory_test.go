package core

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/spi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) *Factory {
	t.Helper()

	f := NewFactory()
	t.Cleanup(func() {
		require.NoError(t, f.ShutdownAll(context.Background()))
	})

	return f
}

func TestGetContextDefaultsName(t *testing.T) {
	f := newTestFactory(t)

	lctx, err := f.GetContext(spi.ContextRequest{CallerID: "test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultContextName, lctx.Name())
	assert.Same(t, f.Current(), lctx)

	again, err := f.GetContext(spi.ContextRequest{Name: DefaultContextName})
	require.NoError(t, err)
	assert.Same(t, lctx, again)
}

func TestGetContextNamed(t *testing.T) {
	f := newTestFactory(t)

	alpha, err := f.GetContext(spi.ContextRequest{Name: "alpha"})
	require.NoError(t, err)
	beta, err := f.GetContext(spi.ContextRequest{Name: "beta"})
	require.NoError(t, err)

	assert.NotSame(t, alpha, beta)
	assert.Len(t, f.Contexts(), 2)

	// The first context built became current.
	assert.Same(t, alpha, f.Current())
}

func TestGetContextCurrentOnly(t *testing.T) {
	f := newTestFactory(t)

	assert.Nil(t, f.Current())

	// With no context yet, a current-only request boots the default.
	lctx, err := f.GetContext(spi.ContextRequest{CurrentOnly: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultContextName, lctx.Name())

	named, err := f.GetContext(spi.ContextRequest{Name: "other"})
	require.NoError(t, err)
	assert.NotSame(t, lctx, named)

	// Current-only keeps returning the current context, not the named
	// one.
	cur, err := f.GetContext(spi.ContextRequest{Name: "other", CurrentOnly: true})
	require.NoError(t, err)
	assert.Same(t, lctx, cur)
}

func TestGetContextFromSource(t *testing.T) {
	f := newTestFactory(t)

	src := config.NewBytesSource([]byte("loggers:\n  root:\n    level: debug\n"), "yaml")
	lctx, err := f.GetContext(spi.ContextRequest{Name: "from-source", Source: src})
	require.NoError(t, err)

	assert.Equal(t, level.Debug, lctx.Configuration().RootLogger().Level())
	assert.Same(t, src, lctx.Configuration().Source())
}

func TestGetContextFromLocation(t *testing.T) {
	f := newTestFactory(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loggers:\n  root:\n    level: trace\n"), 0o644))

	lctx, err := f.GetContext(spi.ContextRequest{
		Name:     "from-location",
		Location: &url.URL{Scheme: "file", Path: path},
	})
	require.NoError(t, err)

	assert.Equal(t, level.Trace, lctx.Configuration().RootLogger().Level())
}

func TestGetContextBuildErrorNotCached(t *testing.T) {
	f := newTestFactory(t)

	bad := config.NewBytesSource([]byte(":\n  - ["), "yaml")
	_, err := f.GetContext(spi.ContextRequest{Name: "flaky", Source: bad})
	require.Error(t, err)
	assert.Empty(t, f.Contexts())

	good := config.NewBytesSource([]byte("loggers:\n  root:\n    level: info\n"), "yaml")
	lctx, err := f.GetContext(spi.ContextRequest{Name: "flaky", Source: good})
	require.NoError(t, err)
	assert.Equal(t, level.Info, lctx.Configuration().RootLogger().Level())
}

func TestGetContextConcurrent(t *testing.T) {
	f := newTestFactory(t)

	const goroutines = 16

	var wg sync.WaitGroup
	results := make([]spi.LoggerContext, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			lctx, err := f.GetContext(spi.ContextRequest{Name: "shared"})
			assert.NoError(t, err)
			results[i] = lctx
		}(i)
	}

	wg.Wait()

	require.NotNil(t, results[0])
	for _, lctx := range results[1:] {
		assert.Same(t, results[0], lctx)
	}

	assert.Len(t, f.Contexts(), 1)
}

func TestShutdownAll(t *testing.T) {
	f := NewFactory()

	a, err := f.GetContext(spi.ContextRequest{Name: "a"})
	require.NoError(t, err)
	_, err = f.GetContext(spi.ContextRequest{Name: "b"})
	require.NoError(t, err)

	require.NoError(t, f.ShutdownAll(context.Background()))

	assert.Nil(t, f.Current())
	assert.Empty(t, f.Contexts())

	// A later request builds a fresh context rather than reviving a
	// stopped one.
	a2, err := f.GetContext(spi.ContextRequest{Name: "a"})
	require.NoError(t, err)
	assert.NotSame(t, a, a2)

	require.NoError(t, f.ShutdownAll(context.Background()))
}

func TestDefaultFactoryIsSingleton(t *testing.T) {
	assert.Same(t, DefaultFactory(), DefaultFactory())
}

func TestDefaultFactoryIsAmbientCapability(t *testing.T) {
	factory, ok := spi.Factory().(spi.ContextFactory)
	require.True(t, ok)
	assert.Same(t, DefaultFactory(), factory)
}

func TestFactoryWatchReconfigures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch: true\nloggers:\n  root:\n    level: info\n"), 0o644))

	f := newTestFactory(t)

	lctx, err := f.GetContext(spi.ContextRequest{
		Name:     "watched",
		Location: &url.URL{Scheme: "file", Path: path},
	})
	require.NoError(t, err)
	require.Equal(t, level.Info, lctx.Configuration().RootLogger().Level())

	require.NoError(t, os.WriteFile(path, []byte("watch: true\nloggers:\n  root:\n    level: warn\n"), 0o644))

	assert.Eventually(t, func() bool {
		return lctx.Configuration().RootLogger().Level() == level.Warn
	}, 5*time.Second, 50*time.Millisecond)
}
