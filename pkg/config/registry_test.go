package config

import (
	"testing"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDefaultRoot(t *testing.T) {
	r := NewRegistry(nil)

	root, ok := r.Get("")
	require.True(t, ok)
	assert.Same(t, r.Root(), root)
	assert.Equal(t, level.Error, root.Level())
	assert.Nil(t, root.Parent())
}

func TestRegistryExactGet(t *testing.T) {
	r := NewRegistry(nil)
	r.Put("a.b.c", NewLoggerConfig("a.b.c", level.Debug, true))

	_, ok := r.Get("a.b")
	assert.False(t, ok, "exact lookup must not fall back to ancestors")

	lc, ok := r.Get("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "a.b.c", lc.Name())
}

func TestRegistryResolveFallback(t *testing.T) {
	r := NewRegistry(nil)
	abc := NewLoggerConfig("a.b.c", level.Debug, true)
	r.Put("a.b.c", abc)

	assert.Same(t, abc, r.Resolve("a.b.c"), "exact name resolves to itself")
	assert.Same(t, abc, r.Resolve("a.b.c.d.e"), "descendant resolves to nearest ancestor")
	assert.Same(t, r.Root(), r.Resolve("a.b"), "no ancestor entry falls back to root")
	assert.Same(t, r.Root(), r.Resolve("unrelated"))
	assert.Same(t, r.Root(), r.Resolve(""))
}

func TestRegistryPutRewiresParents(t *testing.T) {
	r := NewRegistry(nil)

	a := NewLoggerConfig("a", level.Info, true)
	abc := NewLoggerConfig("a.b.c", level.Debug, true)

	r.Put("a", a)
	r.Put("a.b.c", abc)
	assert.Same(t, a, abc.Parent(), "nearest existing ancestor is the parent")
	assert.Same(t, r.Root(), a.Parent())

	// Inserting an intermediate entry re-parents the deeper one.
	ab := NewLoggerConfig("a.b", level.Warn, true)
	r.Put("a.b", ab)
	assert.Same(t, ab, abc.Parent())
	assert.Same(t, a, ab.Parent())
}

func TestRegistryPutReplaces(t *testing.T) {
	r := NewRegistry(nil)

	first := NewLoggerConfig("svc", level.Info, true)
	second := NewLoggerConfig("svc", level.Debug, true)

	r.Put("svc", first)
	r.Put("svc", second)

	lc, ok := r.Get("svc")
	require.True(t, ok)
	assert.Same(t, second, lc)
}

func TestRegistryRootIsFixed(t *testing.T) {
	r := NewRegistry(nil)
	root := r.Root()

	r.Put("", NewLoggerConfig("", level.Trace, true))

	assert.Same(t, root, r.Root())
	assert.Equal(t, level.Error, r.Root().Level())
}

func TestRegistryNamesAndEntries(t *testing.T) {
	r := NewRegistry(nil)
	r.Put("b", NewLoggerConfig("b", level.Info, true))
	r.Put("a", NewLoggerConfig("a", level.Info, true))

	assert.Equal(t, []string{"", "a", "b"}, r.Names())

	entries := r.Entries()
	assert.Len(t, entries, 3)

	// The snapshot is a copy, not a view.
	delete(entries, "a")
	_, ok := r.Get("a")
	assert.True(t, ok)
}
