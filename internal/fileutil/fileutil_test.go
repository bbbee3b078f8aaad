package fileutil

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToURI(t *testing.T) {
	t.Run("relative path becomes absolute file url", func(t *testing.T) {
		u, err := ToURI("configs/app.yaml")
		require.NoError(t, err)

		assert.Equal(t, "file", u.Scheme)
		assert.True(t, filepath.IsAbs(filepath.FromSlash(u.Path)))
		assert.Contains(t, u.Path, "configs/app.yaml")
	})

	t.Run("absolute path", func(t *testing.T) {
		u, err := ToURI("/etc/logging/app.yaml")
		require.NoError(t, err)

		assert.Equal(t, "file", u.Scheme)
		assert.Equal(t, "/etc/logging/app.yaml", u.Path)
	})

	t.Run("http url passes through", func(t *testing.T) {
		u, err := ToURI("http://config.internal/logging.yaml")
		require.NoError(t, err)

		assert.Equal(t, "http", u.Scheme)
		assert.Equal(t, "config.internal", u.Host)
	})

	t.Run("file url passes through", func(t *testing.T) {
		u, err := ToURI("file:///var/run/logging.json")
		require.NoError(t, err)

		assert.Equal(t, "/var/run/logging.json", u.Path)
	})

	t.Run("empty location", func(t *testing.T) {
		_, err := ToURI("   ")
		assert.Error(t, err)
	})

	t.Run("malformed url", func(t *testing.T) {
		_, err := ToURI("http://bad\x7f host/app.yaml")
		assert.Error(t, err)
	})
}

func TestPathFromURI(t *testing.T) {
	t.Run("file url", func(t *testing.T) {
		p, err := PathFromURI(&url.URL{Scheme: "file", Path: "/etc/app.yaml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("/etc/app.yaml"), p)
	})

	t.Run("windows drive", func(t *testing.T) {
		p, err := PathFromURI(&url.URL{Scheme: "file", Path: "/C:/logs/app.yaml"})
		require.NoError(t, err)
		assert.Equal(t, filepath.FromSlash("C:/logs/app.yaml"), p)
	})

	t.Run("non file scheme", func(t *testing.T) {
		_, err := PathFromURI(&url.URL{Scheme: "http", Host: "x"})
		assert.Error(t, err)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := PathFromURI(nil)
		assert.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	u, err := ToURI("/var/log/dir with spaces/app.yaml")
	require.NoError(t, err)

	p, err := PathFromURI(u)
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/var/log/dir with spaces/app.yaml"), p)
}
