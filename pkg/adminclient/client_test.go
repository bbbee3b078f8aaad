package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sunyelw/logging-log4j2/pkg/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		prefix   string
		want     string
		wantErr  bool
	}{
		{name: "full url", endpoint: "http://localhost:8686", want: "http://localhost:8686/api/v1"},
		{name: "https", endpoint: "https://logs.internal", want: "https://logs.internal/api/v1"},
		{name: "bare host port", endpoint: "localhost:8686", want: "http://localhost:8686/api/v1"},
		{name: "trailing slash", endpoint: "http://localhost:8686/", want: "http://localhost:8686/api/v1"},
		{name: "custom prefix", endpoint: "http://localhost:8686", prefix: "/admin", want: "http://localhost:8686/admin"},
		{name: "empty", endpoint: "", wantErr: true},
		{name: "bad scheme", endpoint: "ftp://somewhere", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildBaseURL(&Config{Endpoint: tt.endpoint, Prefix: tt.prefix})
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientDecodesSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/loggers", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"name": "root", "level": "INFO", "additive": true, "appenders": []string{"console"}},
				{"name": "web", "level": "DEBUG", "additive": true},
			},
		})
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	entries, err := c.Loggers(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "root", entries[0].Name)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, []string{"console"}, entries[0].Appenders)
}

func TestClientSetLevelSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/loggers/web.server", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		var req admin.SetLevelRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "debug", req.Level)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"name": "web.server", "level": "DEBUG", "additive": true},
		})
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	entry, err := c.SetLevel(context.Background(), "web.server", "debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", entry.Level)
}

func TestClientSurfacesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error": map[string]any{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid level",
				"details": `unknown level "chartreuse"`,
			},
		})
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = c.SetLevel(context.Background(), "web", "chartreuse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid level")
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestClientRejectsNonEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream error</html>"))
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = c.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/status", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"context":       "default",
				"configuration": "prod",
				"source":        "file:///etc/app/logging.yaml",
				"watch":         true,
				"loggers":       3,
			},
		})
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	st, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "default", st.Context)
	assert.True(t, st.Watch)
	assert.Equal(t, 3, st.Loggers)
}
