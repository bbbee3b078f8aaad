// Package adminclient is the HTTP client for the management endpoint.
// levelctl and applications scripting level changes go through it.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Sunyelw/logging-log4j2/pkg/admin"
)

// Client talks to one management endpoint.
type Client interface {
	Loggers(ctx context.Context) ([]admin.LoggerEntry, error)
	Logger(ctx context.Context, name string) (admin.LoggerEntry, error)
	SetLevel(ctx context.Context, name, level string) (admin.LoggerEntry, error)
	SetRootLevel(ctx context.Context, level string) (admin.LoggerEntry, error)
	SetLevels(ctx context.Context, levels map[string]string) ([]admin.LoggerEntry, error)
	Reconfigure(ctx context.Context) ([]admin.LoggerEntry, error)
	Status(ctx context.Context) (admin.StatusResponse, error)
}

// Config configures the endpoint to talk to.
type Config struct {
	// Endpoint is the server base, e.g. "http://localhost:8686" or
	// just "localhost:8686".
	Endpoint string

	// Prefix is the API path prefix (default: "/api/v1").
	Prefix string
}

type client struct {
	base       string
	httpClient *http.Client
}

// New builds a client. A nil httpClient uses http.DefaultClient.
func New(config *Config, httpClient *http.Client) (Client, error) {
	base, err := buildBaseURL(config)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		base:       base,
		httpClient: httpClient,
	}, nil
}

// buildBaseURL normalizes the endpoint: a bare host:port gets the http
// scheme, anything but http and https is rejected.
func buildBaseURL(config *Config) (string, error) {
	raw := config.Endpoint
	if raw == "" {
		return "", fmt.Errorf("endpoint is not configured")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse endpoint %q: %w", config.Endpoint, err)
	}

	// "localhost:8686" parses as scheme "localhost" with an opaque
	// part, so re-parse with an explicit scheme.
	needsScheme := parsed.Scheme == "" ||
		(parsed.Host == "" && parsed.Opaque != "" &&
			parsed.Scheme != "http" && parsed.Scheme != "https")

	if needsScheme {
		parsed, err = url.Parse("http://" + raw)
		if err != nil {
			return "", fmt.Errorf("failed to parse endpoint %q: %w", config.Endpoint, err)
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported endpoint scheme %q, only http and https are supported", parsed.Scheme)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("endpoint must contain a valid host")
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = "/api/v1"
	}

	return strings.TrimSuffix(parsed.String(), "/") + prefix, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}

		rd = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected status code: %d, error: %s", resp.StatusCode, string(raw))
	}

	if !env.Success {
		if env.Error != nil {
			msg := env.Error.Message
			if env.Error.Details != "" {
				msg += ": " + env.Error.Details
			}

			return fmt.Errorf("%s (%s)", msg, env.Error.Code)
		}

		return fmt.Errorf("unexpected status code: %d, error: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

func (c *client) Loggers(ctx context.Context) ([]admin.LoggerEntry, error) {
	var out []admin.LoggerEntry
	if err := c.do(ctx, http.MethodGet, "/loggers", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *client) Logger(ctx context.Context, name string) (admin.LoggerEntry, error) {
	var out admin.LoggerEntry
	if err := c.do(ctx, http.MethodGet, "/loggers/"+url.PathEscape(name), nil, &out); err != nil {
		return admin.LoggerEntry{}, err
	}

	return out, nil
}

func (c *client) SetLevel(ctx context.Context, name, level string) (admin.LoggerEntry, error) {
	var out admin.LoggerEntry
	req := admin.SetLevelRequest{Level: level}
	if err := c.do(ctx, http.MethodPut, "/loggers/"+url.PathEscape(name), req, &out); err != nil {
		return admin.LoggerEntry{}, err
	}

	return out, nil
}

func (c *client) SetRootLevel(ctx context.Context, level string) (admin.LoggerEntry, error) {
	var out admin.LoggerEntry
	req := admin.SetLevelRequest{Level: level}
	if err := c.do(ctx, http.MethodPut, "/loggers/root", req, &out); err != nil {
		return admin.LoggerEntry{}, err
	}

	return out, nil
}

func (c *client) SetLevels(ctx context.Context, levels map[string]string) ([]admin.LoggerEntry, error) {
	var out []admin.LoggerEntry
	req := admin.SetLevelsRequest{Levels: levels}
	if err := c.do(ctx, http.MethodPut, "/loggers", req, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *client) Reconfigure(ctx context.Context) ([]admin.LoggerEntry, error) {
	var out []admin.LoggerEntry
	if err := c.do(ctx, http.MethodPost, "/reconfigure", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *client) Status(ctx context.Context) (admin.StatusResponse, error) {
	var out admin.StatusResponse
	if err := c.do(ctx, http.MethodGet, "/status", nil, &out); err != nil {
		return admin.StatusResponse{}, err
	}

	return out, nil
}
