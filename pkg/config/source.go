package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Sunyelw/logging-log4j2/internal/fileutil"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/avast/retry-go/v4"
	"github.com/spf13/afero"
)

const (
	httpFetchAttempts = 3
	httpFetchDelay    = 200 * time.Millisecond
	httpFetchMaxDelay = 2 * time.Second
)

// Source identifies where configuration bytes come from and can fetch
// them again for reloads. File sources read through an afero filesystem,
// http sources fetch with retries, byte sources return their literal
// data.
type Source struct {
	uri    *url.URL
	fs     afero.Fs
	data   []byte
	client *http.Client
}

// NewBytesSource wraps literal configuration bytes, tagged with the
// given format ("yaml", "json" or "toml").
func NewBytesSource(data []byte, format string) *Source {
	if data == nil {
		data = []byte{}
	}

	return &Source{
		uri:  &url.URL{Scheme: "bytes", Opaque: format},
		data: data,
	}
}

// NewFileSource points at a configuration file on fs. A nil fs reads
// the OS filesystem.
func NewFileSource(fs afero.Fs, filePath string) (*Source, error) {
	u, err := fileutil.ToURI(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration path: %w", err)
	}

	if u.Scheme != "file" {
		return NewURISource(u)
	}

	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Source{uri: u, fs: fs}, nil
}

// NewURISource builds a source from an already resolved location URL.
// file URLs read the OS filesystem, http and https URLs fetch remotely.
func NewURISource(u *url.URL) (*Source, error) {
	if u == nil {
		return nil, fmt.Errorf("nil configuration location")
	}

	switch u.Scheme {
	case "file":
		return &Source{uri: u, fs: afero.NewOsFs()}, nil
	case "http", "https":
		return &Source{uri: u, client: &http.Client{Timeout: 10 * time.Second}}, nil
	}

	return nil, fmt.Errorf("unsupported configuration location scheme %q", u.Scheme)
}

// URI returns the origin location, nil for byte sources.
func (s *Source) URI() *url.URL {
	if s == nil || s.uri == nil || s.uri.Scheme == "bytes" {
		return nil
	}

	return s.uri
}

func (s *Source) String() string {
	switch {
	case s == nil:
		return "assembled"
	case s.uri == nil:
		return "in-memory"
	case s.uri.Scheme == "bytes":
		return "in-memory"
	}

	return s.uri.String()
}

// Format derives the configuration format from the location extension.
// Unknown extensions default to yaml.
func (s *Source) Format() string {
	if s.uri != nil && s.uri.Scheme == "bytes" && s.uri.Opaque != "" {
		return s.uri.Opaque
	}

	ext := ""
	if s.uri != nil {
		ext = strings.ToLower(strings.TrimPrefix(path.Ext(s.uri.Path), "."))
	}

	switch ext {
	case "json", "toml", "yaml":
		return ext
	case "yml":
		return "yaml"
	}

	return "yaml"
}

// FilePath returns the filesystem path and true when this source is
// file backed.
func (s *Source) FilePath() (string, bool) {
	if s == nil || s.uri == nil || s.uri.Scheme != "file" {
		return "", false
	}

	p, err := fileutil.PathFromURI(s.uri)
	if err != nil {
		return "", false
	}

	return p, true
}

// Bytes fetches the current configuration content.
func (s *Source) Bytes(ctx context.Context) ([]byte, error) {
	switch {
	case s == nil:
		return nil, fmt.Errorf("no configuration source")
	case s.data != nil:
		return s.data, nil
	case s.fs != nil:
		p, ok := s.FilePath()
		if !ok {
			return nil, fmt.Errorf("source %s has no file path", s)
		}

		data, err := afero.ReadFile(s.fs, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}

		return data, nil
	case s.client != nil:
		return s.fetchHTTP(ctx)
	}

	return nil, fmt.Errorf("source %s cannot be read", s)
}

func (s *Source) fetchHTTP(ctx context.Context) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.uri.String(), nil)
			if err != nil {
				return err
			}

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			}

			body, err = io.ReadAll(resp.Body)

			return err
		},
		retry.Attempts(httpFetchAttempts),
		retry.Delay(httpFetchDelay),
		retry.MaxDelay(httpFetchMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			status.Logger().Warn("retrying configuration fetch",
				"component", "config",
				"url", s.uri.String(),
				"attempt", n+1,
				"err", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch configuration from %s: %w", s.uri, err)
	}

	return body, nil
}
