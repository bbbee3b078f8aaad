// Package fileutil normalizes configuration locations. Callers hand in
// either a URI or a bare file path and get back a canonical URL.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ToURI converts a raw location to a canonical URL. Bare paths, absolute
// or relative, become absolute file URLs. Single-letter schemes are
// treated as Windows drive letters, not URI schemes.
func ToURI(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("empty location")
	}

	if u, err := url.Parse(trimmed); err == nil && len(u.Scheme) > 1 {
		return u, nil
	} else if err != nil && !looksLikePath(trimmed) {
		return nil, fmt.Errorf("failed to parse location %q: %w", raw, err)
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", raw, err)
	}

	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// PathFromURI returns the filesystem path a file URL points at.
func PathFromURI(u *url.URL) (string, error) {
	if u == nil {
		return "", errors.New("nil location")
	}

	if u.Scheme != "file" {
		return "", fmt.Errorf("location %q is not a file", u)
	}

	p := u.Path
	// file:///C:/dir carries the drive behind a leading slash.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}

	return filepath.FromSlash(p), nil
}

// looksLikePath reports whether a string that failed URL parsing is
// plausibly a filesystem path worth resolving anyway.
func looksLikePath(s string) bool {
	return !strings.Contains(s, "://")
}
