package config

import (
	"sort"
	"strings"
	"sync"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
)

// Registry indexes the LoggerConfig entries of one configuration by
// name. Get is the exact lookup level mutation uses; Resolve is the
// ancestor fallback logger handles are wired with. Entries are never
// removed and the root entry always exists.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*LoggerConfig
	root   *LoggerConfig
}

// NewRegistry builds a registry around the given root entry. A nil root
// gets the built-in default: Error level, additive, no appenders.
func NewRegistry(root *LoggerConfig) *Registry {
	if root == nil {
		root = NewLoggerConfig("", level.Error, true)
	}

	return &Registry{
		byName: map[string]*LoggerConfig{"": root},
		root:   root,
	}
}

// Root returns the root entry.
func (r *Registry) Root() *LoggerConfig {
	return r.root
}

// Get returns the entry named exactly name. A miss is a normal outcome,
// not an error.
func (r *Registry) Get(name string) (*LoggerConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lc, ok := r.byName[name]

	return lc, ok
}

// Resolve returns the entry for name or its nearest dotted-name
// ancestor, falling back to the root.
func (r *Registry) Resolve(name string) *LoggerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for cur := name; cur != ""; cur = parentName(cur) {
		if lc, ok := r.byName[cur]; ok {
			return lc
		}
	}

	return r.root
}

// Put inserts or replaces a fully built entry and rewires the parent
// pointers its arrival affects. A concurrent Resolve observes either
// the registry before the entry or after it, never a half-linked state.
func (r *Registry) Put(name string, lc *LoggerConfig) {
	if name == "" || lc == nil {
		// The root entry is fixed at construction.
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[name] = lc

	for n, entry := range r.byName {
		if n == "" {
			continue
		}
		entry.setParent(r.nearestAncestorLocked(n))
	}
}

// Names returns all entry names in sorted order, the root first as the
// empty string.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Entries returns a point-in-time copy of the name to entry mapping.
func (r *Registry) Entries() map[string]*LoggerConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*LoggerConfig, len(r.byName))
	for n, lc := range r.byName {
		out[n] = lc
	}

	return out
}

func (r *Registry) nearestAncestorLocked(name string) *LoggerConfig {
	for cur := parentName(name); ; cur = parentName(cur) {
		if lc, ok := r.byName[cur]; ok {
			return lc
		}

		if cur == "" {
			return r.root
		}
	}
}

func parentName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return ""
}
