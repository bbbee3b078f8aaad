package appender

import (
	"context"
	"sync"
)

// Memory keeps appended events in a slice. Tests and diagnostics read
// them back with Events.
type Memory struct {
	name string

	mu      sync.Mutex
	events  []Event
	stopped bool
}

func NewMemory(name string) *Memory {
	return &Memory{name: name}
}

func (m *Memory) Name() string {
	return m.name
}

func (m *Memory) Append(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}

	m.events = append(m.events, e)
}

// Events returns a copy of everything appended so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, len(m.events))
	copy(out, m.events)

	return out
}

// Clear drops all collected events.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
}

func (m *Memory) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopped = true

	return nil
}
