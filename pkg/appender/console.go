package appender

import (
	"context"
	"io"
	"os"
	"sync"
)

// Console writes rendered events to a writer, one lock-serialized write
// per event so concurrent lines never interleave.
type Console struct {
	name    string
	layout  Layout
	mu      sync.Mutex
	out     io.Writer
	stopped bool
}

// NewConsole builds a console appender. A nil out defaults to stderr, a
// nil layout to TextLayout.
func NewConsole(name string, out io.Writer, layout Layout) *Console {
	if out == nil {
		out = os.Stderr
	}

	if layout == nil {
		layout = TextLayout
	}

	return &Console{name: name, out: out, layout: layout}
}

func (c *Console) Name() string {
	return c.name
}

func (c *Console) Append(e Event) {
	line := c.layout(e)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	_, _ = c.out.Write(line)
}

func (c *Console) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true

	return nil
}
