package appender

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layout renders an event to the bytes an appender writes, including the
// trailing newline.
type Layout func(e Event) []byte

const textTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// TextLayout renders a single human-readable line.
func TextLayout(e Event) []byte {
	var b strings.Builder

	b.WriteString(e.Time.Format(textTimeFormat))
	b.WriteByte(' ')
	b.WriteString(e.Level.String())
	b.WriteByte(' ')
	b.WriteString(loggerLabel(e.Logger))
	b.WriteString(" - ")
	b.WriteString(e.Message)

	for _, f := range e.Fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}

	b.WriteByte('\n')

	return []byte(b.String())
}

// JSONLayout renders one JSON object per line. Event fields become
// top-level keys next to time, level, logger and message.
func JSONLayout(e Event) []byte {
	obj := map[string]any{
		"time":    e.Time.Format(time.RFC3339Nano),
		"level":   e.Level.String(),
		"logger":  loggerLabel(e.Logger),
		"message": e.Message,
	}

	for _, f := range e.Fields {
		obj[f.Key] = f.Value
	}

	b, err := json.Marshal(obj)
	if err != nil {
		b = []byte(fmt.Sprintf(`{"logger":%q,"message":"event not encodable"}`, loggerLabel(e.Logger)))
	}

	return append(b, '\n')
}

// ParseLayout maps a configuration layout name to its Layout. The empty
// name selects text.
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return TextLayout, nil
	case "json":
		return JSONLayout, nil
	}

	return nil, fmt.Errorf("unknown layout %q", name)
}

func loggerLabel(name string) string {
	if name == "" {
		return "root"
	}

	return name
}
