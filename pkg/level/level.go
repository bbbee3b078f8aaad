// Package level defines the severity scale used by logger configurations.
//
// Levels are comparable ordinals rather than a closed enumeration: Off is
// the smallest ordinal, All the largest, and a logger configured at some
// level admits every event at the same or a smaller ordinal. The standard
// names exist for parsing and display; any non-negative ordinal is a valid
// level.
package level

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Level is a severity ordinal. Smaller means more severe.
type Level int32

const (
	// Off turns a logger off entirely.
	Off   Level = 0
	Fatal Level = 100
	Error Level = 200
	Warn  Level = 300
	Info  Level = 400
	Debug Level = 500
	Trace Level = 600
	// All admits every event.
	All Level = math.MaxInt32
)

// Enables reports whether a logger configured at l emits an event logged
// at evt.
func (l Level) Enables(evt Level) bool {
	return evt <= l
}

func (l Level) String() string {
	switch l {
	case Off:
		return "OFF"
	case Fatal:
		return "FATAL"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	case Trace:
		return "TRACE"
	case All:
		return "ALL"
	}
	return "LEVEL(" + strconv.Itoa(int(l)) + ")"
}

// Parse returns the level named by s, ignoring case. A bare non-negative
// integer, or the LEVEL(n) form String produces for custom ordinals, is
// accepted as a custom ordinal.
func Parse(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OFF":
		return Off, nil
	case "FATAL":
		return Fatal, nil
	case "ERROR":
		return Error, nil
	case "WARN":
		return Warn, nil
	case "INFO":
		return Info, nil
	case "DEBUG":
		return Debug, nil
	case "TRACE":
		return Trace, nil
	case "ALL":
		return All, nil
	}

	trimmed := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToUpper(trimmed), "LEVEL("); ok {
		trimmed, _ = strings.CutSuffix(rest, ")")
	}

	if n, err := strconv.ParseInt(trimmed, 10, 32); err == nil && n >= 0 {
		return Level(n), nil
	}

	return Off, fmt.Errorf("unknown level %q", s)
}

// MustParse is Parse for names known to be valid, such as literals in
// tests. It panics on unknown names.
func MustParse(s string) Level {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}
