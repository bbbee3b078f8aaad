package configurator

import (
	"fmt"
	"strings"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
)

// Assignment pairs a logger name with a level. The empty name targets
// the root logger.
type Assignment struct {
	Logger string
	Level  level.Level
}

func (a Assignment) String() string {
	name := a.Logger
	if name == "" {
		name = "root"
	}

	return name + "=" + a.Level.String()
}

// ParseAssignment parses the name=LEVEL form used by CLI arguments and
// management requests. The name "root", in any case, is the root
// logger.
func ParseAssignment(s string) (Assignment, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("invalid level assignment %q: want name=LEVEL", s)
	}

	lvl, err := level.Parse(raw)
	if err != nil {
		return Assignment{}, fmt.Errorf("invalid level assignment %q: %w", s, err)
	}

	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "root") {
		name = ""
	}

	return Assignment{Logger: name, Level: lvl}, nil
}

// ParseAssignments parses a list of name=LEVEL arguments, failing on
// the first bad one.
func ParseAssignments(args []string) ([]Assignment, error) {
	out := make([]Assignment, 0, len(args))
	for _, arg := range args {
		a, err := ParseAssignment(arg)
		if err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, nil
}

// Levels flattens assignments into the mapping SetLevels takes. On a
// duplicate name the later assignment wins.
func Levels(assignments []Assignment) map[string]level.Level {
	out := make(map[string]level.Level, len(assignments))
	for _, a := range assignments {
		out[a.Logger] = a.Level
	}

	return out
}
