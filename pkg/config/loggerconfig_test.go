package config

import (
	"testing"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/appender"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(name string) appender.Event {
	return appender.Event{
		Time:    time.Now(),
		Level:   level.Info,
		Logger:  name,
		Message: "payload",
	}
}

func TestLoggerConfigLevel(t *testing.T) {
	lc := NewLoggerConfig("db", level.Info, true)

	assert.Equal(t, "db", lc.Name())
	assert.True(t, lc.Additive())
	assert.Equal(t, level.Info, lc.Level())

	lc.SetLevel(level.Trace)
	assert.Equal(t, level.Trace, lc.Level())

	assert.True(t, lc.Enabled(level.Error))
	assert.True(t, lc.Enabled(level.Trace))

	lc.SetLevel(level.Off)
	assert.False(t, lc.Enabled(level.Fatal))
}

func TestLoggerConfigAdditiveWalk(t *testing.T) {
	rootApp := appender.NewMemory("root-app")
	childApp := appender.NewMemory("child-app")

	root := NewLoggerConfig("", level.Error, true, rootApp)
	child := NewLoggerConfig("svc.db", level.Debug, true, childApp)
	child.setParent(root)

	child.Log(testEvent("svc.db"))

	assert.Len(t, childApp.Events(), 1)
	assert.Len(t, rootApp.Events(), 1, "additive entry should reach root appenders")
}

func TestLoggerConfigNonAdditiveStops(t *testing.T) {
	rootApp := appender.NewMemory("root-app")
	childApp := appender.NewMemory("child-app")

	root := NewLoggerConfig("", level.Error, true, rootApp)
	child := NewLoggerConfig("svc.db", level.Debug, false, childApp)
	child.setParent(root)

	child.Log(testEvent("svc.db"))

	assert.Len(t, childApp.Events(), 1)
	assert.Empty(t, rootApp.Events(), "non-additive entry must not reach root appenders")
}

func TestLoggerConfigAppenderNames(t *testing.T) {
	lc := NewLoggerConfig("svc", level.Info, true,
		appender.NewMemory("a"), appender.NewMemory("b"))

	assert.ElementsMatch(t, []string{"a", "b"}, lc.AppenderNames())

	bare := NewLoggerConfig("lazy", level.Debug, true)
	require.Empty(t, bare.AppenderNames())
}
