package configurator

import (
	"testing"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in      string
		want    Assignment
		wantErr bool
	}{
		{in: "web=debug", want: Assignment{Logger: "web", Level: level.Debug}},
		{in: "com.example.store=TRACE", want: Assignment{Logger: "com.example.store", Level: level.Trace}},
		{in: "root=info", want: Assignment{Logger: "", Level: level.Info}},
		{in: "Root=WARN", want: Assignment{Logger: "", Level: level.Warn}},
		{in: "=error", want: Assignment{Logger: "", Level: level.Error}},
		{in: " web.server =warn", want: Assignment{Logger: "web.server", Level: level.Warn}},
		{in: "db=550", want: Assignment{Logger: "db", Level: level.Level(550)}},
		{in: "web", wantErr: true},
		{in: "web=notalevel", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAssignment(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := ParseAssignments([]string{"web=debug", "root=warn"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Assignment{Logger: "web", Level: level.Debug}, got[0])
	assert.Equal(t, Assignment{Logger: "", Level: level.Warn}, got[1])

	_, err = ParseAssignments([]string{"web=debug", "broken"})
	assert.Error(t, err)
}

func TestAssignmentString(t *testing.T) {
	assert.Equal(t, "web=DEBUG", Assignment{Logger: "web", Level: level.Debug}.String())
	assert.Equal(t, "root=WARN", Assignment{Logger: "", Level: level.Warn}.String())
}

func TestLevelsFlattensAssignments(t *testing.T) {
	got := Levels([]Assignment{
		{Logger: "web", Level: level.Debug},
		{Logger: "", Level: level.Warn},
		{Logger: "web", Level: level.Info},
	})

	assert.Equal(t, map[string]level.Level{
		"web": level.Info,
		"":    level.Warn,
	}, got)
}
