package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Sunyelw/logging-log4j2/pkg/appender"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// rootLoggerKey is the name configuration files use for the root scope.
const rootLoggerKey = "root"

// fileSchema mirrors the configuration file layout.
type fileSchema struct {
	Name      string                    `yaml:"name" mapstructure:"name"`
	Status    string                    `yaml:"status" mapstructure:"status"`
	Watch     bool                      `yaml:"watch" mapstructure:"watch"`
	Appenders map[string]appenderSchema `yaml:"appenders" mapstructure:"appenders"`
	Loggers   map[string]loggerSchema   `yaml:"loggers" mapstructure:"loggers"`
}

type appenderSchema struct {
	Type       string `yaml:"type" mapstructure:"type"`
	Target     string `yaml:"target" mapstructure:"target"`
	Layout     string `yaml:"layout" mapstructure:"layout"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

type loggerSchema struct {
	Level     string   `yaml:"level" mapstructure:"level"`
	Additive  *bool    `yaml:"additive" mapstructure:"additive"`
	Appenders []string `yaml:"appenders" mapstructure:"appenders"`
}

// Validate checks the cross references and level names a decode cannot.
func (s *fileSchema) Validate() error {
	if s.Status != "" {
		if _, err := level.Parse(s.Status); err != nil {
			return fmt.Errorf("invalid status level: %w", err)
		}
	}

	for name, as := range s.Appenders {
		if _, err := appender.ParseLayout(as.Layout); err != nil {
			return fmt.Errorf("appender %q: %w", name, err)
		}

		switch strings.ToLower(as.Type) {
		case "", "console", "memory":
		case "file":
			if as.File == "" {
				return fmt.Errorf("appender %q: file is required", name)
			}
		default:
			return fmt.Errorf("appender %q: unknown type %q", name, as.Type)
		}
	}

	for name, ls := range s.Loggers {
		if ls.Level != "" {
			if _, err := level.Parse(ls.Level); err != nil {
				return fmt.Errorf("logger %q: %w", name, err)
			}
		}

		for _, ref := range ls.Appenders {
			if _, ok := s.Appenders[ref]; !ok {
				return fmt.Errorf("logger %q references unknown appender %q", name, ref)
			}
		}
	}

	return nil
}

// Load builds a started-ready Configuration from a source. The file's
// status entry, when present, adjusts the status channel threshold as a
// side effect.
func Load(ctx context.Context, src *Source) (Configuration, error) {
	data, err := src.Bytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", src, err)
	}

	schema, err := parse(data, src.Format())
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", src, err)
	}

	if schema.Status != "" {
		lvl, _ := level.Parse(schema.Status)
		status.SetThreshold(lvl)
	}

	cfg, err := build(schema, src)
	if err != nil {
		return nil, fmt.Errorf("failed to build configuration %s: %w", src, err)
	}

	return cfg, nil
}

// LoadFile loads a configuration from a path on fs. A nil fs reads the
// OS filesystem.
func LoadFile(ctx context.Context, fs afero.Fs, path string) (Configuration, error) {
	src, err := NewFileSource(fs, path)
	if err != nil {
		return nil, err
	}

	return Load(ctx, src)
}

func parse(data []byte, format string) (*fileSchema, error) {
	// Logger names carry dots, so the key delimiter must be a sequence
	// no name ever contains.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType(format)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	var schema fileSchema
	if err := v.Unmarshal(&schema); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return &schema, nil
}

func build(s *fileSchema, src *Source) (*Default, error) {
	apps := make(map[string]appender.Appender, len(s.Appenders))
	for name, as := range s.Appenders {
		a, err := buildAppender(name, as)
		if err != nil {
			return nil, err
		}
		apps[name] = a
	}

	root, err := buildRoot(s, apps)
	if err != nil {
		return nil, err
	}

	cfg := New(s.Name, src, root, apps, s.Watch)

	for name, ls := range s.Loggers {
		if isRootKey(name) {
			continue
		}

		lvl := root.Level()
		if ls.Level != "" {
			lvl, _ = level.Parse(ls.Level)
		}

		additive := true
		if ls.Additive != nil {
			additive = *ls.Additive
		}

		refs, err := resolveRefs(ls.Appenders, apps)
		if err != nil {
			return nil, fmt.Errorf("logger %q: %w", name, err)
		}

		cfg.AddLogger(name, NewLoggerConfig(name, lvl, additive, refs...))
	}

	return cfg, nil
}

// buildRoot assembles the root entry. Without an explicit root logger in
// the file the root lands at Error, wired to the appender named console,
// created on the spot when the file declares none.
func buildRoot(s *fileSchema, apps map[string]appender.Appender) (*LoggerConfig, error) {
	rs, ok := rootSchema(s)
	if !ok {
		console, exists := apps["console"]
		if !exists {
			console = appender.NewConsole("console", nil, nil)
			apps[console.Name()] = console
		}

		return NewLoggerConfig("", level.Error, true, console), nil
	}

	lvl := level.Error
	if rs.Level != "" {
		lvl, _ = level.Parse(rs.Level)
	}

	refs, err := resolveRefs(rs.Appenders, apps)
	if err != nil {
		return nil, fmt.Errorf("logger %q: %w", rootLoggerKey, err)
	}

	return NewLoggerConfig("", lvl, true, refs...), nil
}

func rootSchema(s *fileSchema) (loggerSchema, bool) {
	for name, ls := range s.Loggers {
		if isRootKey(name) {
			return ls, true
		}
	}

	return loggerSchema{}, false
}

func isRootKey(name string) bool {
	return name == "" || strings.EqualFold(name, rootLoggerKey)
}

func resolveRefs(names []string, apps map[string]appender.Appender) ([]appender.Appender, error) {
	refs := make([]appender.Appender, 0, len(names))
	for _, n := range names {
		a, ok := apps[n]
		if !ok {
			return nil, fmt.Errorf("unknown appender %q", n)
		}
		refs = append(refs, a)
	}

	return refs, nil
}

func buildAppender(name string, s appenderSchema) (appender.Appender, error) {
	layout, err := appender.ParseLayout(s.Layout)
	if err != nil {
		return nil, fmt.Errorf("appender %q: %w", name, err)
	}

	switch strings.ToLower(s.Type) {
	case "", "console":
		var out io.Writer
		switch strings.ToLower(s.Target) {
		case "", "stderr":
			out = os.Stderr
		case "stdout":
			out = os.Stdout
		default:
			return nil, fmt.Errorf("appender %q: unknown target %q", name, s.Target)
		}

		return appender.NewConsole(name, out, layout), nil
	case "file":
		if s.File == "" {
			return nil, fmt.Errorf("appender %q: file is required", name)
		}

		return appender.NewRolling(name, appender.RollingConfig{
			File:       s.File,
			MaxSizeMB:  s.MaxSizeMB,
			MaxBackups: s.MaxBackups,
			MaxAgeDays: s.MaxAgeDays,
			Compress:   s.Compress,
		}, layout), nil
	case "memory":
		return appender.NewMemory(name), nil
	}

	return nil, fmt.Errorf("appender %q: unknown type %q", name, s.Type)
}
