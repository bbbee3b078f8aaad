// Package status carries the framework's own diagnostics. Configuration
// loading, context creation and level updates report here over a plain
// slog handler instead of logging through the pipeline being configured.
// The default sink is stderr at the Error threshold.
package status

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where status output goes. The zero Config keeps stderr
// only at the default Error threshold.
type Config struct {
	Level      string `yaml:"level" mapstructure:"level"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

var (
	leveler = NewDynamicLeveler(slog.LevelError)
	current atomic.Pointer[slog.Logger]
)

func init() {
	current.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: leveler,
	})))
}

// Logger returns the process-wide status logger. Callers tag themselves
// with Logger().With("component", ...).
func Logger() *slog.Logger {
	return current.Load()
}

// SetLogger replaces the process-wide status logger. A nil logger is
// ignored.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}

	current.Store(l)
}

// SetThreshold adjusts the severity admitted by status loggers built by
// this package, mapped onto the slog scale.
func SetThreshold(l level.Level) {
	leveler.SetLevel(slogLevel(l))
}

// Threshold returns the current slog-scale threshold.
func Threshold() slog.Level {
	return leveler.Level()
}

// Setup builds a status logger per cfg, installs it as the process-wide
// logger and returns it. If cfg.File is empty output goes to stderr only,
// otherwise it is teed to a size-rotated file.
func Setup(cfg Config) *slog.Logger {
	var writer io.Writer = os.Stderr

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,  // MB
			MaxBackups: cfg.MaxBackups, // number of old files
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,   // compress old files
		}
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	if cfg.Level != "" {
		if parsed, err := level.Parse(cfg.Level); err == nil {
			leveler.SetLevel(slogLevel(parsed))
		}
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: leveler,
	}))
	current.Store(logger)

	return logger
}

// slogLevel maps a framework level onto the slog scale. Off lands above
// every slog severity, disabling the channel.
func slogLevel(l level.Level) slog.Level {
	switch {
	case l == level.Off:
		return slog.LevelError + 4
	case l <= level.Error:
		return slog.LevelError
	case l <= level.Warn:
		return slog.LevelWarn
	case l <= level.Info:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
