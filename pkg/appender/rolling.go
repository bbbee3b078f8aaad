package appender

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sunyelw/logging-log4j2/pkg/status"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RollingConfig sizes the rotation policy of a rolling file appender.
type RollingConfig struct {
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// Rolling writes rendered events to a size-rotated file. Write failures
// go to the status channel, never to the caller.
type Rolling struct {
	name    string
	layout  Layout
	mu      sync.Mutex
	file    *lumberjack.Logger
	stopped bool
}

// NewRolling builds a rolling file appender. A nil layout defaults to
// TextLayout.
func NewRolling(name string, cfg RollingConfig, layout Layout) *Rolling {
	if layout == nil {
		layout = TextLayout
	}

	return &Rolling{
		name:   name,
		layout: layout,
		file: &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,  // MB
			MaxBackups: cfg.MaxBackups, // number of old files
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,   // compress old files
		},
	}
}

func (r *Rolling) Name() string {
	return r.name
}

func (r *Rolling) Append(e Event) {
	line := r.layout(e)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}

	if _, err := r.file.Write(line); err != nil {
		status.Logger().Error("appender write failed",
			"component", "appender",
			"appender", r.name,
			"err", err)
	}
}

func (r *Rolling) Stop(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil
	}

	r.stopped = true

	if err := r.file.Close(); err != nil {
		return fmt.Errorf("failed to close appender %q: %w", r.name, err)
	}

	return nil
}
