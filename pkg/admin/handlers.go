package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sunyelw/logging-log4j2/pkg/config"
	"github.com/Sunyelw/logging-log4j2/pkg/level"
	"github.com/gofiber/fiber/v2"
)

// reconfigurer is the optional capability behind POST /reconfigure.
type reconfigurer interface {
	Reconfigure(ctx context.Context) error
}

// handleListLoggers handles GET /loggers
func (s *Server) handleListLoggers(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	return RespondSuccess(c, loggerEntries(lctx.Configuration()))
}

// handleGetRootLogger handles GET /loggers/root
func (s *Server) handleGetRootLogger(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	return RespondSuccess(c, toEntry(lctx.Configuration().RootLogger(), nil))
}

// handleGetLogger handles GET /loggers/:name. The lookup falls back to
// the nearest ancestor entry; the response reports whether the match
// was exact.
func (s *Server) handleGetLogger(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	name := loggerName(c.Params("name"))
	cfg := lctx.Configuration()

	_, exact := cfg.ExactLoggerConfig(name)
	lc := cfg.LoggerConfig(name)

	return RespondSuccess(c, toEntry(lc, &exact))
}

// handleSetLevel handles PUT /loggers/:name
func (s *Server) handleSetLevel(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	var req SetLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondBadRequest(c, "Invalid request body", err.Error())
	}

	lvl, err := level.Parse(req.Level)
	if err != nil {
		return RespondValidationError(c, "Invalid level", err.Error())
	}

	name := loggerName(c.Params("name"))
	s.controller.SetLevel(name, lvl)

	lc, ok := lctx.Configuration().ExactLoggerConfig(name)
	if !ok {
		return RespondInternalError(c, "Level change did not apply", "")
	}

	return RespondSuccess(c, toEntry(lc, nil))
}

// handleSetRootLevel handles PUT /loggers/root
func (s *Server) handleSetRootLevel(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	var req SetLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondBadRequest(c, "Invalid request body", err.Error())
	}

	lvl, err := level.Parse(req.Level)
	if err != nil {
		return RespondValidationError(c, "Invalid level", err.Error())
	}

	s.controller.SetRootLevel(lvl)

	return RespondSuccess(c, toEntry(lctx.Configuration().RootLogger(), nil))
}

// handleSetLevels handles PUT /loggers. Every level must parse before
// anything is applied; the whole batch then goes through one
// SetLevels call.
func (s *Server) handleSetLevels(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	var req SetLevelsRequest
	if err := c.BodyParser(&req); err != nil {
		return RespondBadRequest(c, "Invalid request body", err.Error())
	}

	if len(req.Levels) == 0 {
		return RespondValidationError(c, "No level assignments", "levels must not be empty")
	}

	levels := make(map[string]level.Level, len(req.Levels))
	for name, raw := range req.Levels {
		lvl, err := level.Parse(raw)
		if err != nil {
			return RespondValidationError(c, fmt.Sprintf("Invalid level for logger %q", name), err.Error())
		}

		levels[loggerName(name)] = lvl
	}

	s.controller.SetLevels(levels)

	return RespondSuccess(c, loggerEntries(lctx.Configuration()))
}

// handleReconfigure handles POST /reconfigure
func (s *Server) handleReconfigure(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	r, ok := lctx.(reconfigurer)
	if !ok || lctx.Configuration().Source() == nil {
		return RespondNotImplemented(c, "Context cannot reconfigure", "the configuration has no reloadable source")
	}

	if err := r.Reconfigure(c.UserContext()); err != nil {
		return RespondInternalError(c, "Reconfigure failed", err.Error())
	}

	return RespondSuccess(c, loggerEntries(lctx.Configuration()))
}

// handleStatus handles GET /status
func (s *Server) handleStatus(c *fiber.Ctx) error {
	lctx := s.controller.CurrentContext()
	if lctx == nil {
		return RespondServiceUnavailable(c, "No logger context available", "")
	}

	cfg := lctx.Configuration()

	apps := make([]string, 0, len(cfg.Appenders()))
	for name := range cfg.Appenders() {
		apps = append(apps, name)
	}
	sort.Strings(apps)

	resp := StatusResponse{
		Context:       lctx.Name(),
		Configuration: cfg.Name(),
		Source:        cfg.Source().String(),
		Watch:         cfg.WatchEnabled(),
		Loggers:       len(cfg.LoggerConfigs()),
		Appenders:     apps,
	}

	if st, ok := lctx.(interface{ StartTime() time.Time }); ok {
		resp.StartTime = st.StartTime()
		resp.Uptime = time.Since(st.StartTime()).Round(time.Second).String()
	}

	return RespondSuccess(c, resp)
}

// loggerName maps the wire name "root", in any case, to the root
// logger's internal empty name.
func loggerName(name string) string {
	if strings.EqualFold(name, "root") {
		return ""
	}

	return name
}

func toEntry(lc *config.LoggerConfig, exact *bool) LoggerEntry {
	name := lc.Name()
	if name == "" {
		name = "root"
	}

	return LoggerEntry{
		Name:      name,
		Level:     lc.Level().String(),
		Additive:  lc.Additive(),
		Appenders: lc.AppenderNames(),
		Exact:     exact,
	}
}

// loggerEntries lists the root entry first, then every named entry in
// sorted order.
func loggerEntries(cfg config.Configuration) []LoggerEntry {
	entries := cfg.LoggerConfigs()

	names := make([]string, 0, len(entries))
	for name := range entries {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]LoggerEntry, 0, len(names)+1)
	out = append(out, toEntry(cfg.RootLogger(), nil))
	for _, name := range names {
		out = append(out, toEntry(entries[name], nil))
	}

	return out
}
