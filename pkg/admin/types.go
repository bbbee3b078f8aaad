package admin

import "time"

// LoggerEntry is the wire form of one logger configuration entry. The
// root entry is reported under the name "root".
type LoggerEntry struct {
	Name      string   `json:"name"`
	Level     string   `json:"level"`
	Additive  bool     `json:"additive"`
	Appenders []string `json:"appenders"`

	// Exact reports whether the entry matched the requested name
	// exactly or through ancestor fallback. Only set on single-logger
	// lookups.
	Exact *bool `json:"exact,omitempty"`
}

// SetLevelRequest changes the level of one logger.
type SetLevelRequest struct {
	Level string `json:"level"`
}

// SetLevelsRequest changes many logger levels in one batch.
type SetLevelsRequest struct {
	Levels map[string]string `json:"levels"`
}

// StatusResponse describes the current context.
type StatusResponse struct {
	Context       string    `json:"context"`
	Configuration string    `json:"configuration"`
	Source        string    `json:"source"`
	Watch         bool      `json:"watch"`
	Loggers       int       `json:"loggers"`
	Appenders     []string  `json:"appenders"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime,omitempty"`
}
