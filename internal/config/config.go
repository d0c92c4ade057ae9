// Package config holds runtime settings for the snippy CLI: where the
// database lives and the defaults applied to listing and execution.
//
// Values are resolved defaults-first, then overlaid from an optional JSON
// file; command flags override both per invocation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Config holds the resolved runtime settings.
type Config struct {
	// DatabasePath is the sqlite file holding snippets and config.
	DatabasePath string

	// ExecTimeout bounds snippet execution wall-clock time.
	ExecTimeout time.Duration

	// ListLimit is the default page size for listings.
	ListLimit int
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given in seconds so the file stays hand-editable.
type jsonConfig struct {
	DatabasePath       string `json:"database_path"`
	ExecTimeoutSeconds int    `json:"exec_timeout_seconds"`
	ListLimit          int    `json:"list_limit"`
}

// LoadDefaults populates c with sensible defaults. The database lives under
// ~/.snippy, falling back to the current directory when the home directory
// cannot be resolved.
func (c *Config) LoadDefaults() {
	dir := ".snippy"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".snippy")
	}
	c.DatabasePath = filepath.Join(dir, "snippets.db")
	c.ExecTimeout = 30 * time.Second
	c.ListLimit = 50
}

// Load constructs a Config from defaults overlaid with the JSON file at
// path. An empty path means the default location (~/.snippy/config.json);
// a missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	optional := false
	if path == "" {
		path = filepath.Join(filepath.Dir(cfg.DatabasePath), "config.json")
		optional = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ExecTimeoutSeconds > 0 {
		cfg.ExecTimeout = time.Duration(jc.ExecTimeoutSeconds) * time.Second
	}
	if jc.ListLimit > 0 {
		cfg.ListLimit = jc.ListLimit
	}

	return cfg, nil
}
