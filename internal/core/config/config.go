package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/neilberkman/recrider/internal/core/plaud"
	"github.com/neilberkman/recrider/internal/core/temporal"
)

const (
	envUsername = "PLAUD_USERNAME"
	envPassword = "PLAUD_PASSWORD"
	envBaseURL  = "PLAUD_BASE_URL"
)

// DefaultReportTemplate renders the stats command
const DefaultReportTemplate = `{{total}} recordings, {{duration}} in total
{{working}} in working hours ({{working_pct}}%)
{{#has_range}}Spanning {{oldest}} to {{newest}}
{{/has_range}}{{#has_undated}}{{undated}} without a start time
{{/has_undated}}{{directories}} directories
{{#has_sync}}Last sync {{last_sync}} ({{last_sync_files}} files, {{sync_count}} syncs total)
{{/has_sync}}{{^has_sync}}Never synced, run 'recrider sync'
{{/has_sync}}{{#has_stale}}{{stale}} cached recordings were not returned by the last sync
{{/has_stale}}`

// ErrMissingCredentials is returned when the Plaud login is not configured
var ErrMissingCredentials = errors.New("PLAUD_USERNAME and PLAUD_PASSWORD must be set")

// Config is the resolved configuration passed to every command
type Config struct {
	DBPath         string `toml:"db_path"`
	Timezone       string `toml:"timezone"` // IANA name, empty means system local
	WorkStart      int    `toml:"work_start"`
	WorkEnd        int    `toml:"work_end"`
	BaseURL        string `toml:"base_url"`
	ClientID       string `toml:"client_id"`
	ReportTemplate string `toml:"report_template,omitempty"`

	// Credentials only ever come from the environment
	Username string `toml:"-"`
	Password string `toml:"-"`
}

// Dir returns ~/.config/recrider
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "recrider"), nil
}

// DefaultPath returns the config file location
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the built-in configuration rooted at configDir
func Default(configDir string) *Config {
	return &Config{
		DBPath:    filepath.Join(configDir, "recordings.db"),
		WorkStart: temporal.DefaultWorkStart,
		WorkEnd:   temporal.DefaultWorkEnd,
		BaseURL:   plaud.DefaultBaseURL,
		ClientID:  plaud.DefaultClientID,
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.DBPath = expandHome(cfg.DBPath)

	if _, err := cfg.WorkWindow(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Username = os.Getenv(envUsername)
	c.Password = os.Getenv(envPassword)
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		c.BaseURL = v
	}
}

// Save writes the file-backed fields of c to path
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Location resolves Timezone, falling back to time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WorkWindow builds the derivation settings from the config
func (c *Config) WorkWindow() (temporal.WorkWindow, error) {
	loc, err := c.Location()
	if err != nil {
		return temporal.WorkWindow{}, err
	}
	w := temporal.WorkWindow{Location: loc, Start: c.WorkStart, End: c.WorkEnd}
	if err := w.Validate(); err != nil {
		return temporal.WorkWindow{}, err
	}
	return w, nil
}

// Report returns the stats template, the default when unset
func (c *Config) Report() string {
	if strings.TrimSpace(c.ReportTemplate) == "" {
		return DefaultReportTemplate
	}
	return c.ReportTemplate
}

// RequireCredentials fails when the Plaud login is missing
func (c *Config) RequireCredentials() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
