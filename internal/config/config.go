// Package config loads and persists the YAML application configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FlatConfig describes one rental unit and its booking calendar feed.
type FlatConfig struct {
	// ID is the stable identifier used in schedule maps, API paths and
	// storage rows.
	ID string `yaml:"id" json:"id"`
	// Name is the full display name, e.g. "Flat 7".
	Name string `yaml:"name" json:"name"`
	// Nickname is a short label for dense views.
	Nickname string `yaml:"nickname" json:"nickname"`
	// Color is a CSS color used in the web view.
	Color string `yaml:"color" json:"color"`
	// CalendarURL is the iCal feed exported by the OTA.
	CalendarURL string `yaml:"calendar_url" json:"calendar_url"`
}

// WhatsAppConfig holds Twilio WhatsApp credentials and addressing.
// The channel is disabled unless all fields are set.
type WhatsAppConfig struct {
	AccountSID string `yaml:"account_sid" json:"account_sid"`
	AuthToken  string `yaml:"auth_token" json:"-"`
	From       string `yaml:"from" json:"from"`
	To         string `yaml:"to" json:"to"`
}

// Enabled reports whether the WhatsApp channel is fully configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != "" && c.To != ""
}

// EmailConfig holds SMTP settings for the email digest.
type EmailConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"-"`
	From     string `yaml:"from" json:"from"`
	To       string `yaml:"to" json:"to"`
}

// Enabled reports whether the email channel is fully configured.
func (c EmailConfig) Enabled() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.From != "" && c.To != ""
}

// SheetsConfig holds Google Sheets export settings. CredentialsJSON is
// the raw service-account key.
type SheetsConfig struct {
	CredentialsJSON string `yaml:"credentials_json" json:"-"`
	SpreadsheetID   string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
	TabName         string `yaml:"tab_name" json:"tab_name"`
}

// Enabled reports whether the sheet export is fully configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsJSON != "" && c.SpreadsheetID != ""
}

// Config is the top-level application configuration. Flats are static:
// loaded once at startup and immutable for the life of the process.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone all calendar dates are normalized to,
	// e.g. "Europe/London".
	Timezone string `yaml:"timezone" json:"timezone"`

	// DefaultDays is the schedule window size when a request doesn't
	// specify one.
	DefaultDays int `yaml:"default_days" json:"default_days"`

	// MaxDays caps the requested window size.
	MaxDays int `yaml:"max_days" json:"max_days"`

	// DigestCron schedules the daily digest push, in cron syntax.
	// Empty disables the digest.
	DigestCron string `yaml:"digest_cron" json:"digest_cron"`

	// Flats is the static list of rental units.
	Flats []FlatConfig `yaml:"flats" json:"flats"`

	WhatsApp WhatsAppConfig `yaml:"whatsapp" json:"whatsapp"`
	Email    EmailConfig    `yaml:"email" json:"email"`
	Sheets   SheetsConfig   `yaml:"sheets" json:"sheets"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8099",
		Timezone:    "Europe/London",
		DefaultDays: 14,
		MaxDays:     60,
		DigestCron:  "0 8 * * *",
		Flats:       []FlatConfig{},
	}
}

// Normalize fills missing or out-of-range values with defaults so that
// partially filled configs from older versions still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8099"
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/London"
	}
	if c.DefaultDays <= 0 {
		c.DefaultDays = 14
	}
	if c.MaxDays <= 0 {
		c.MaxDays = 60
	}
	if c.DefaultDays > c.MaxDays {
		c.DefaultDays = c.MaxDays
	}
	if c.Email.Port <= 0 {
		c.Email.Port = 587
	}
	if c.Sheets.TabName == "" {
		c.Sheets.TabName = "Cleaner Schedule"
	}
	if c.Flats == nil {
		c.Flats = []FlatConfig{}
	}
	for i := range c.Flats {
		if c.Flats[i].Nickname == "" {
			c.Flats[i].Nickname = c.Flats[i].Name
		}
	}
}

// Validate checks the parts of the config that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	seen := make(map[string]bool)
	for _, f := range c.Flats {
		if f.ID == "" {
			return fmt.Errorf("flat %q has no id", f.Name)
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate flat id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}

// Location resolves the configured timezone. Call Validate first; an
// unresolvable zone falls back to UTC here.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FlatByID returns the flat with the given ID, or nil.
func (c *Config) FlatByID(id string) *FlatConfig {
	for i := range c.Flats {
		if c.Flats[i].ID == id {
			return &c.Flats[i]
		}
	}
	return nil
}

// Load reads configuration from the given YAML path. A missing file is
// a first run: a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename) with
// 0600 permissions, since it carries credentials.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cleanerboard-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
