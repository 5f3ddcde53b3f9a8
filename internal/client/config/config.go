package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/dmitrijs2005/fcpanel/internal/client/output"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// Config holds runtime settings for the fcpanel CLI.
//
// HTTPTimeout of zero means requests never time out on their own; Ctrl-C
// still cancels them.
type Config struct {
	AuthAPIURL   string
	VMAPIURL     string
	SessionDSN   string
	HTTPTimeout  time.Duration
	OutputFormat string
	LogLevel     string
	CatalogFile  string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.AuthAPIURL = "http://localhost:8080/api"
	c.VMAPIURL = "http://127.0.0.1:8001"
	c.SessionDSN = "session.db"
	c.HTTPTimeout = 0
	c.OutputFormat = string(output.FormatTable)
	c.LogLevel = "warn"
	c.CatalogFile = ""
}

// Validate rejects values the CLI cannot run with.
func (c *Config) Validate() error {
	if c.AuthAPIURL == "" {
		return fmt.Errorf("auth API URL is empty")
	}
	if c.VMAPIURL == "" {
		return fmt.Errorf("VM API URL is empty")
	}
	if c.SessionDSN == "" {
		return fmt.Errorf("session database path is empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("negative http timeout %s", c.HTTPTimeout)
	}
	if err := output.ValidateFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the environment (including
// a .env file in the working directory), then the JSON file named by
// --config or FCPANEL_CONFIG, then the flags that were set explicitly on fs.
// Later sources take precedence over earlier ones.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	loadDotEnv(".env")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, lookupEnv)

	path := jsonConfigPath(fs, lookupEnv)
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
