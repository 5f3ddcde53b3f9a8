package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by parseEnv.
const (
	EnvAuthURL     = "FCPANEL_AUTH_URL"
	EnvVMURL       = "FCPANEL_VM_URL"
	EnvSessionDB   = "FCPANEL_SESSION_DB"
	EnvHTTPTimeout = "FCPANEL_HTTP_TIMEOUT"
	EnvOutput      = "FCPANEL_OUTPUT"
	EnvLogLevel    = "FCPANEL_LOG_LEVEL"
	EnvCatalog     = "FCPANEL_CATALOG"
	EnvConfig      = "FCPANEL_CONFIG"
)

type lookupFunc func(key string) (string, bool)

var lookupEnv lookupFunc = os.LookupEnv

// loadDotEnv exports the variables of path into the process environment.
// Variables already set win; a missing file is not an error.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}

// parseEnv overlays cfg with the non-empty FCPANEL_* variables. An
// unparsable FCPANEL_HTTP_TIMEOUT is ignored.
func parseEnv(cfg *Config, lookup lookupFunc) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(EnvAuthURL); ok {
		cfg.AuthAPIURL = v
	}
	if v, ok := get(EnvVMURL); ok {
		cfg.VMAPIURL = v
	}
	if v, ok := get(EnvSessionDB); ok {
		cfg.SessionDSN = v
	}
	if v, ok := get(EnvHTTPTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v, ok := get(EnvOutput); ok {
		cfg.OutputFormat = v
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvCatalog); ok {
		cfg.CatalogFile = v
	}
}
