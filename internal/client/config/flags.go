package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	FlagConfig      = "config"
	FlagAuthURL     = "auth-url"
	FlagVMURL       = "vm-url"
	FlagSessionDB   = "session-db"
	FlagHTTPTimeout = "http-timeout"
	FlagOutput      = "output"
	FlagLogLevel    = "log-level"
	FlagCatalog     = "catalog"
)

// BindFlags registers the configuration flags on fs, usually the root
// command's persistent flag set. Defaults shown in help are the built-in
// ones; only flags set explicitly override other sources.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagAuthURL, d.AuthAPIURL, "base URL of the auth API")
	fs.String(FlagVMURL, d.VMAPIURL, "base URL of the VM API")
	fs.String(FlagSessionDB, d.SessionDSN, "path of the local session database")
	fs.Duration(FlagHTTPTimeout, d.HTTPTimeout, "per-request timeout (0 = none)")
	fs.StringP(FlagOutput, "o", d.OutputFormat, "output format: table, json or yaml")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(FlagCatalog, d.CatalogFile, "YAML file replacing the built-in VM catalog")
}

// jsonConfigPath returns the --config value, falling back to FCPANEL_CONFIG.
func jsonConfigPath(fs *pflag.FlagSet, lookup lookupFunc) string {
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if v, ok := lookup(EnvConfig); ok {
		return v
	}
	return ""
}

// parseFlags copies the flags that were set on the command line into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := map[string]*string{
		FlagAuthURL:   &cfg.AuthAPIURL,
		FlagVMURL:     &cfg.VMAPIURL,
		FlagSessionDB: &cfg.SessionDSN,
		FlagOutput:    &cfg.OutputFormat,
		FlagLogLevel:  &cfg.LogLevel,
		FlagCatalog:   &cfg.CatalogFile,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(FlagHTTPTimeout) {
		d, err := fs.GetDuration(FlagHTTPTimeout)
		if err != nil {
			return err
		}
		cfg.HTTPTimeout = d
	}
	return nil
}
