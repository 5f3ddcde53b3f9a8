package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration accepts either a Go duration string ("30s") or integer
// nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty".
type JSONConfig struct {
	AuthAPIURL   *string   `json:"auth_api_url"`
	VMAPIURL     *string   `json:"vm_api_url"`
	SessionDSN   *string   `json:"session_dsn"`
	HTTPTimeout  *Duration `json:"http_timeout"`
	OutputFormat *string   `json:"output"`
	LogLevel     *string   `json:"log_level"`
	CatalogFile  *string   `json:"catalog_file"`
}

// parseJSON overlays cfg with the fields present in the JSON file at path.
// An empty path loads nothing.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	setString(&cfg.AuthAPIURL, jc.AuthAPIURL)
	setString(&cfg.VMAPIURL, jc.VMAPIURL)
	setString(&cfg.SessionDSN, jc.SessionDSN)
	setString(&cfg.OutputFormat, jc.OutputFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.CatalogFile, jc.CatalogFile)
	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
