// Package config loads runtime configuration for the fcpanel CLI.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables FCPANEL_*, including those from a .env file in
//     the working directory.
//  3. Optional JSON file selected with -c/--config or FCPANEL_CONFIG.
//  4. Command-line flags set explicitly, which override everything else.
//
// # Flags
//
//	-c, --config string        JSON config file
//	    --auth-url string      base URL of the auth API
//	    --vm-url string        base URL of the VM API
//	    --session-db string    local session database
//	    --http-timeout dur     per-request timeout, 0 = none
//	-o, --output string        table, json or yaml
//	    --log-level string     debug, info, warn or error
//	    --catalog string       YAML catalog file
//
// # JSON schema
//
// Durations are strings like "30s" or integer nanoseconds:
//
//	{
//	  "auth_api_url": "http://localhost:8080/api",
//	  "vm_api_url": "http://127.0.0.1:8001",
//	  "session_dsn": "session.db",
//	  "http_timeout": "30s",
//	  "output": "table",
//	  "log_level": "warn",
//	  "catalog_file": ""
//	}
package config
