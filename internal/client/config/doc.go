// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables (STOREFRONT_*).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://127.0.0.1:8000
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "database_path": "~/.storefront/storefront.db",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
