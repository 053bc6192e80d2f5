// Package config loads runtime configuration for the eLegacy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. ELEGACY_* environment variables, plus a .env file in the working
//     directory.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string           base URL of the vault API
//	-splash duration    splash delay before the session check (default 2s)
//	-db string          local SQLite store
//	-timeout duration   per-request timeout
//	-log-level string   debug|info|warn|error
//	-log-format string  text|json|zap
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000",
//	  "splash_delay": "2s",
//	  "database_path": ".elegacy/elegacy.db",
//	  "request_timeout": "30s",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// # Environment
//
// ELEGACY_BASE_URL, ELEGACY_SPLASH_DELAY, ELEGACY_DB_PATH,
// ELEGACY_REQUEST_TIMEOUT, ELEGACY_LOG_LEVEL, ELEGACY_LOG_FORMAT.
package config
