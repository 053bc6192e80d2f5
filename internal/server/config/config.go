// Package config handles configuration for the development backend:
// defaults, a JSON overlay, the environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the eLegacy development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - DatabaseDSN: modernc SQLite DSN. The default is a shared in-memory
//     database that lives as long as the process.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default
//     outside local runs.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - AllowOrigins: CORS origins; "*" allows any.
//   - RequireAuth: reject document and invite calls without a valid bearer.
//   - MaxUploadBytes: memory limit for multipart parsing.
type Config struct {
	EndpointAddr                string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AllowOrigins                []string
	RequireAuth                 bool
	MaxUploadBytes              int64
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.DatabaseDSN = "file:elegacy?mode=memory&cache=shared"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.AllowOrigins = []string{"*"}
	c.RequireAuth = false
	c.MaxUploadBytes = 32 << 20
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file, the environment (with a
// .env file from the working directory) and flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg, ".env")
	parseFlags(cfg)
	return cfg
}
