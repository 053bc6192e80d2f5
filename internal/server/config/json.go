package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/elegacy/internal/flagx"
	"github.com/dmitrijs2005/elegacy/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations accept
// "24h" or integer nanoseconds.
type JsonConfig struct {
	EndpointAddr                string          `json:"endpoint_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AllowOrigins                []string        `json:"allow_origins"`
	RequireAuth                 *bool           `json:"require_auth"`
	MaxUploadBytes              int64           `json:"max_upload_bytes"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays config with the file named by -c/-config. Absent keys
// keep their current value; read or decode errors panic.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if len(c.AllowOrigins) > 0 {
		config.AllowOrigins = c.AllowOrigins
	}
	if c.RequireAuth != nil {
		config.RequireAuth = *c.RequireAuth
	}
	if c.MaxUploadBytes > 0 {
		config.MaxUploadBytes = c.MaxUploadBytes
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
