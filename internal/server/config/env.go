package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ELEGACY_SERVER"

// parseEnv overlays cfg with ELEGACY_SERVER_* variables, after loading the
// optional dotenv file without overriding the real environment. Malformed
// values panic.
func parseEnv(cfg *Config, dotenv string) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"addr", "database_dsn", "secret_key", "token_ttl", "allow_origins", "require_auth", "max_upload_bytes", "log_level"} {
		_ = v.BindEnv(key)
	}

	if v.IsSet("addr") {
		cfg.EndpointAddr = v.GetString("addr")
	}
	if v.IsSet("database_dsn") {
		cfg.DatabaseDSN = v.GetString("database_dsn")
	}
	if v.IsSet("secret_key") {
		cfg.SecretKey = v.GetString("secret_key")
	}
	if v.IsSet("token_ttl") {
		d, err := time.ParseDuration(v.GetString("token_ttl"))
		if err != nil {
			panic(err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v.IsSet("allow_origins") {
		cfg.AllowOrigins = splitList(v.GetString("allow_origins"))
	}
	if v.IsSet("require_auth") {
		cfg.RequireAuth = v.GetBool("require_auth")
	}
	if v.IsSet("max_upload_bytes") {
		cfg.MaxUploadBytes = v.GetInt64("max_upload_bytes")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
