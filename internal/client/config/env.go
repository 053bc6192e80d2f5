package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ELEGACY"

// parseEnv overlays cfg with ELEGACY_* variables. Variables from dotenv are
// loaded first but never override the real environment; a missing dotenv
// file is fine. Panics on malformed durations.
func parseEnv(cfg *Config, dotenv string) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"base_url", "splash_delay", "db_path", "request_timeout", "log_level", "log_format"} {
		_ = v.BindEnv(key)
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if !v.IsSet(key) {
			return
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			panic(err)
		}
		*dst = d
	}

	setString("base_url", &cfg.ServerBaseURL)
	setDuration("splash_delay", &cfg.SplashDelay)
	setString("db_path", &cfg.DatabasePath)
	setDuration("request_timeout", &cfg.RequestTimeout)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)
}
