package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/elegacy/internal/flagx"
	"github.com/dmitrijs2005/elegacy/internal/timex"
)

// JsonConfig is used only for unmarshalling. Durations accept "2s" or
// integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	SplashDelay    *timex.Duration `json:"splash_delay"`
	DatabasePath   string          `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config. Keys missing from
// the file keep their current value. Panics on read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.SplashDelay != nil {
		cfg.SplashDelay = jc.SplashDelay.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}
