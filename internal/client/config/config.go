package config

import "time"

// Config holds runtime settings for the eLegacy CLI.
type Config struct {
	ServerBaseURL  string
	SplashDelay    time.Duration
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.SplashDelay = 2000 * time.Millisecond
	c.DatabasePath = ".elegacy/elegacy.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
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
