package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/elegacy/internal/flagx"
)

// parseFlags populates cfg from the flags this package owns. Other arguments
// are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-splash", "-db", "-timeout", "-log-level", "-log-format"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the vault API")
	fs.DurationVar(&cfg.SplashDelay, "splash", cfg.SplashDelay, "splash delay before the session check")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path of the local SQLite store")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout, 0 for none")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text, json or zap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
