package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        HTTP bind address (e.g., ":5000")
//	-d string        SQLite DSN
//	-s string        JWT HMAC secret key
//	-t duration      access token validity (e.g., "24h")
//	-origins string  comma separated CORS origins
//	-require-auth    reject anonymous document and invite calls
//	-log-level       debug, info, warn or error
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-origins", "-require-auth", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	origins := fs.String("origins", strings.Join(config.AllowOrigins, ","), "allowed CORS origins")
	fs.BoolVar(&config.RequireAuth, "require-auth", config.RequireAuth, "require a bearer token for document calls")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AllowOrigins = splitList(*origins)
}
