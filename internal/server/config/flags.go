package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token time-to-live, minutes
//	-i int      maintenance interval, seconds
//	-H int      daily reset hour (0-23)
//	-M int      daily reset minute (0-59)
//	-x          reject tokens whose embedded expiry has passed
//	-r string   Redis address for login rate limiting
//
// Only these flags are picked out of args, so unrelated flags (such as
// -c for the JSON file) do not cause parse errors.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-i", "-H", "-M", "-x", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token_ttl (in minutes)")
	interval := fs.Int("i", int(config.MaintenanceInterval.Seconds()), "maintenance interval (in seconds)")

	fs.IntVar(&config.DailyResetHour, "H", config.DailyResetHour, "daily reset hour")
	fs.IntVar(&config.DailyResetMinute, "M", config.DailyResetMinute, "daily reset minute")
	fs.BoolVar(&config.EnforceTokenExpiry, "x", config.EnforceTokenExpiry, "reject expired tokens")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// durations are only rewritten when given, so sub-minute values from
	// earlier layers survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		case "i":
			config.MaintenanceInterval = time.Duration(*interval) * time.Second
		}
	})
}
