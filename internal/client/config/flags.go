package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the backend server
//	-t int      request timeout (in seconds)
func parseFlags(cfg *Config, args []string) {
	// Filter args to include only those handled here.
	args = flagx.FilterArgs(args, []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
