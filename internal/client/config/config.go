// Package config loads runtime configuration for the habitauth CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags: -a address:port, -t request timeout in seconds.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
