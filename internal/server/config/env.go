package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables understood by the server.
// Unset variables stay nil and do not override earlier layers.
type EnvConfig struct {
	EndpointAddrGRPC           *string        `env:"HABITAUTH_GRPC_ADDR"`
	DatabaseDSN                *string        `env:"DATABASE_DSN"`
	SecretKey                  *string        `env:"SECRET_KEY"`
	TokenTTL                   *time.Duration `env:"TOKEN_TTL"`
	InvalidUsernameCharacters  *string        `env:"INVALID_USERNAME_CHARACTERS"`
	MaintenanceIntervalSeconds *int           `env:"PERIODIC_TASK_INTERVAL_SECONDS"`
	DailyResetHour             *int           `env:"HABIT_RESETTING_HOURS"`
	DailyResetMinute           *int           `env:"HABIT_RESETTING_MINUTES"`
	EnforceTokenExpiry         *bool          `env:"ENFORCE_TOKEN_EXPIRY"`
	StoreTimeout               *time.Duration `env:"STORE_TIMEOUT"`
	MaintenanceJobTimeout      *time.Duration `env:"MAINTENANCE_JOB_TIMEOUT"`
	RedisAddr                  *string        `env:"REDIS_ADDR"`
	LoginRateLimit             *int           `env:"LOGIN_RATE_LIMIT"`
	LoginRateWindow            *time.Duration `env:"LOGIN_RATE_WINDOW"`
	BcryptCost                 *int           `env:"BCRYPT_COST"`
}

// parseEnv overlays values from the process environment. A variable that is
// set but cannot be parsed panics, like a malformed JSON file does.
func parseEnv(config *Config) {
	var c EnvConfig
	if err := env.Parse(&c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *EnvConfig) apply(config *Config) {
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenTTL != nil {
		config.TokenTTL = *c.TokenTTL
	}
	if c.InvalidUsernameCharacters != nil {
		config.InvalidUsernameCharacters = splitCharacters(*c.InvalidUsernameCharacters)
	}
	if c.MaintenanceIntervalSeconds != nil {
		config.MaintenanceInterval = time.Duration(*c.MaintenanceIntervalSeconds) * time.Second
	}
	if c.DailyResetHour != nil {
		config.DailyResetHour = *c.DailyResetHour
	}
	if c.DailyResetMinute != nil {
		config.DailyResetMinute = *c.DailyResetMinute
	}
	if c.EnforceTokenExpiry != nil {
		config.EnforceTokenExpiry = *c.EnforceTokenExpiry
	}
	if c.StoreTimeout != nil {
		config.StoreTimeout = *c.StoreTimeout
	}
	if c.MaintenanceJobTimeout != nil {
		config.MaintenanceJobTimeout = *c.MaintenanceJobTimeout
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.LoginRateWindow != nil {
		config.LoginRateWindow = *c.LoginRateWindow
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}
