package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/habitauth/internal/flagx"
	"github.com/dmitrijs2005/habitauth/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept both "5m" strings and integer nanoseconds. Absent keys
// leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC          string          `json:"endpoint_addr_grpc"`
	DatabaseDSN               string          `json:"database_dsn"`
	SecretKey                 string          `json:"secret_key"`
	TokenTTL                  *timex.Duration `json:"token_ttl"`
	InvalidUsernameCharacters *string         `json:"invalid_username_characters"`
	MaintenanceInterval       *timex.Duration `json:"maintenance_interval"`
	DailyResetHour            *int            `json:"daily_reset_hour"`
	DailyResetMinute          *int            `json:"daily_reset_minute"`
	EnforceTokenExpiry        *bool           `json:"enforce_token_expiry"`
	StoreTimeout              *timex.Duration `json:"store_timeout"`
	MaintenanceJobTimeout     *timex.Duration `json:"maintenance_job_timeout"`
	RedisAddr                 *string         `json:"redis_addr"`
	LoginRateLimit            *int            `json:"login_rate_limit"`
	LoginRateWindow           *timex.Duration `json:"login_rate_window"`
	BcryptCost                *int            `json:"bcrypt_cost"`
}

// parseJson overlays values from the file named by -c/-config in args.
// Without the flag nothing is loaded. An unreadable or malformed file panics,
// since the server cannot start with a half-applied configuration.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.InvalidUsernameCharacters != nil {
		config.InvalidUsernameCharacters = splitCharacters(*c.InvalidUsernameCharacters)
	}
	if c.MaintenanceInterval != nil {
		config.MaintenanceInterval = c.MaintenanceInterval.Duration
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
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.MaintenanceJobTimeout != nil {
		config.MaintenanceJobTimeout = c.MaintenanceJobTimeout.Duration
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.LoginRateWindow != nil {
		config.LoginRateWindow = c.LoginRateWindow.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}
