package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/habitauth/internal/flagx"
	"github.com/dmitrijs2005/habitauth/internal/timex"
)

type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

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

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
