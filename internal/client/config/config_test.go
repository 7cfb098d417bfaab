package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "address and timeout", args: []string{"-a", "127.0.0.1:9090", "-t", "10"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", RequestTimeout: 10 * time.Second}},
		{name: "unknown flags ignored", args: []string{"-x", "1", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1", RequestTimeout: 5 * time.Second}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				assert.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"srv:1","request_timeout":"2s"}`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, []string{"-c", path})

	assert.Equal(t, "srv:1", cfg.ServerEndpointAddr)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	cfg := &Config{}
	assert.Panics(t, func() { parseJson(cfg, []string{"-config", "/nonexistent/cli.json"}) })
}
