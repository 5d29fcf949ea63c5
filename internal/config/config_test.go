package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9527", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.HeartbeatInterval)
	assert.Equal(t, 4096, cfg.Server.ReceiveBufferSize)
	assert.Equal(t, 256, cfg.Server.SendQueueSize)
	assert.Equal(t, 1<<20, cfg.Server.MaxFrameSize)
	assert.Empty(t, cfg.Server.StatusAddress)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "synchub.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	t.Setenv("SYNCHUB_STORAGE_DRIVER", "memory")

	path := filepath.Join(t.TempDir(), "synchub.yaml")
	content := []byte(`
server:
  address: 127.0.0.1:7000
  heartbeat_interval: 2s
  send_queue_size: 32
  status_address: 127.0.0.1:7001
storage:
  driver: sqlite
  path: /tmp/hub.db
log:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Server.HeartbeatInterval)
	assert.Equal(t, 32, cfg.Server.SendQueueSize)
	assert.Equal(t, "127.0.0.1:7001", cfg.Server.StatusAddress)
	assert.Equal(t, 4096, cfg.Server.ReceiveBufferSize)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/hub.db", cfg.Storage.Path)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.Server.Address = "" }},
		{name: "zero heartbeat", mutate: func(c *Config) { c.Server.HeartbeatInterval = 0 }},
		{name: "zero receive buffer", mutate: func(c *Config) { c.Server.ReceiveBufferSize = 0 }},
		{name: "zero send queue", mutate: func(c *Config) { c.Server.SendQueueSize = 0 }},
		{name: "zero frame size", mutate: func(c *Config) { c.Server.MaxFrameSize = 0 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Path = "" }},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("memory without path", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = DriverMemory
		cfg.Storage.Path = ""
		assert.NoError(t, cfg.Validate())
	})
}
