// Package config загружает конфигурацию хаба из файла и переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения (SYNCHUB_SERVER_ADDRESS и т.д.)
const EnvPrefix = "synchub"

// Поддерживаемые драйверы хранилища
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Address           string        `mapstructure:"address"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	ReceiveBufferSize int           `mapstructure:"receive_buffer_size"`
	SendQueueSize     int           `mapstructure:"send_queue_size"`
	MaxFrameSize      int           `mapstructure:"max_frame_size"`
	StatusAddress     string        `mapstructure:"status_address"` // пустой адрес отключает /health
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load читает конфигурацию. Пустой path означает только значения
// по умолчанию и переменные окружения.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":9527")
	v.SetDefault("server.heartbeat_interval", 5*time.Second)
	v.SetDefault("server.receive_buffer_size", 4096)
	v.SetDefault("server.send_queue_size", 256)
	v.SetDefault("server.max_frame_size", 1<<20)
	v.SetDefault("server.status_address", "")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "synchub.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func (c Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.HeartbeatInterval <= 0 {
		return fmt.Errorf("server.heartbeat_interval must be positive, got %s", c.Server.HeartbeatInterval)
	}
	if c.Server.ReceiveBufferSize <= 0 {
		return fmt.Errorf("server.receive_buffer_size must be positive")
	}
	if c.Server.SendQueueSize <= 0 {
		return fmt.Errorf("server.send_queue_size must be positive")
	}
	if c.Server.MaxFrameSize <= 0 {
		return fmt.Errorf("server.max_frame_size must be positive")
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", DriverSQLite)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel разбирает log.level
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Level, err)
	}
	return level, nil
}
