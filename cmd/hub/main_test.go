package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/synchub/internal/config"
)

func testConfig(t *testing.T, driver string) config.Config {
	t.Helper()

	t.Setenv("SYNCHUB_SERVER_ADDRESS", "127.0.0.1:0")
	t.Setenv("SYNCHUB_STORAGE_DRIVER", driver)
	t.Setenv("SYNCHUB_STORAGE_PATH", filepath.Join(t.TempDir(), "hub.db"))
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestRun_StopsOnCancel(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver)
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() {
				errCh <- run(ctx, cfg, logger)
			}()

			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("hub did not stop")
			}
		})
	}
}

func TestRun_ListenError(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)
	cfg.Server.Address = "256.0.0.1:99999"

	err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestRun_StorageError(t *testing.T) {
	cfg := testConfig(t, config.DriverSQLite)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "missing", "dir", "hub.db")

	err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "failed to open storage")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("hidden")
	logger.Warn("shown", "device_id", 7)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"device_id":7`)
}

func TestRun_StatusEndpoint(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)
	cfg.Server.StatusAddress = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hub did not stop")
	}
}
