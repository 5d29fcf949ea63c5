package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/synchub/internal/config"
	"github.com/iudanet/synchub/internal/server/channel"
	"github.com/iudanet/synchub/internal/server/engine"
	"github.com/iudanet/synchub/internal/server/handlers"
	"github.com/iudanet/synchub/internal/server/storage"
	"github.com/iudanet/synchub/internal/server/storage/memory"
	"github.com/iudanet/synchub/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const statusInterval = time.Minute

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Hub stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	// Уровень уже проверен в config.Validate
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.DataStorage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// run запускает хаб и блокируется до отмены ctx
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("Synchub hub starting", "version", Version, "storage", cfg.Storage.Driver)

	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	reg := channel.New(channel.Config{
		Address:           cfg.Server.Address,
		HeartbeatInterval: cfg.Server.HeartbeatInterval,
		ReceiveBufferSize: cfg.Server.ReceiveBufferSize,
		SendQueueSize:     cfg.Server.SendQueueSize,
		MaxFrameSize:      cfg.Server.MaxFrameSize,
	}, logger)

	eng := engine.New(logger, store, reg)
	reg.SetHandler(channel.Chain(eng, channel.Logging(logger)))

	g, gctx := errgroup.WithContext(ctx)
	if err := reg.Start(gctx); err != nil {
		return err
	}

	g.Go(func() error {
		<-gctx.Done()
		reg.Stop()
		logger.Info("Hub stopped")
		return nil
	})
	g.Go(func() error {
		reportStatus(gctx, reg, logger, statusInterval)
		return nil
	})

	if cfg.Server.StatusAddress != "" {
		srv := &http.Server{
			Addr:              cfg.Server.StatusAddress,
			Handler:           handlers.NewRouter(handlers.NewHealthHandler(reg, Version, logger), logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("Status endpoint listening", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status endpoint: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

// reportStatus периодически пишет в лог список подключенных устройств
func reportStatus(ctx context.Context, reg *channel.Registry, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			devices := reg.Devices()
			inbound, outbound := reg.Backlog()
			logger.Info("Hub status",
				"online", len(devices),
				"devices", devices,
				"inbound_backlog", inbound,
				"outbound_backlog", outbound,
			)
		}
	}
}

func printVersion() {
	fmt.Printf("Synchub Hub\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
